package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schematools/inferrer"
)

type extendInput struct {
	BaseSchema string `json:"base_schema,omitempty" jsonschema:"Inline base schema document (JSON or YAML)"`
	BaseFile   string `json:"base_file,omitempty"   jsonschema:"Path to a base schema file on disk"`
	Data       string `json:"data,omitempty"        jsonschema:"Inline JSON or YAML data content"`
	File       string `json:"file,omitempty"        jsonschema:"Path to a JSON or YAML data file on disk"`
	Filter     string `json:"filter,omitempty"      jsonschema:"jq expression selecting sub-values to widen with; each result becomes a sample"`
}

type extendOutput struct {
	Schema        string   `json:"schema"`
	Source        string   `json:"source"`
	ChangeSummary string   `json:"change_summary"`
	Changes       []string `json:"changes,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

func handleExtend(_ context.Context, _ *mcp.CallToolRequest, input extendInput) (*mcp.CallToolResult, extendOutput, error) {
	count := 0
	if input.BaseSchema != "" {
		count++
	}
	if input.BaseFile != "" {
		count++
	}
	if count != 1 {
		return errResult(fmt.Errorf("exactly one of base_schema or base_file must be provided (got %d)", count)), extendOutput{}, nil
	}

	base, err := resolveSchema(input.BaseFile, input.BaseSchema)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}

	value, sourceName, err := resolveData(input.File, input.Data)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}

	opts := []inferrer.Option{
		inferrer.WithBaseSchema(base),
		inferrer.WithValue(value),
		inferrer.WithSourceName(sourceName),
	}
	if input.Filter != "" {
		opts = append(opts, inferrer.WithFilter(input.Filter))
	}

	result, err := inferrer.ExtendWithOptions(opts...)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}

	doc, err := schemaJSON(result.Schema)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}

	return nil, extendOutput{
		Schema:        doc,
		Source:        sourceName,
		ChangeSummary: result.Changes.Summary(),
		Changes:       result.Changes.Lines(),
		Warnings:      result.Warnings,
	}, nil
}
