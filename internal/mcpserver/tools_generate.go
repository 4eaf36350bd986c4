package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schematools/inferrer"
)

type generateInput struct {
	Data   string `json:"data,omitempty"   jsonschema:"Inline JSON or YAML data content"`
	File   string `json:"file,omitempty"   jsonschema:"Path to a JSON or YAML data file on disk"`
	Filter string `json:"filter,omitempty" jsonschema:"jq expression selecting sub-values to infer from; each result becomes a sample"`
	Title  string `json:"title,omitempty"  jsonschema:"Title for the generated schema document"`
}

type generateOutput struct {
	Schema   string              `json:"schema"`
	Source   string              `json:"source"`
	Stats    inferrer.InferStats `json:"stats"`
	Warnings []string            `json:"warnings,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	value, sourceName, err := resolveData(input.File, input.Data)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []inferrer.Option{
		inferrer.WithValue(value),
		inferrer.WithSourceName(sourceName),
	}
	if input.Title != "" {
		opts = append(opts, inferrer.WithTitle(input.Title))
	}
	if input.Filter != "" {
		opts = append(opts, inferrer.WithFilter(input.Filter))
	}

	result, err := inferrer.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	doc, err := schemaJSON(result.Schema)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	return nil, generateOutput{
		Schema:   doc,
		Source:   sourceName,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	}, nil
}
