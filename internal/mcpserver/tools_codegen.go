package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schematools/codegen"
	"github.com/erraggy/schematools/inferrer"
)

type codegenInput struct {
	Schema     string `json:"schema,omitempty"      jsonschema:"Inline schema document (JSON or YAML)"`
	SchemaFile string `json:"schema_file,omitempty" jsonschema:"Path to a schema file on disk"`
	Data       string `json:"data,omitempty"        jsonschema:"Inline JSON or YAML example data; a schema is inferred first"`
	File       string `json:"file,omitempty"        jsonschema:"Path to a JSON or YAML data file; a schema is inferred first"`
	Package    string `json:"package,omitempty"     jsonschema:"Go package name for the generated code (default types)"`
	TypeName   string `json:"type_name,omitempty"   jsonschema:"Name of the root type (default Root)"`
}

type codegenFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type codegenOutput struct {
	Package  string        `json:"package"`
	RootType string        `json:"root_type"`
	Types    int           `json:"types"`
	Files    []codegenFile `json:"files"`
	Warnings []string      `json:"warnings,omitempty"`
}

func handleCodegen(_ context.Context, _ *mcp.CallToolRequest, input codegenInput) (*mcp.CallToolResult, codegenOutput, error) {
	count := 0
	for _, v := range []string{input.Schema, input.SchemaFile, input.Data, input.File} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return errResult(fmt.Errorf("exactly one of schema, schema_file, data, or file must be provided (got %d)", count)), codegenOutput{}, nil
	}

	schema, err := schemaForCodegen(input)
	if err != nil {
		return errResult(err), codegenOutput{}, nil
	}

	opts := []codegen.Option{codegen.WithSchema(schema)}
	if input.Package != "" {
		opts = append(opts, codegen.WithPackageName(input.Package))
	}
	if input.TypeName != "" {
		opts = append(opts, codegen.WithTypeName(input.TypeName))
	}

	result, err := codegen.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), codegenOutput{}, nil
	}

	output := codegenOutput{
		Package:  result.PackageName,
		RootType: result.RootType,
		Types:    result.GeneratedTypes,
		Warnings: result.Warnings,
	}
	output.Files = makeSlice[codegenFile](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, codegenFile{
			Name:    f.Name,
			Content: string(f.Content),
		})
	}

	return nil, output, nil
}

// schemaForCodegen produces the schema to generate from: schema inputs
// are parsed directly, data inputs go through inference first.
func schemaForCodegen(input codegenInput) (*inferrer.Schema, error) {
	if input.Schema != "" || input.SchemaFile != "" {
		return resolveSchema(input.SchemaFile, input.Schema)
	}

	value, sourceName, err := resolveData(input.File, input.Data)
	if err != nil {
		return nil, err
	}
	result, err := inferrer.GenerateWithOptions(
		inferrer.WithValue(value),
		inferrer.WithSourceName(sourceName),
	)
	if err != nil {
		return nil, err
	}
	return result.Schema, nil
}
