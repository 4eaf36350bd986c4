package inferrer

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schematools/schemaerrors"
)

// SourceFormat represents the format of an input document.
type SourceFormat string

const (
	// SourceFormatJSON indicates the input was JSON
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML indicates the input was YAML
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatValue indicates the input was an in-memory value
	SourceFormatValue SourceFormat = "value"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// InferStats counts the schema nodes built during one inference pass.
type InferStats struct {
	// Objects is the number of object nodes built
	Objects int `json:"objects"`
	// Arrays is the number of array nodes built
	Arrays int `json:"arrays"`
	// Scalars is the number of scalar-typed nodes built
	Scalars int `json:"scalars"`
	// Unknowns is the number of values that fell outside the JSON data model
	Unknowns int `json:"unknowns,omitempty"`
	// MaxDepth is the deepest nesting level observed (root = 1)
	MaxDepth int `json:"maxDepth"`
}

// Result contains the outcome of a generate or extend operation.
type Result struct {
	// Schema is the generated or widened schema document
	Schema *Schema
	// SourcePath is the data input's path, or a descriptive placeholder
	// such as "Reader.json" when the input was not a file
	SourcePath string
	// SourceFormat is the detected format of the data input
	SourceFormat SourceFormat
	// Stats counts the nodes built from the input data
	Stats InferStats
	// Warnings holds non-fatal diagnostics (e.g. unknown value types)
	Warnings []string
	// Changes describes how the base schema was widened; nil for generate
	Changes *SchemaChanges
	// LoadTime is the time taken to load and decode the input data
	LoadTime time.Duration
}

// AddWarning appends a non-fatal diagnostic to the result.
func (r *Result) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Encode renders the schema deterministically in the given format.
// JSON output is 2-space indented with all object keys sorted; two
// calls over the same logical schema produce identical bytes.
func (r *Result) Encode(format SourceFormat) ([]byte, error) {
	if r.Schema == nil {
		return nil, fmt.Errorf("inferrer: result has no schema")
	}
	if format == SourceFormatYAML {
		data, err := yaml.Marshal(r.Schema)
		if err != nil {
			return nil, fmt.Errorf("inferrer: failed to marshal schema as YAML: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(r.Schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("inferrer: failed to marshal schema as JSON: %w", err)
	}
	return data, nil
}

// outputFileMode is the file permission mode for output files (owner read/write only)
const outputFileMode = 0600

// WriteResult writes the schema to outputPath with restrictive
// permissions (0600). The format follows the output path extension
// (.yaml/.yml for YAML), defaulting to JSON. If the file already
// exists its permissions are reset to 0600 after writing.
func (r *Result) WriteResult(outputPath string) error {
	format := SourceFormatJSON
	if detectFormatFromPath(outputPath) == SourceFormatYAML {
		format = SourceFormatYAML
	}
	data, err := r.Encode(format)
	if err != nil {
		return err
	}
	if format == SourceFormatJSON {
		data = append(data, '\n')
	}
	if err := os.WriteFile(outputPath, data, outputFileMode); err != nil {
		return &schemaerrors.OutputError{
			Path:    outputPath,
			Message: "failed to write output file",
			Cause:   err,
		}
	}
	if err := os.Chmod(outputPath, outputFileMode); err != nil {
		return &schemaerrors.OutputError{
			Path:    outputPath,
			Message: "failed to set output file permissions",
			Cause:   err,
		}
	}
	return nil
}
