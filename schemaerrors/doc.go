// Package schemaerrors provides structured error types for the schematools library.
//
// Import path: github.com/erraggy/schematools/schemaerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types:
//
//   - [InputError]: Input source resolution failures (missing files, conflicting sources)
//   - [DecodeError]: JSON/YAML deserialization failures
//   - [SchemaShapeError]: Malformed base schema documents (wrong field shapes)
//   - [FilterError]: jq filter expression parse or evaluation failures
//   - [OutputError]: Output path validation and write failures
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrInput]: Matches any [InputError]
//   - [ErrDecode]: Matches any [DecodeError]
//   - [ErrBaseSchema]: Matches any [SchemaShapeError]
//   - [ErrFilter]: Matches any [FilterError]
//   - [ErrOutput]: Matches any [OutputError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := inferrer.GenerateWithOptions(inferrer.WithFilePath("data.json"))
//	if errors.Is(err, schemaerrors.ErrDecode) {
//	    // Input was not valid JSON or YAML
//	}
//
// Extract details with errors.As():
//
//	var shapeErr *schemaerrors.SchemaShapeError
//	if errors.As(err, &shapeErr) {
//	    fmt.Printf("bad base schema at %s: %s\n", shapeErr.Path, shapeErr.Message)
//	}
//
// Note that the inference engine itself never returns errors: classification
// of unrecognized values produces a warning, not a failure, and every merge
// combination of node shapes is defined. These types cover the I/O boundary
// around the engine.
package schemaerrors
