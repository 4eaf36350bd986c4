package schemaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrInput indicates an input source could not be resolved.
	ErrInput = errors.New("input error")

	// ErrDecode indicates a JSON/YAML deserialization failure.
	ErrDecode = errors.New("decode error")

	// ErrBaseSchema indicates a base schema document with a malformed shape.
	ErrBaseSchema = errors.New("base schema error")

	// ErrFilter indicates a filter expression failure.
	ErrFilter = errors.New("filter error")

	// ErrOutput indicates an output path or write failure.
	ErrOutput = errors.New("output error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// InputError represents a failure to resolve an input source.
// This includes missing files, unreadable readers, and conflicting or
// absent source options.
type InputError struct {
	// Source is the file path or source identifier (e.g., "<stdin>")
	Source string
	// Message describes the input failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *InputError) Error() string {
	msg := "input error"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *InputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *InputError) Is(target error) bool {
	return target == ErrInput
}

// DecodeError represents a failure to deserialize input bytes.
// This includes JSON and YAML syntax errors in data files and schema files.
type DecodeError struct {
	// Path is the file path or source identifier
	Path string
	// Format is the format that failed to decode: "json" or "yaml"
	Format string
	// Message describes the decode failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DecodeError) Error() string {
	msg := "decode error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// SchemaShapeError represents a base schema document whose fields do not
// have the expected shapes (e.g., "properties" holding an array). The
// engine assumes well-shaped nodes, so loading rejects these up front.
type SchemaShapeError struct {
	// Path is the location within the document (e.g., "properties.user.items")
	Path string
	// Field is the specific keyword with the issue
	Field string
	// Value is the problematic value (may be nil)
	Value any
	// Message describes the shape violation
	Message string
}

// Error returns a human-readable error message.
func (e *SchemaShapeError) Error() string {
	msg := "base schema error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as SchemaShapeError has no underlying cause.
func (e *SchemaShapeError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *SchemaShapeError) Is(target error) bool {
	return target == ErrBaseSchema
}

// FilterError represents a failure to parse or evaluate a jq filter
// expression applied to input data.
type FilterError struct {
	// Expression is the filter expression that failed
	Expression string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FilterError) Error() string {
	msg := "filter error"
	if e.Expression != "" {
		msg += " in " + e.Expression
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FilterError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FilterError) Is(target error) bool {
	return target == ErrFilter
}

// OutputError represents a failure to validate or write an output path.
type OutputError struct {
	// Path is the output path
	Path string
	// Message describes the output failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *OutputError) Error() string {
	msg := "output error"
	if e.Path != "" {
		msg += " for " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *OutputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *OutputError) Is(target error) bool {
	return target == ErrOutput
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
