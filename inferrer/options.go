package inferrer

import (
	"fmt"
	"io"

	"github.com/erraggy/schematools/internal/options"
)

// Option is a function that configures a generate or extend operation
type Option func(*inferConfig) error

// inferConfig holds configuration for a generate or extend operation
type inferConfig struct {
	// Data input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	value    any
	valueSet bool

	// Base schema source (extend only; exactly one must be set)
	baseFilePath *string
	baseReader   io.Reader
	baseBytes    []byte
	baseSchema   *Schema

	// Configuration options
	logger     Logger
	title      string
	filter     string
	sourceName *string
}

// applyOptions applies option functions and validates the data source
func applyOptions(opts ...Option) (*inferConfig, error) {
	cfg := &inferConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"inferrer: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithValue)",
		"inferrer: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.valueSet,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *inferConfig) hasBaseSource() bool {
	return cfg.baseFilePath != nil || cfg.baseReader != nil || cfg.baseBytes != nil || cfg.baseSchema != nil
}

// validateBaseSource ensures exactly one base schema source is set
func (cfg *inferConfig) validateBaseSource() error {
	return options.ValidateSingleInputSource(
		"inferrer: must specify a base schema source (use WithBaseFilePath, WithBaseReader, WithBaseBytes, or WithBaseSchema)",
		"inferrer: must specify exactly one base schema source",
		cfg.baseFilePath != nil, cfg.baseReader != nil, cfg.baseBytes != nil, cfg.baseSchema != nil,
	)
}

// resolveData loads and decodes the configured data input.
// It returns the decoded value, the detected format, and the source
// name for reporting.
func (cfg *inferConfig) resolveData() (any, SourceFormat, string, error) {
	switch {
	case cfg.filePath != nil:
		data, format, err := readSource(*cfg.filePath)
		if err != nil {
			return nil, SourceFormatUnknown, cfg.source(*cfg.filePath), err
		}
		value, format, err := decodeValue(data, format, cfg.source(*cfg.filePath))
		return value, format, cfg.source(*cfg.filePath), err

	case cfg.reader != nil:
		data, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, SourceFormatUnknown, cfg.source("Reader"), fmt.Errorf("inferrer: failed to read data: %w", err)
		}
		value, format, err := decodeValue(data, SourceFormatUnknown, cfg.source("Reader"))
		return value, format, cfg.source("Reader." + string(format)), err

	case cfg.bytes != nil:
		value, format, err := decodeValue(cfg.bytes, SourceFormatUnknown, cfg.source("Bytes"))
		return value, format, cfg.source("Bytes." + string(format)), err

	default:
		return cfg.value, SourceFormatValue, cfg.source("Value"), nil
	}
}

// resolveBase loads the configured base schema.
func (cfg *inferConfig) resolveBase() (*Schema, error) {
	switch {
	case cfg.baseSchema != nil:
		return cfg.baseSchema.Clone(), nil
	case cfg.baseFilePath != nil:
		return LoadSchema(*cfg.baseFilePath)
	case cfg.baseReader != nil:
		data, err := io.ReadAll(cfg.baseReader)
		if err != nil {
			return nil, fmt.Errorf("inferrer: failed to read base schema: %w", err)
		}
		return schemaFromBytes(data, SourceFormatUnknown, "BaseReader")
	default:
		return schemaFromBytes(cfg.baseBytes, SourceFormatUnknown, "BaseBytes")
	}
}

// source applies the WithSourceName override to a default name
func (cfg *inferConfig) source(fallback string) string {
	if cfg.sourceName != nil {
		return *cfg.sourceName
	}
	return fallback
}

// WithFilePath specifies a JSON or YAML data file as the input source
func WithFilePath(path string) Option {
	return func(cfg *inferConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *inferConfig) error {
		if r == nil {
			return fmt.Errorf("inferrer: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *inferConfig) error {
		if data == nil {
			return fmt.Errorf("inferrer: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithValue specifies an already-decoded value as the input source.
// The value must use the shapes a JSON decoder produces: map[string]any
// for objects and []any for arrays. A nil value is valid JSON null.
func WithValue(v any) Option {
	return func(cfg *inferConfig) error {
		cfg.value = v
		cfg.valueSet = true
		return nil
	}
}

// WithBaseFilePath specifies a schema document file to extend
func WithBaseFilePath(path string) Option {
	return func(cfg *inferConfig) error {
		cfg.baseFilePath = &path
		return nil
	}
}

// WithBaseReader specifies an io.Reader holding the schema document to extend
func WithBaseReader(r io.Reader) Option {
	return func(cfg *inferConfig) error {
		if r == nil {
			return fmt.Errorf("inferrer: base reader cannot be nil")
		}
		cfg.baseReader = r
		return nil
	}
}

// WithBaseBytes specifies the schema document to extend as bytes
func WithBaseBytes(data []byte) Option {
	return func(cfg *inferConfig) error {
		if data == nil {
			return fmt.Errorf("inferrer: base bytes cannot be nil")
		}
		cfg.baseBytes = data
		return nil
	}
}

// WithBaseSchema specifies an in-memory schema document to extend.
// The schema is cloned before merging, so the caller's copy is never
// modified.
func WithBaseSchema(s *Schema) Option {
	return func(cfg *inferConfig) error {
		if s == nil {
			return fmt.Errorf("inferrer: base schema cannot be nil")
		}
		cfg.baseSchema = s
		return nil
	}
}

// WithLogger sets a structured logger for diagnostics during
// inference. By default, no logging is performed.
//
// The logger interface is compatible with log/slog, zap, and zerolog.
// Use NewSlogAdapter to wrap a *slog.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *inferConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTitle overrides the title of the resulting schema document.
// By default, generated documents are titled "Generated schema for
// Root" and extended documents keep the base document's title.
func WithTitle(title string) Option {
	return func(cfg *inferConfig) error {
		if title == "" {
			return fmt.Errorf("inferrer: title cannot be empty")
		}
		cfg.title = title
		return nil
	}
}

// WithFilter applies a jq expression to the decoded input data before
// inference. Every value the filter emits becomes a sample: the first
// generates the schema and the rest widen it, so a filter like
// ".items[]" infers a schema covering each element of .items.
func WithFilter(expression string) Option {
	return func(cfg *inferConfig) error {
		if expression == "" {
			return fmt.Errorf("inferrer: filter expression cannot be empty")
		}
		cfg.filter = expression
		return nil
	}
}

// WithSourceName specifies a meaningful name for the data input,
// used in results and error messages in place of defaults such as
// "Bytes.json".
func WithSourceName(name string) Option {
	return func(cfg *inferConfig) error {
		if name == "" {
			return fmt.Errorf("inferrer: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}
