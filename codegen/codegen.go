package codegen

import (
	"fmt"
	"time"

	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/options"
)

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// CodegenResult contains the results of generating Go types from a schema
type CodegenResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// PackageName is the Go package name used in generation
	PackageName string
	// RootType is the name of the generated root type
	RootType string
	// SourceFormat is the format of the source document
	SourceFormat inferrer.SourceFormat
	// GeneratedTypes is the count of type declarations generated
	GeneratedTypes int
	// Warnings lists schema constructs that had no exact Go
	// representation and were widened to any
	Warnings []string
	// LoadTime is the time taken to load the source schema
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
}

// AddWarning appends a formatted warning message to the result.
func (r *CodegenResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// HasWarnings returns true if there are any warnings
func (r *CodegenResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *CodegenResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator handles Go type generation from schema documents
type Generator struct {
	// PackageName is the Go package name for generated code
	// If empty, defaults to "types"
	PackageName string

	// TypeName is the name used for the root type declaration
	// If empty, defaults to "Root"
	TypeName string

	// UsePointers uses pointer types for optional fields
	// Default: true
	UsePointers bool
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName: "types",
		TypeName:    "Root",
		UsePointers: true,
	}
}

// Option is a function that configures a codegen operation
type Option func(*codegenConfig) error

// codegenConfig holds configuration for a codegen operation
type codegenConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	schema   *inferrer.Schema

	// Configuration options
	packageName string
	typeName    string
	usePointers bool
}

// GenerateWithOptions generates Go types from a schema document using
// functional options. This combines input source selection and
// configuration in a single function call.
//
// Example:
//
//	result, err := codegen.GenerateWithOptions(
//	    codegen.WithSchemaFile("schema.json"),
//	    codegen.WithPackageName("orders"),
//	)
func GenerateWithOptions(opts ...Option) (*CodegenResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("codegen: invalid options: %w", err)
	}

	g := &Generator{
		PackageName: cfg.packageName,
		TypeName:    cfg.typeName,
		UsePointers: cfg.usePointers,
	}

	// Route to the appropriate generation method based on input source
	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	if cfg.schema != nil {
		return g.GenerateSchema(cfg.schema)
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("codegen: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*codegenConfig, error) {
	cfg := &codegenConfig{
		// Set defaults
		packageName: "types",
		typeName:    "Root",
		usePointers: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithSchemaFile or WithSchema)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.schema != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSchemaFile specifies a schema document file as the input source
func WithSchemaFile(path string) Option {
	return func(cfg *codegenConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithSchema specifies an in-memory schema as the input source
func WithSchema(schema *inferrer.Schema) Option {
	return func(cfg *codegenConfig) error {
		if schema == nil {
			return fmt.Errorf("codegen: schema cannot be nil")
		}
		cfg.schema = schema
		return nil
	}
}

// WithPackageName specifies the Go package name for generated code
// Default: "types"
func WithPackageName(name string) Option {
	return func(cfg *codegenConfig) error {
		if name == "" {
			return fmt.Errorf("codegen: package name cannot be empty")
		}
		cfg.packageName = name
		return nil
	}
}

// WithTypeName specifies the name used for the root type declaration
// Default: "Root"
func WithTypeName(name string) Option {
	return func(cfg *codegenConfig) error {
		if name == "" {
			return fmt.Errorf("codegen: type name cannot be empty")
		}
		cfg.typeName = name
		return nil
	}
}

// WithPointers enables or disables pointer types for optional fields
// Default: true
func WithPointers(enabled bool) Option {
	return func(cfg *codegenConfig) error {
		cfg.usePointers = enabled
		return nil
	}
}

// Generate generates Go types from a schema document file
func (g *Generator) Generate(schemaPath string) (*CodegenResult, error) {
	loadStart := time.Now()
	schema, format, err := inferrer.LoadSchemaFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("codegen: failed to load schema: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := g.GenerateSchema(schema)
	if err != nil {
		return nil, err
	}
	result.SourceFormat = format
	result.LoadTime = loadTime
	return result, nil
}

// GenerateSchema generates Go types from an already-loaded schema
func (g *Generator) GenerateSchema(schema *inferrer.Schema) (*CodegenResult, error) {
	if schema == nil {
		return nil, fmt.Errorf("codegen: schema must not be nil")
	}

	startTime := time.Now()

	result := &CodegenResult{
		Files:        make([]GeneratedFile, 0, 1),
		PackageName:  g.PackageName,
		RootType:     g.TypeName,
		SourceFormat: inferrer.SourceFormatValue,
	}
	if result.PackageName == "" {
		result.PackageName = "types"
	}
	if result.RootType == "" {
		result.RootType = "Root"
	}
	result.RootType = toTypeName(result.RootType)

	b := newTypesBuilder(g, result)
	b.build(schema)
	b.emit()

	result.GenerateTime = time.Since(startTime)
	return result, nil
}
