package merger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/schemautil"
	"github.com/erraggy/schematools/schemaerrors"
)

// MismatchStrategy defines how to handle a document whose root type
// cannot merge with the result built so far.
type MismatchStrategy string

const (
	// StrategyReplace folds the conflicting document anyway: it replaces
	// the merged result, the same way inferrer.Merge resolves mismatched
	// roots. This is the default.
	StrategyReplace MismatchStrategy = "replace"
	// StrategyKeep skips the conflicting document and keeps the result
	// built so far.
	StrategyKeep MismatchStrategy = "keep"
	// StrategyFail aborts the merge with a *MismatchError.
	StrategyFail MismatchStrategy = "fail"
)

// ValidStrategies returns all valid mismatch strategy names.
func ValidStrategies() []string {
	return []string{
		string(StrategyReplace),
		string(StrategyKeep),
		string(StrategyFail),
	}
}

// IsValidStrategy checks if a strategy string is valid
func IsValidStrategy(strategy string) bool {
	switch MismatchStrategy(strategy) {
	case StrategyReplace, StrategyKeep, StrategyFail:
		return true
	default:
		return false
	}
}

// DedupeMode defines how exact duplicate input documents are handled.
type DedupeMode string

const (
	// DedupeNone folds every document, including exact duplicates.
	DedupeNone DedupeMode = "none"
	// DedupeExact folds a document once and skips later inputs that are
	// structurally identical to it. This is the default.
	DedupeExact DedupeMode = "exact"
)

// ValidDedupeModes returns all valid dedupe mode names.
func ValidDedupeModes() []string {
	return []string{
		string(DedupeNone),
		string(DedupeExact),
	}
}

// IsValidDedupeMode checks if a dedupe mode string is valid
func IsValidDedupeMode(mode string) bool {
	switch DedupeMode(mode) {
	case DedupeNone, DedupeExact:
		return true
	default:
		return false
	}
}

// Config configures how schema documents are merged
type Config struct {
	// OnMismatch selects how documents with unmergeable root types are
	// handled. Empty selects StrategyReplace.
	OnMismatch MismatchStrategy
	// Dedupe selects how exact duplicate inputs are handled. Empty
	// selects DedupeExact.
	Dedupe DedupeMode
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() Config {
	return Config{
		OnMismatch: StrategyReplace,
		Dedupe:     DedupeExact,
	}
}

// Merger merges multiple schema documents into a single extended
// schema. A Merger holds no per-merge state and can be reused.
type Merger struct {
	config Config
}

// New creates a new Merger with the given configuration.
func New(config Config) *Merger {
	return &Merger{config: config}
}

// Document pairs a parsed schema with the path it was loaded from.
// SourcePath appears in warnings and error messages; it may be empty
// for schemas built in memory.
type Document struct {
	// SourcePath identifies where the schema came from
	SourcePath string
	// Schema is the parsed schema document
	Schema *inferrer.Schema
}

// MergeStats counts the documents handled during one merge.
type MergeStats struct {
	// Documents is the number of input documents
	Documents int `json:"documents"`
	// DuplicatesSkipped is the number of inputs skipped as exact
	// duplicates of another input
	DuplicatesSkipped int `json:"duplicatesSkipped,omitempty"`
	// RootMismatches is the number of inputs whose root type could not
	// merge with the result built so far
	RootMismatches int `json:"rootMismatches,omitempty"`
	// Properties is the number of property nodes in the merged schema,
	// counted recursively through objects and array items
	Properties int `json:"properties"`
}

// MergeResult contains the outcome of a merge operation.
type MergeResult struct {
	// Schema is the merged schema document
	Schema *inferrer.Schema
	// SourcePaths lists the inputs in order; documents without a path
	// get a positional placeholder
	SourcePaths []string
	// SourceFormat is the detected format of the first input file;
	// output defaults to it so merged files keep their original format
	SourceFormat inferrer.SourceFormat
	// Stats counts the documents handled during the merge
	Stats MergeStats
	// Warnings holds non-fatal diagnostics (duplicates, root mismatches)
	Warnings []string
	// LoadTime is the time taken to load and decode the input files;
	// zero when documents were merged directly
	LoadTime time.Duration
}

// AddWarning appends a non-fatal diagnostic to the result.
func (r *MergeResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Encode renders the merged schema deterministically in the given
// format. JSON output is 2-space indented with all object keys sorted.
func (r *MergeResult) Encode(format inferrer.SourceFormat) ([]byte, error) {
	if r.Schema == nil {
		return nil, fmt.Errorf("merger: result has no schema")
	}
	if format == inferrer.SourceFormatYAML {
		data, err := yaml.Marshal(r.Schema)
		if err != nil {
			return nil, fmt.Errorf("merger: failed to marshal schema as YAML: %w", err)
		}
		return data, nil
	}
	data, err := r.Schema.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("merger: failed to marshal schema as JSON: %w", err)
	}
	return data, nil
}

// MismatchError provides detailed information about a root type
// mismatch rejected by StrategyFail.
type MismatchError struct {
	// FirstSource identifies the document the merged root came from
	FirstSource string
	// FirstType is the root type of the merged result
	FirstType string
	// SecondSource identifies the conflicting document
	SecondSource string
	// SecondType is the conflicting document's root type
	SecondType string
	// Strategy is the mismatch strategy that rejected the merge
	Strategy MismatchStrategy
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("merger: root type mismatch: '%s' vs '%s'\n"+
		"  Merged so far from: %s\n"+
		"  Conflicts with:     %s\n"+
		"  Strategy: %s (set --on-mismatch to 'replace' or 'keep' to resolve)",
		e.FirstType, e.SecondType,
		e.FirstSource,
		e.SecondSource,
		e.Strategy)
}

// Merge loads the given schema files and merges them into a single
// document. At least two paths are required. The result's format
// follows the first file, so a YAML-first merge writes YAML by default.
func (m *Merger) Merge(paths []string) (*MergeResult, error) {
	if len(paths) < 2 {
		return nil, fmt.Errorf("merger: at least 2 schema documents are required for merging, got %d", len(paths))
	}

	start := time.Now()
	docs := make([]Document, 0, len(paths))
	var format inferrer.SourceFormat
	for i, path := range paths {
		schema, sourceFormat, err := inferrer.LoadSchemaFile(path)
		if err != nil {
			return nil, fmt.Errorf("merger: failed to load %s (%d of %d): %w", path, i+1, len(paths), err)
		}
		if i == 0 {
			format = sourceFormat
		}
		docs = append(docs, Document{SourcePath: path, Schema: schema})
	}
	loadTime := time.Since(start)

	result, err := m.MergeDocuments(docs)
	if err != nil {
		return nil, err
	}
	result.SourceFormat = format
	result.LoadTime = loadTime
	return result, nil
}

// MergeDocuments merges already-parsed schema documents in the order
// given. At least two documents are required and each must carry a
// schema. The result's format defaults to JSON; Merge sets it from the
// first input file instead.
//
// The merged document always carries a $schema URI and a title, with
// the standard defaults filled in when the surviving root lacks them.
// Input schemas are never mutated.
func (m *Merger) MergeDocuments(docs []Document) (*MergeResult, error) {
	if len(docs) < 2 {
		return nil, fmt.Errorf("merger: at least 2 schema documents are required for merging, got %d", len(docs))
	}
	strategy := m.config.OnMismatch
	if strategy == "" {
		strategy = StrategyReplace
	}
	if !IsValidStrategy(string(strategy)) {
		return nil, fmt.Errorf("merger: unknown mismatch strategy: %s", strategy)
	}
	mode := m.config.Dedupe
	if mode == "" {
		mode = DedupeExact
	}
	if !IsValidDedupeMode(string(mode)) {
		return nil, fmt.Errorf("merger: unknown dedupe mode: %s", mode)
	}

	result := &MergeResult{
		SourceFormat: inferrer.SourceFormatJSON,
		SourcePaths:  make([]string, 0, len(docs)),
	}
	result.Stats.Documents = len(docs)

	// Display names double as dedupe keys, so they are uniquified when
	// the same path appears twice.
	named := make([]schemautil.NamedSchema, len(docs))
	taken := make(map[string]bool, len(docs))
	for i, doc := range docs {
		if doc.Schema == nil {
			return nil, fmt.Errorf("merger: document %d of %d has no schema", i+1, len(docs))
		}
		name := doc.SourcePath
		if name == "" {
			name = fmt.Sprintf("document %d", i+1)
		}
		if taken[name] {
			name = fmt.Sprintf("%s (input %d)", name, i+1)
		}
		taken[name] = true
		named[i] = schemautil.NamedSchema{Name: name, Schema: doc.Schema}
		result.SourcePaths = append(result.SourcePaths, name)
	}

	dedupe := schemautil.NewSchemaDeduplicator(
		schemautil.DeduplicationConfig{Mode: string(mode)},
		schemasIdentical,
	)
	groups := dedupe.Deduplicate(named)

	var merged *inferrer.Schema
	var mergedSource string
	for i, doc := range docs {
		name := named[i].Name
		if groups.IsAlias(name) {
			result.Stats.DuplicatesSkipped++
			result.AddWarning("%s is identical to %s; skipped", name, groups.CanonicalName(name))
			continue
		}
		if merged == nil {
			merged = doc.Schema.Clone()
			mergedSource = name
			continue
		}
		if rootsMergeable(merged, doc.Schema) {
			merged = inferrer.Merge(merged, doc.Schema)
			continue
		}
		result.Stats.RootMismatches++
		switch strategy {
		case StrategyReplace:
			result.AddWarning("root type mismatch: %s (%s) replaced the merged result (%s)",
				name, rootKind(doc.Schema), rootKind(merged))
			merged = inferrer.Merge(merged, doc.Schema)
			mergedSource = name
		case StrategyKeep:
			result.AddWarning("root type mismatch: %s (%s) skipped", name, rootKind(doc.Schema))
		case StrategyFail:
			return nil, &MismatchError{
				FirstSource:  mergedSource,
				FirstType:    rootKind(merged),
				SecondSource: name,
				SecondType:   rootKind(doc.Schema),
				Strategy:     strategy,
			}
		}
	}

	if merged.SchemaURI == "" {
		merged.SchemaURI = inferrer.DefaultSchemaURI
	}
	if merged.Title == "" {
		merged.Title = inferrer.ExtendedTitle
	}
	result.Schema = merged
	result.Stats.Properties = countProperties(merged)
	return result, nil
}

// outputFileMode is the file permission mode for output files (owner read/write only)
const outputFileMode = 0600

// WriteResult writes the merged schema to outputPath with restrictive
// permissions (0600). The format follows the output path extension
// (.yaml/.yml for YAML, .json for JSON); any other extension falls
// back to the result's source format. If the file already exists its
// permissions are reset to 0600 after writing.
func (m *Merger) WriteResult(result *MergeResult, outputPath string) error {
	format := formatForPath(outputPath, result.SourceFormat)
	data, err := result.Encode(format)
	if err != nil {
		return err
	}
	if format == inferrer.SourceFormatJSON {
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

// formatForPath picks the output format from the path extension,
// falling back to the result's source format for other extensions.
func formatForPath(path string, fallback inferrer.SourceFormat) inferrer.SourceFormat {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return inferrer.SourceFormatYAML
	case ".json":
		return inferrer.SourceFormatJSON
	}
	if fallback == inferrer.SourceFormatYAML {
		return inferrer.SourceFormatYAML
	}
	return inferrer.SourceFormatJSON
}

// rootsMergeable reports whether inferrer.Merge would merge the two
// roots structurally rather than replace the first with the second.
// Only single string-typed object/object and array/array pairs merge.
func rootsMergeable(a, b *inferrer.Schema) bool {
	aType, okA := a.Type.(string)
	bType, okB := b.Type.(string)
	if !okA || !okB || aType != bType {
		return false
	}
	return aType == inferrer.TypeObject || aType == inferrer.TypeArray
}

// rootKind names a document's root type for warnings and errors.
func rootKind(s *inferrer.Schema) string {
	types := schemautil.GetSchemaTypes(s)
	switch len(types) {
	case 0:
		return "untyped"
	case 1:
		return types[0]
	default:
		return strings.Join(types, "|")
	}
}

// schemasIdentical reports whether two documents marshal to identical
// bytes. Schema marshaling is deterministic, so byte equality means
// exact structural and metadata equality.
func schemasIdentical(a, b *inferrer.Schema) bool {
	bytesA, errA := json.Marshal(a)
	bytesB, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(bytesA, bytesB)
}

// countProperties counts property nodes recursively through object
// properties and array items.
func countProperties(s *inferrer.Schema) int {
	if s == nil {
		return 0
	}
	count := len(s.Properties)
	for _, prop := range s.Properties {
		count += countProperties(prop)
	}
	switch items := s.Items.(type) {
	case *inferrer.Schema:
		count += countProperties(items)
	case []*inferrer.Schema:
		for _, item := range items {
			count += countProperties(item)
		}
	}
	return count
}
