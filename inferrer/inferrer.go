package inferrer

import (
	"fmt"
	"time"

	"github.com/erraggy/schematools/internal/query"
)

// Generate builds a fresh schema document describing a decoded JSON
// value. The document is stamped with the draft-07 $schema URI and the
// default generated title. The input is never modified.
func Generate(v any) *Schema {
	b := newBuilder(nil)
	return b.document(v, GeneratedTitle)
}

// Extend widens a base schema document so it also accepts data shaped
// like v. A fresh document is generated for v and merged into the base
// at the root: object roots merge with object roots and array roots
// with array roots, keeping the base's $schema and title. Any other
// combination discards the base and returns the fresh document.
//
// Neither input is modified; the result shares no structure with
// either. A nil base behaves like a mismatched root.
func Extend(base *Schema, v any) *Schema {
	return Merge(base, Generate(v))
}

// document wraps a built node with root metadata.
func (b *builder) document(v any, title string) *Schema {
	node := b.buildValue(v, 1)
	node.SchemaURI = DefaultSchemaURI
	node.Title = title
	return node
}

// GenerateWithOptions infers a schema using functional options,
// combining input source selection and configuration in one call.
//
// Example:
//
//	result, err := inferrer.GenerateWithOptions(
//	    inferrer.WithFilePath("data.json"),
//	    inferrer.WithTitle("User record"),
//	)
func GenerateWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("inferrer: invalid options: %w", err)
	}
	if cfg.hasBaseSource() {
		return nil, fmt.Errorf("inferrer: base schema options are only valid with ExtendWithOptions")
	}

	loadStart := time.Now()
	value, format, sourceName, err := cfg.resolveData()
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	samples, err := filterSamples(cfg.filter, value)
	if err != nil {
		return nil, err
	}

	title := cfg.title
	if title == "" {
		title = GeneratedTitle
	}

	b := newBuilder(cfg.logger)
	doc := b.document(samples[0], title)
	for _, sample := range samples[1:] {
		doc = Merge(doc, b.document(sample, title))
	}
	b.logger.Debug("schema generated",
		"source", sourceName,
		"samples", len(samples),
		"objects", b.stats.Objects,
		"arrays", b.stats.Arrays)

	return &Result{
		Schema:       doc,
		SourcePath:   sourceName,
		SourceFormat: format,
		Stats:        b.stats,
		Warnings:     b.warnings,
		LoadTime:     loadTime,
	}, nil
}

// ExtendWithOptions widens an existing schema document with new data
// using functional options. Exactly one base schema source and exactly
// one data source must be specified.
//
// Example:
//
//	result, err := inferrer.ExtendWithOptions(
//	    inferrer.WithBaseFilePath("schema.json"),
//	    inferrer.WithFilePath("new-data.json"),
//	)
//	if err == nil {
//	    fmt.Println(result.Changes.Summary())
//	}
func ExtendWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("inferrer: invalid options: %w", err)
	}
	if err := cfg.validateBaseSource(); err != nil {
		return nil, fmt.Errorf("inferrer: invalid options: %w", err)
	}

	loadStart := time.Now()
	base, err := cfg.resolveBase()
	if err != nil {
		return nil, err
	}
	value, format, sourceName, err := cfg.resolveData()
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	samples, err := filterSamples(cfg.filter, value)
	if err != nil {
		return nil, err
	}

	b := newBuilder(cfg.logger)
	merged := base
	for _, sample := range samples {
		merged = Merge(merged, b.document(sample, GeneratedTitle))
	}
	if cfg.title != "" {
		merged.Title = cfg.title
	}

	changes := compareSchemas(base, merged)
	b.logger.Debug("schema extended",
		"source", sourceName,
		"samples", len(samples),
		"changes", changes.Summary())

	return &Result{
		Schema:       merged,
		SourcePath:   sourceName,
		SourceFormat: format,
		Stats:        b.stats,
		Warnings:     b.warnings,
		Changes:      changes,
		LoadTime:     loadTime,
	}, nil
}

// filterSamples applies an optional jq filter. Without a filter the
// value itself is the single sample.
func filterSamples(filter string, value any) ([]any, error) {
	if filter == "" {
		return []any{value}, nil
	}
	return query.New().Apply(filter, value)
}
