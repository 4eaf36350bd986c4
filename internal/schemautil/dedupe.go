package schemautil

import "github.com/erraggy/schematools/inferrer"

// CompareFunc reports whether two schema documents are identical.
// The definition of identical stays with the caller (the merger
// compares encoded documents); injection also avoids an import cycle.
type CompareFunc func(left, right *inferrer.Schema) bool

// DeduplicationConfig configures input document deduplication behavior.
type DeduplicationConfig struct {
	// Mode controls duplicate detection. "none" disables it; any other
	// value, including the default "exact", detects duplicates.
	// Uses merger.DedupeMode values.
	Mode string
}

// DefaultDeduplicationConfig returns a DeduplicationConfig with sensible defaults.
func DefaultDeduplicationConfig() DeduplicationConfig {
	return DeduplicationConfig{
		Mode: "exact",
	}
}

// NamedSchema pairs a schema document with the display name used in
// duplicate reporting. Names are expected to be unique across one
// Deduplicate call.
type NamedSchema struct {
	Name   string
	Schema *inferrer.Schema
}

// DeduplicationResult records which input documents duplicated an
// earlier one.
type DeduplicationResult struct {
	aliases map[string]string
}

// IsAlias reports whether the named document duplicated an earlier one.
func (r *DeduplicationResult) IsAlias(name string) bool {
	_, ok := r.aliases[name]
	return ok
}

// CanonicalName returns the name of the earlier document the named one
// duplicates. Names that are not aliases are returned unchanged.
func (r *DeduplicationResult) CanonicalName(name string) string {
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	return name
}

// Duplicates returns the number of documents marked as duplicates.
func (r *DeduplicationResult) Duplicates() int {
	return len(r.aliases)
}

// SchemaDeduplicator finds documents in an ordered input list that are
// identical to an earlier document. The first occurrence of a shape is
// canonical; later matches become aliases of it.
type SchemaDeduplicator struct {
	config  DeduplicationConfig
	hasher  *SchemaHasher
	compare CompareFunc
}

// NewSchemaDeduplicator creates a new SchemaDeduplicator. The compare
// function confirms equivalence after a structural hash match; if it is
// nil, matching hashes alone decide (not recommended, hashes can
// collide).
func NewSchemaDeduplicator(config DeduplicationConfig, compare CompareFunc) *SchemaDeduplicator {
	return &SchemaDeduplicator{
		config:  config,
		hasher:  NewSchemaHasher(),
		compare: compare,
	}
}

// Deduplicate scans docs in input order. Each document is hashed and
// checked against the canonical documents sharing that hash: a
// confirmed match records an alias, anything else becomes a new
// canonical. Distinct documents that collide on a hash stay separate
// as long as compare can tell them apart.
func (d *SchemaDeduplicator) Deduplicate(docs []NamedSchema) *DeduplicationResult {
	result := &DeduplicationResult{aliases: make(map[string]string)}
	if len(docs) < 2 || d.config.Mode == "none" {
		return result
	}

	canonical := make(map[uint64][]NamedSchema)
	for _, doc := range docs {
		key := d.hasher.Hash(doc.Schema)
		if earlier, ok := d.findMatch(canonical[key], doc.Schema); ok {
			result.aliases[doc.Name] = earlier
			continue
		}
		canonical[key] = append(canonical[key], doc)
	}
	return result
}

// findMatch returns the name of the first canonical document the schema
// is identical to.
func (d *SchemaDeduplicator) findMatch(earlier []NamedSchema, schema *inferrer.Schema) (string, bool) {
	for _, candidate := range earlier {
		if d.compare == nil || d.compare(candidate.Schema, schema) {
			return candidate.Name, true
		}
	}
	return "", false
}
