package schemautil

import (
	"hash"
	"hash/fnv"
	"reflect"
	"sort"

	"github.com/erraggy/schematools/inferrer"
)

// SchemaHasher computes structural hashes for schemas.
// Structural hashes ignore metadata fields ($schema, title) and focus
// on fields that affect what the schema accepts.
type SchemaHasher struct {
	visited map[uintptr]bool
}

// NewSchemaHasher creates a new SchemaHasher.
func NewSchemaHasher() *SchemaHasher {
	return &SchemaHasher{
		visited: make(map[uintptr]bool),
	}
}

// Hash computes a structural hash for a schema.
// Schemas with identical structural properties will have the same hash.
// Note: Hash collisions are possible; use deep comparison to verify equivalence.
func (h *SchemaHasher) Hash(schema *inferrer.Schema) uint64 {
	clear(h.visited) // Reset visited map without reallocating
	hasher := fnv.New64a()
	h.hashSchema(hasher, schema)
	return hasher.Sum64()
}

// hashSchema recursively hashes a schema's structural properties.
func (h *SchemaHasher) hashSchema(hasher hash.Hash64, schema *inferrer.Schema) {
	if schema == nil {
		h.writeString(hasher, "nil")
		return
	}

	// Check for circular reference
	ptr := reflect.ValueOf(schema).Pointer()
	if h.visited[ptr] {
		h.writeString(hasher, "circular")
		return
	}
	h.visited[ptr] = true
	defer func() { h.visited[ptr] = false }()

	// Type (handle both string and list forms)
	h.hashType(hasher, schema.Type)

	// Required (sort for order-independent comparison)
	if len(schema.Required) > 0 {
		h.writeString(hasher, "required:")
		sorted := make([]string, len(schema.Required))
		copy(sorted, schema.Required)
		sort.Strings(sorted)
		for _, r := range sorted {
			h.writeString(hasher, r)
		}
	}

	// Properties (sorted by key for deterministic hashing)
	if len(schema.Properties) > 0 {
		h.writeString(hasher, "properties:")
		keys := make([]string, 0, len(schema.Properties))
		for k := range schema.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.writeString(hasher, k)
			h.hashSchema(hasher, schema.Properties[k])
		}
	}

	// Items (single-schema and tuple forms hash differently)
	h.hashItems(hasher, schema.Items)

	// AdditionalItems
	if schema.AdditionalItems != nil {
		if *schema.AdditionalItems {
			h.writeString(hasher, "additionalItems:true")
		} else {
			h.writeString(hasher, "additionalItems:false")
		}
	}
}

// hashType handles both string and list type values.
func (h *SchemaHasher) hashType(hasher hash.Hash64, t any) {
	h.writeString(hasher, "type:")
	switch v := t.(type) {
	case string:
		h.writeString(hasher, v)
	case []any:
		// Sort for consistent hashing
		types := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		sort.Strings(types)
		for _, s := range types {
			h.writeString(hasher, s)
		}
	case []string:
		// Sort for consistent hashing
		sorted := make([]string, len(v))
		copy(sorted, v)
		sort.Strings(sorted)
		for _, s := range sorted {
			h.writeString(hasher, s)
		}
	}
}

// hashItems handles both forms of items. Tuple positions are
// order-sensitive, so they hash in declaration order.
func (h *SchemaHasher) hashItems(hasher hash.Hash64, items any) {
	switch v := items.(type) {
	case *inferrer.Schema:
		h.writeString(hasher, "items:")
		h.hashSchema(hasher, v)
	case []*inferrer.Schema:
		h.writeString(hasher, "tuple:")
		for _, item := range v {
			h.hashSchema(hasher, item)
		}
	}
}

// writeString writes a string to the hash.
func (h *SchemaHasher) writeString(hasher hash.Hash64, s string) {
	_, _ = hasher.Write([]byte(s))
}
