package schemautil

import (
	"testing"

	"github.com/erraggy/schematools/inferrer"
)

// BenchmarkSchemaHasher_Hash benchmarks the hashing of various schema shapes.
func BenchmarkSchemaHasher_Hash(b *testing.B) {
	b.Run("Simple", func(b *testing.B) {
		schema := &inferrer.Schema{
			Type: "string",
		}
		h := NewSchemaHasher()

		for b.Loop() {
			_ = h.Hash(schema)
		}
	})

	b.Run("Object", func(b *testing.B) {
		schema := &inferrer.Schema{
			Type: "object",
			Properties: map[string]*inferrer.Schema{
				"id":   {Type: "number"},
				"name": {Type: "string"},
			},
			Required: []string{"id", "name"},
		}
		h := NewSchemaHasher()

		for b.Loop() {
			_ = h.Hash(schema)
		}
	})

	b.Run("ComplexObject", func(b *testing.B) {
		schema := &inferrer.Schema{
			Type: "object",
			Properties: map[string]*inferrer.Schema{
				"id":     {Type: "number"},
				"name":   {Type: "string"},
				"email":  {Type: []string{"null", "string"}},
				"active": {Type: "boolean"},
				"tags":   {Type: "array", Items: &inferrer.Schema{Type: "string"}},
				"point": {
					Type: "array",
					Items: []*inferrer.Schema{
						{Type: "number"},
						{Type: "number"},
						{Type: "string"},
					},
					AdditionalItems: boolPtr(false),
				},
			},
			Required: []string{"email", "id", "name"},
		}
		h := NewSchemaHasher()

		for b.Loop() {
			_ = h.Hash(schema)
		}
	})

	b.Run("NestedObject", func(b *testing.B) {
		schema := &inferrer.Schema{
			Type: "object",
			Properties: map[string]*inferrer.Schema{
				"user": {
					Type: "object",
					Properties: map[string]*inferrer.Schema{
						"profile": {
							Type: "object",
							Properties: map[string]*inferrer.Schema{
								"name":    {Type: "string"},
								"avatar":  {Type: "string"},
								"bio":     {Type: "string"},
								"website": {Type: "string"},
							},
							Required: []string{"avatar", "bio", "name", "website"},
						},
						"settings": {
							Type: "object",
							Properties: map[string]*inferrer.Schema{
								"theme":         {Type: "string"},
								"notifications": {Type: "boolean"},
								"language":      {Type: "string"},
							},
						},
					},
				},
			},
		}
		h := NewSchemaHasher()

		for b.Loop() {
			_ = h.Hash(schema)
		}
	})
}
