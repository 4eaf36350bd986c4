// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schematools/inferrer"
)

// NewSimpleSchemaDocument creates a minimal object schema document for testing.
// Contains two required scalar properties plus the standard metadata.
func NewSimpleSchemaDocument() *inferrer.Schema {
	return &inferrer.Schema{
		SchemaURI: inferrer.DefaultSchemaURI,
		Title:     "Test Record",
		Type:      inferrer.TypeObject,
		Properties: map[string]*inferrer.Schema{
			"id":   {Type: inferrer.TypeNumber},
			"name": {Type: inferrer.TypeString},
		},
		Required: []string{"id", "name"},
	}
}

// NewDetailedSchemaDocument creates a schema document with common widening
// shapes for testing: a nested object, an array of objects, and a nullable
// scalar.
func NewDetailedSchemaDocument() *inferrer.Schema {
	doc := NewSimpleSchemaDocument()
	doc.Properties["note"] = &inferrer.Schema{
		Type: []string{inferrer.TypeNull, inferrer.TypeString},
	}
	doc.Properties["owner"] = &inferrer.Schema{
		Type: inferrer.TypeObject,
		Properties: map[string]*inferrer.Schema{
			"email": {Type: inferrer.TypeString},
			"name":  {Type: inferrer.TypeString},
		},
		Required: []string{"email", "name"},
	}
	doc.Properties["tags"] = &inferrer.Schema{
		Type: inferrer.TypeArray,
		Items: &inferrer.Schema{
			Type: inferrer.TypeObject,
			Properties: map[string]*inferrer.Schema{
				"label": {Type: inferrer.TypeString},
			},
			Required: []string{"label"},
		},
	}
	doc.Required = append(doc.Required, "owner", "tags")
	return doc
}

// NewSimpleSample returns a decoded data value matching the simple schema
// document.
func NewSimpleSample() map[string]any {
	return map[string]any{
		"id":   7.0,
		"name": "widget",
	}
}

// NewDetailedSample returns a decoded data value with nesting, an array,
// and a null, matching the detailed schema document.
func NewDetailedSample() map[string]any {
	return map[string]any{
		"id":   9.0,
		"name": "gadget",
		"note": nil,
		"owner": map[string]any{
			"email": "owner@example.com",
			"name":  "Alex",
		},
		"tags": []any{
			map[string]any{"label": "new"},
		},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
