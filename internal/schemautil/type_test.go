package schemautil

import (
	"testing"

	"github.com/erraggy/schematools/inferrer"
)

func TestGetSchemaTypes(t *testing.T) {
	tests := []struct {
		name     string
		schema   *inferrer.Schema
		expected []string
	}{
		{
			name:     "nil schema",
			schema:   nil,
			expected: nil,
		},
		{
			name:     "empty type",
			schema:   &inferrer.Schema{Type: ""},
			expected: nil,
		},
		{
			name:     "string type",
			schema:   &inferrer.Schema{Type: "string"},
			expected: []string{"string"},
		},
		{
			name:     "number type",
			schema:   &inferrer.Schema{Type: "number"},
			expected: []string{"number"},
		},
		{
			name:     "widened list of strings",
			schema:   &inferrer.Schema{Type: []string{"number", "string"}},
			expected: []string{"number", "string"},
		},
		{
			name:     "list of any",
			schema:   &inferrer.Schema{Type: []any{"null", "string"}},
			expected: []string{"null", "string"},
		},
		{
			name:     "list with non-string values filtered",
			schema:   &inferrer.Schema{Type: []any{"string", 123, "null"}},
			expected: []string{"string", "null"},
		},
		{
			name:     "unsupported type returns nil",
			schema:   &inferrer.Schema{Type: 123},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetSchemaTypes(tt.schema)
			if len(result) != len(tt.expected) {
				t.Errorf("GetSchemaTypes() = %v, want %v", result, tt.expected)
				return
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("GetSchemaTypes()[%d] = %v, want %v", i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestGetPrimaryType(t *testing.T) {
	tests := []struct {
		name     string
		schema   *inferrer.Schema
		expected string
	}{
		{
			name:     "nil schema",
			schema:   nil,
			expected: "",
		},
		{
			name:     "single string type",
			schema:   &inferrer.Schema{Type: "string"},
			expected: "string",
		},
		{
			name:     "list with null first",
			schema:   &inferrer.Schema{Type: []string{"null", "string"}},
			expected: "string",
		},
		{
			name:     "list with string first",
			schema:   &inferrer.Schema{Type: []string{"string", "null"}},
			expected: "string",
		},
		{
			name:     "only null type",
			schema:   &inferrer.Schema{Type: []string{"null"}},
			expected: "null",
		},
		{
			name:     "multiple non-null types",
			schema:   &inferrer.Schema{Type: []string{"number", "string"}},
			expected: "number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetPrimaryType(tt.schema)
			if result != tt.expected {
				t.Errorf("GetPrimaryType() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsNullable(t *testing.T) {
	tests := []struct {
		name     string
		schema   *inferrer.Schema
		expected bool
	}{
		{
			name:     "nil schema",
			schema:   nil,
			expected: false,
		},
		{
			name:     "string type not nullable",
			schema:   &inferrer.Schema{Type: "string"},
			expected: false,
		},
		{
			name:     "list with null",
			schema:   &inferrer.Schema{Type: []string{"null", "string"}},
			expected: true,
		},
		{
			name:     "list without null",
			schema:   &inferrer.Schema{Type: []string{"number", "string"}},
			expected: false,
		},
		{
			name:     "only null",
			schema:   &inferrer.Schema{Type: "null"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNullable(tt.schema)
			if result != tt.expected {
				t.Errorf("IsNullable() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestHasType(t *testing.T) {
	tests := []struct {
		name       string
		schema     *inferrer.Schema
		targetType string
		expected   bool
	}{
		{
			name:       "nil schema",
			schema:     nil,
			targetType: "string",
			expected:   false,
		},
		{
			name:       "matching string type",
			schema:     &inferrer.Schema{Type: "string"},
			targetType: "string",
			expected:   true,
		},
		{
			name:       "non-matching string type",
			schema:     &inferrer.Schema{Type: "number"},
			targetType: "string",
			expected:   false,
		},
		{
			name:       "matching in list",
			schema:     &inferrer.Schema{Type: []string{"null", "string"}},
			targetType: "null",
			expected:   true,
		},
		{
			name:       "not in list",
			schema:     &inferrer.Schema{Type: []string{"number", "string"}},
			targetType: "boolean",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HasType(tt.schema, tt.targetType)
			if result != tt.expected {
				t.Errorf("HasType() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsSingleType(t *testing.T) {
	tests := []struct {
		name     string
		schema   *inferrer.Schema
		expected bool
	}{
		{
			name:     "nil schema",
			schema:   nil,
			expected: false,
		},
		{
			name:     "single string type",
			schema:   &inferrer.Schema{Type: "string"},
			expected: true,
		},
		{
			name:     "string with null",
			schema:   &inferrer.Schema{Type: []string{"null", "string"}},
			expected: true,
		},
		{
			name:     "multiple non-null types",
			schema:   &inferrer.Schema{Type: []string{"number", "string"}},
			expected: false,
		},
		{
			name:     "only null",
			schema:   &inferrer.Schema{Type: []string{"null"}},
			expected: false,
		},
		{
			name:     "three types with null",
			schema:   &inferrer.Schema{Type: []string{"null", "number", "string"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSingleType(tt.schema)
			if result != tt.expected {
				t.Errorf("IsSingleType() = %v, want %v", result, tt.expected)
			}
		})
	}
}
