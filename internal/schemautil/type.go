// Package schemautil provides utilities for working with schema type
// declarations.
//
// This package centralizes type assertion patterns for the draft-07
// type keyword, which may hold either a single string or a list of
// strings once extension has widened a node.
package schemautil

import "github.com/erraggy/schematools/inferrer"

// GetSchemaTypes returns the type(s) from a schema, handling both the
// single-string and list representations.
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["number", "string"]} returns ["number", "string"]
func GetSchemaTypes(schema *inferrer.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// GetPrimaryType returns the first non-null type from a schema. This
// is useful when a single representative type must be chosen for a
// widened node, as in code generation.
//
// Returns an empty string if the schema is nil or has no types.
func GetPrimaryType(schema *inferrer.Schema) string {
	types := GetSchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable checks if the schema allows null values, indicated by
// "null" in the type list.
func IsNullable(schema *inferrer.Schema) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == "null" {
			return true
		}
	}
	return false
}

// HasType checks if the schema includes the specified type.
func HasType(schema *inferrer.Schema, targetType string) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}

// IsSingleType returns true if the schema has exactly one type (not counting null).
func IsSingleType(schema *inferrer.Schema) bool {
	types := GetSchemaTypes(schema)
	nonNullCount := 0
	for _, t := range types {
		if t != "null" {
			nonNullCount++
		}
	}
	return nonNullCount == 1
}
