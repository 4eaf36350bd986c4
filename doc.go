// Package schematools provides tools for inferring JSON Schema documents from
// example JSON data and for widening existing schemas as new data is observed.
//
// schematools builds structural draft-07 schemas (the keyword subset type,
// properties, required, items, additionalItems, $schema, title) directly from
// sample payloads: objects become object schemas whose present keys are
// required, arrays become either a single-item schema or a positional tuple
// depending on element homogeneity, and merging two schemas produces the
// minimal schema that accepts data shaped like either input.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - inferrer: Generate a schema from data, and extend (widen) an existing
//     schema with newly observed data
//   - merger: Merge multiple schema documents into one widened document
//   - codegen: Emit Go type declarations from a schema or from sample data
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/schematools
//
// # Quick Start
//
// Generate a schema from a data file:
//
//	import "github.com/erraggy/schematools/inferrer"
//
//	result, err := inferrer.GenerateWithOptions(
//		inferrer.WithFilePath("users.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := result.Schema.MarshalIndent()
//	fmt.Println(string(data))
//
// Widen an existing schema with new data:
//
//	result, err := inferrer.ExtendWithOptions(
//		inferrer.WithBaseFilePath("users.schema.json"),
//		inferrer.WithFilePath("new-users.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, change := range result.Changes.Lines() {
//		fmt.Println(change)
//	}
//
// Work with in-memory values directly:
//
//	schema := inferrer.Generate(map[string]any{"name": "Alice", "age": 30})
//	widened := inferrer.Extend(schema, map[string]any{"name": "Bob"})
//	// widened.Required == ["name"]: age was absent from the second sample
//
// # Inferrer Package
//
// The inferrer package is the core engine. Generation classifies every value
// into a type tag (null, boolean, number, string, array, object), builds
// object schemas with sorted properties and all present keys required, and
// analyzes arrays for homogeneity: elements sharing one top-level type produce
// a single "items" schema (object elements are folded into one unified object
// schema), while mixed-type elements produce tuple validation with one schema
// per position and additionalItems: false.
//
// Extension widens rather than replaces: properties union, required shrinks
// to the intersection, and scalar types that differ become a sorted type
// union such as ["number", "string"]. A root type mismatch (extending an
// object schema with array data) discards the base document and returns the
// fresh schema for the new data.
//
// Output is deterministic: object keys serialize in lexicographic order,
// required lists and type unions are sorted, and repeated runs over the same
// input produce byte-identical documents.
//
// # Merger Package
//
// The merger package merges whole schema documents (files) rather than data,
// using the same widening rules at every level. Root type mismatches are
// handled per a configurable strategy: replace (later document wins), keep
// (earlier document wins), or fail.
//
//	m := merger.New(merger.DefaultConfig())
//	result, err := m.Merge([]string{"v1.schema.json", "v2.schema.json"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = m.WriteResult(result, "merged.schema.json")
//
// # Codegen Package
//
// The codegen package converts a schema (or sample data) into Go type
// declarations: object schemas become structs with json tags, optional
// properties (not in required) gain omitempty, homogeneous arrays map to
// slices, and type unions or tuples map to any.
//
// # Command-Line Interface
//
// In addition to the library packages, schematools provides a command-line
// interface:
//
//	# Generate a schema from data
//	schematools generate users.json
//
//	# Widen an existing schema with new data
//	schematools extend -b users.schema.json new-users.json
//
//	# Merge schema documents
//	schematools merge -o merged.schema.json a.schema.json b.schema.json
//
//	# Re-encode a schema between JSON and YAML
//	schematools convert -f yaml users.schema.json
//
//	# Emit Go types
//	schematools codegen --package model users.json
//
//	# Run the MCP server (stdio)
//	schematools mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/schematools/cmd/schematools@latest
//
// # Error Handling
//
// The engine itself is total: classification never fails (unrecognized Go
// values map to an "unknown" tag and surface as warnings), and every merge
// combination of node shapes is defined. Errors are reserved for the I/O
// boundary: unreadable files, undecodable input, malformed base schema
// documents, and bad filter expressions, reported through the sentinel and
// typed errors in the schemaerrors package.
//
// # Security Considerations
//
//   - Output files are created with restrictive permissions (0600)
//   - Output paths are checked against inputs to prevent overwriting sources
//   - Input size limits are enforced by the MCP server configuration
//
// # Limitations
//
//   - Only the structural keyword subset is read or emitted; keywords outside
//     it in a base schema are dropped, not preserved
//   - Homogeneity is decided by top-level element type only: two differently
//     shaped objects in one array are merged into a single item schema, never
//     split into a tuple
//   - Very deeply nested input recurses proportionally; there is no explicit
//     depth guard
//
// # Additional Resources
//
//   - JSON Schema Specification: https://json-schema.org
//   - Go Package Documentation: https://pkg.go.dev/github.com/erraggy/schematools
package schematools
