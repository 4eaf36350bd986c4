// Package inferrer infers JSON Schema documents from example data and
// widens existing schemas to accept newly observed data.
//
// The inferred documents use a structural subset of draft-07: type,
// properties, required, items, additionalItems, $schema, and title.
// Generation classifies each value recursively; objects record every
// present key as required, and arrays choose between a homogeneous
// single-item schema and positional tuple validation based on the
// elements' top-level types. Widening merges a fresh schema for the
// new data into the base document, unioning properties and type sets
// while shrinking required to the intersection, so the result accepts
// data shaped like either input.
//
// # Quick Start
//
// Generate a schema from a file using functional options:
//
//	result, err := inferrer.GenerateWithOptions(
//		inferrer.WithFilePath("data.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.Encode(inferrer.SourceFormatJSON)
//	fmt.Println(string(out))
//
// Widen an existing schema with new data and report what changed:
//
//	result, err := inferrer.ExtendWithOptions(
//		inferrer.WithBaseFilePath("schema.json"),
//		inferrer.WithFilePath("new-data.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Changes.Summary())
//
// Or work with in-memory values directly:
//
//	schema := inferrer.Generate(map[string]any{"name": "Alice", "age": 30})
//	wider := inferrer.Extend(schema, map[string]any{"name": "Bob"})
//
// # Determinism
//
// Two calls over the same logical input marshal to byte-identical
// output: property names and required keys are sorted, type unions
// follow a fixed priority order (null, boolean, number, string,
// array, object, then unknown tags lexicographically), and JSON
// encoding is 2-space indented with sorted keys.
//
// # Error Handling
//
// The engine itself is total: classification never fails (values
// outside the JSON data model classify as "unknown" and surface as
// warnings) and every merge combination is defined. Errors come only
// from the I/O boundary: unreadable inputs, malformed JSON/YAML, and
// schema documents whose keyword shapes the data model cannot
// represent. These are reported through the schemaerrors package and
// support errors.Is and errors.As.
//
// # Limitations
//
// Inference recurses by input depth, so extremely nested documents
// can exhaust the stack. Schema keywords outside the structural
// subset are dropped when loading a base document.
package inferrer
