// Package codegen provides Go type generation from JSON Schema documents.
//
// The generator turns draft-07 schemas, typically produced by the
// inferrer package, into plain Go struct declarations so data matching
// a schema can be decoded directly into typed values. Generated code
// uses only builtin types and carries no runtime dependencies.
//
// # Quick Start
//
// Generate types using functional options:
//
//	result, err := codegen.GenerateWithOptions(
//		codegen.WithSchemaFile("schema.json"),
//		codegen.WithPackageName("orders"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := codegen.New()
//	g.PackageName = "orders"
//	result, _ := g.Generate("schema.json")
//	result.WriteFiles("./generated")
//
// # Type Mapping
//
// Schema types are mapped to Go types as follows:
//   - string → string
//   - number → float64
//   - integer → int64
//   - boolean → bool
//   - array → []T
//   - object → struct (map[string]any when no properties are known)
//   - null paired with another type → pointer to that type
//
// Optional properties are tagged omitempty and use pointer types when
// UsePointers is enabled. Mixed-type unions and tuple arrays have no
// single Go representation and fall back to any; each fallback is
// recorded as a warning on the result.
//
// # Generated Files
//
// The generator produces a single types.go file containing the root
// type and one declaration per nested object, formatted with
// goimports-equivalent processing. See [CodegenResult] for the full
// result surface.
//
// # Related Packages
//
// Schemas are produced by [github.com/erraggy/schematools/inferrer]
// and merged across documents by
// [github.com/erraggy/schematools/merger].
package codegen
