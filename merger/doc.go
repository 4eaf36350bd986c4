// Package merger combines multiple JSON Schema documents into a single
// extended schema.
//
// The merger folds documents left to right with the same rules the
// inferrer uses to widen a schema with new samples: object roots merge
// property by property with required shrinking to the intersection,
// array roots merge structurally, and the first document's $schema and
// title survive. It uses the format (JSON or YAML) of the first
// document as the result format, ensuring format consistency when
// writing output with WriteResult.
//
// # Quick Start
//
// Merge schema files with the default configuration:
//
//	m := merger.New(merger.DefaultConfig())
//	result, err := m.Merge([]string{"user-v1.json", "user-v2.json"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = m.WriteResult(result, "user.json")
//
// Or merge documents parsed elsewhere:
//
//	docs := []merger.Document{
//		{SourcePath: "captured.json", Schema: captured},
//		{SourcePath: "baseline.json", Schema: baseline},
//	}
//	result, err := m.MergeDocuments(docs)
//
// # Mismatch Strategies
//
// Roots merge structurally only as object with object or array with
// array. Any other combination is a root mismatch, handled according
// to Config.OnMismatch:
//   - StrategyReplace: the conflicting document replaces the merged result (default)
//   - StrategyKeep: the conflicting document is skipped
//   - StrategyFail: the merge aborts with a *MismatchError
//
// StrategyReplace matches how [inferrer.Merge] resolves mismatched
// roots, so the default merge of N files behaves exactly like chaining
// N-1 extend operations.
//
// # Duplicate Inputs
//
// With Config.Dedupe set to DedupeExact (the default), documents that
// are structurally identical to another input are folded once and
// counted in MergeStats.DuplicatesSkipped. DedupeNone folds every
// document instead.
//
// # Related Packages
//
// The merger builds on other schematools packages:
//   - [github.com/erraggy/schematools/inferrer] - Generate and extend schemas from data samples
package merger
