package inferrer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schematools/schemaerrors"
)

// TestGenerate_UserRecord tests the full generated document for a small
// object, including metadata stamping
func TestGenerate_UserRecord(t *testing.T) {
	schema := Generate(map[string]any{
		"name": "Alice",
		"age":  30.0,
	})

	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"properties": {
			"age": {"type": "number"},
			"name": {"type": "string"}
		},
		"required": ["age", "name"],
		"title": "Generated schema for Root",
		"type": "object"
	}`, mustMarshal(t, schema))
}

// TestExtend_RelaxesRequired tests that extending with data missing a
// key demotes that key from required to optional
func TestExtend_RelaxesRequired(t *testing.T) {
	base := Generate(map[string]any{
		"name": "Alice",
		"age":  30.0,
	})

	extended := Extend(base, map[string]any{"name": "Bob"})

	assert.Equal(t, []string{"name"}, extended.Required)
	require.Len(t, extended.Properties, 2)
	assert.Equal(t, "number", extended.Properties["age"].Type)
	assert.Equal(t, "string", extended.Properties["name"].Type)

	// Metadata comes from the base document.
	assert.Equal(t, DefaultSchemaURI, extended.SchemaURI)
	assert.Equal(t, GeneratedTitle, extended.Title)
}

// TestExtend_AcceptsBothShapes tests that the widened schema still
// describes both the original and the new data
func TestExtend_AcceptsBothShapes(t *testing.T) {
	base := Generate(map[string]any{"id": 1.0, "name": "first"})
	extended := Extend(base, map[string]any{"id": "abc123"})

	assert.Equal(t, []string{"number", "string"}, extended.Properties["id"].Type)
	assert.Equal(t, []string{"id"}, extended.Required)
}

// TestExtend_RootMismatchReplaces tests that extending an object schema
// with array data discards the base
func TestExtend_RootMismatchReplaces(t *testing.T) {
	base := Generate(map[string]any{"name": "Alice"})
	extended := Extend(base, []any{1.0, 2.0})

	assert.Equal(t, "array", extended.Type)
	assert.Nil(t, extended.Properties)
	assert.Equal(t, GeneratedTitle, extended.Title)
}

// TestExtend_NilBase tests that extending a nil base yields the
// generated document
func TestExtend_NilBase(t *testing.T) {
	extended := Extend(nil, map[string]any{"a": 1.0})
	assert.Equal(t, "object", extended.Type)
	assert.Equal(t, DefaultSchemaURI, extended.SchemaURI)
}

// TestGenerate_Deterministic tests that repeated runs over the same
// value produce byte-identical output
func TestGenerate_Deterministic(t *testing.T) {
	value := map[string]any{
		"zeta":  []any{1.0, "mix", true},
		"alpha": map[string]any{"b": 1.0, "a": "x", "c": nil},
		"mid":   []any{map[string]any{"k": 1.0}, map[string]any{"j": 2.0}},
	}

	first := mustMarshal(t, Generate(value))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, mustMarshal(t, Generate(value)))
	}
}

// TestGenerateWithOptions_FilePath tests generation from a JSON file
func TestGenerateWithOptions_FilePath(t *testing.T) {
	result, err := GenerateWithOptions(
		WithFilePath("../testdata/user.json"),
	)
	require.NoError(t, err)
	assert.Equal(t, "../testdata/user.json", result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Empty(t, result.Warnings)
	assert.Greater(t, result.Stats.Objects, 0)

	// The checked-in schema fixture is exactly what this data generates.
	fixture, err := os.ReadFile("../testdata/user-schema.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(fixture), mustMarshal(t, result.Schema))
}

// TestGenerateWithOptions_YAMLFile tests generation from a YAML file
func TestGenerateWithOptions_YAMLFile(t *testing.T) {
	result, err := GenerateWithOptions(
		WithFilePath("../testdata/events.yaml"),
	)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)

	schema := result.Schema
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"kind", "labels", "ready", "replicas"}, schema.Required)
	assert.Equal(t, "number", schema.Properties["replicas"].Type)
	assert.Equal(t, "boolean", schema.Properties["ready"].Type)
	assert.Equal(t, "object", schema.Properties["labels"].Type)
}

// TestGenerateWithOptions_Bytes tests generation from raw bytes with
// format sniffing
func TestGenerateWithOptions_Bytes(t *testing.T) {
	result, err := GenerateWithOptions(
		WithBytes([]byte(`{"active": true, "count": 3}`)),
	)
	require.NoError(t, err)
	assert.Equal(t, "Bytes.json", result.SourcePath)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, []string{"active", "count"}, result.Schema.Required)
}

// TestGenerateWithOptions_YAMLBytes tests format sniffing on YAML bytes
func TestGenerateWithOptions_YAMLBytes(t *testing.T) {
	result, err := GenerateWithOptions(
		WithBytes([]byte("name: test\ncount: 3\n")),
	)
	require.NoError(t, err)
	assert.Equal(t, "Bytes.yaml", result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "number", result.Schema.Properties["count"].Type)
}

// TestGenerateWithOptions_Reader tests generation from an io.Reader
func TestGenerateWithOptions_Reader(t *testing.T) {
	result, err := GenerateWithOptions(
		WithReader(strings.NewReader(`[1, 2, 3]`)),
	)
	require.NoError(t, err)
	assert.Equal(t, "Reader.json", result.SourcePath)
	assert.Equal(t, "array", result.Schema.Type)
}

// TestGenerateWithOptions_Value tests generation from an in-memory value
func TestGenerateWithOptions_Value(t *testing.T) {
	result, err := GenerateWithOptions(
		WithValue(map[string]any{"ok": true}),
	)
	require.NoError(t, err)
	assert.Equal(t, "Value", result.SourcePath)
	assert.Equal(t, SourceFormatValue, result.SourceFormat)
	assert.Equal(t, "boolean", result.Schema.Properties["ok"].Type)
}

// TestGenerateWithOptions_NullValue tests that WithValue(nil) infers the
// null type rather than failing validation
func TestGenerateWithOptions_NullValue(t *testing.T) {
	result, err := GenerateWithOptions(
		WithValue(nil),
	)
	require.NoError(t, err)
	assert.Equal(t, "null", result.Schema.Type)
}

// TestGenerateWithOptions_Title tests the title override
func TestGenerateWithOptions_Title(t *testing.T) {
	result, err := GenerateWithOptions(
		WithValue(map[string]any{"a": 1.0}),
		WithTitle("User record"),
	)
	require.NoError(t, err)
	assert.Equal(t, "User record", result.Schema.Title)
}

// TestGenerateWithOptions_SourceName tests the source name override
func TestGenerateWithOptions_SourceName(t *testing.T) {
	result, err := GenerateWithOptions(
		WithBytes([]byte(`{"a": 1}`)),
		WithSourceName("api dump"),
	)
	require.NoError(t, err)
	assert.Equal(t, "api dump", result.SourcePath)
}

// TestGenerateWithOptions_Filter tests that a jq filter turns each
// emitted value into a sample, folding them into one schema
func TestGenerateWithOptions_Filter(t *testing.T) {
	result, err := GenerateWithOptions(
		WithFilePath("../testdata/api-response.json"),
		WithFilter(".items[]"),
	)
	require.NoError(t, err)

	schema := result.Schema
	assert.Equal(t, "object", schema.Type)
	require.Len(t, schema.Properties, 4)
	assert.Equal(t, "boolean", schema.Properties["discontinued"].Type)
	assert.Equal(t, "number", schema.Properties["id"].Type)
	assert.Equal(t, "string", schema.Properties["name"].Type)
	assert.Equal(t, "number", schema.Properties["price"].Type)

	// discontinued appears on only one sample, so it is optional.
	assert.Equal(t, []string{"id", "name", "price"}, schema.Required)
}

// TestGenerateWithOptions_FilterScalar tests a filter that projects a
// single field
func TestGenerateWithOptions_FilterScalar(t *testing.T) {
	result, err := GenerateWithOptions(
		WithValue(map[string]any{"count": 3.0}),
		WithFilter(".count"),
	)
	require.NoError(t, err)
	assert.Equal(t, "number", result.Schema.Type)
}

// TestGenerateWithOptions_FilterNoValues tests that a filter emitting
// nothing is an error
func TestGenerateWithOptions_FilterNoValues(t *testing.T) {
	_, err := GenerateWithOptions(
		WithValue(map[string]any{"a": 1.0}),
		WithFilter(".missing"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrFilter)
	assert.Contains(t, err.Error(), "produced no values")
}

// TestGenerateWithOptions_FilterParseError tests that a malformed filter
// expression fails with a filter error
func TestGenerateWithOptions_FilterParseError(t *testing.T) {
	_, err := GenerateWithOptions(
		WithValue(map[string]any{"a": 1.0}),
		WithFilter(".items[("),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrFilter)
}

// TestGenerateWithOptions_RejectsBaseOptions tests that base schema
// options are only accepted by ExtendWithOptions
func TestGenerateWithOptions_RejectsBaseOptions(t *testing.T) {
	_, err := GenerateWithOptions(
		WithValue(map[string]any{"a": 1.0}),
		WithBaseSchema(Generate(map[string]any{"a": 1.0})),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only valid with ExtendWithOptions")
}

// TestGenerateWithOptions_MissingFile tests the error for an unreadable
// input path
func TestGenerateWithOptions_MissingFile(t *testing.T) {
	_, err := GenerateWithOptions(
		WithFilePath("../testdata/does-not-exist.json"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrInput)
}

// TestGenerateWithOptions_InvalidJSON tests the error for malformed
// input bytes
func TestGenerateWithOptions_InvalidJSON(t *testing.T) {
	_, err := GenerateWithOptions(
		WithFilePath("../testdata/invalid.json"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrDecode)
}

// TestExtendWithOptions_FileBase tests extending a schema file with a
// data file, including the change report
func TestExtendWithOptions_FileBase(t *testing.T) {
	result, err := ExtendWithOptions(
		WithBaseFilePath("../testdata/user-schema.json"),
		WithFilePath("../testdata/user-bob.json"),
	)
	require.NoError(t, err)

	schema := result.Schema
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"name", "tags"}, schema.Required)
	require.Contains(t, schema.Properties, "nickname")
	assert.Equal(t, "string", schema.Properties["nickname"].Type)

	// The base document's metadata is preserved.
	assert.Equal(t, DefaultSchemaURI, schema.SchemaURI)
	assert.Equal(t, GeneratedTitle, schema.Title)

	require.NotNil(t, result.Changes)
	assert.Equal(t, []string{"nickname"}, result.Changes.AddedProperties)
	assert.ElementsMatch(t, []string{"active", "address", "age", "email"}, result.Changes.RemovedRequired)
	assert.False(t, result.Changes.Empty())
	assert.Equal(t, "1 property added, 4 required keys dropped", result.Changes.Summary())
}

// TestExtendWithOptions_YAMLBase tests loading the base schema from YAML
func TestExtendWithOptions_YAMLBase(t *testing.T) {
	result, err := ExtendWithOptions(
		WithBaseFilePath("../testdata/user-schema.yaml"),
		WithValue(map[string]any{"name": "Cara", "role": "admin"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "Name only", result.Schema.Title)
	assert.Equal(t, []string{"name"}, result.Schema.Required)
	assert.Contains(t, result.Schema.Properties, "role")
}

// TestExtendWithOptions_BaseSchema tests extending an in-memory base
// without mutating the caller's copy
func TestExtendWithOptions_BaseSchema(t *testing.T) {
	base := Generate(map[string]any{"name": "Alice", "age": 30.0})
	before := mustMarshal(t, base)

	result, err := ExtendWithOptions(
		WithBaseSchema(base),
		WithValue(map[string]any{"name": "Bob"}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, result.Schema.Required)
	assert.Equal(t, before, mustMarshal(t, base))
}

// TestExtendWithOptions_BaseBytes tests the byte-slice base source
func TestExtendWithOptions_BaseBytes(t *testing.T) {
	base := []byte(`{"type": "object", "properties": {"id": {"type": "number"}}, "required": ["id"]}`)

	result, err := ExtendWithOptions(
		WithBaseBytes(base),
		WithValue(map[string]any{"id": 7.0, "extra": "x"}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, result.Schema.Required)
	assert.Contains(t, result.Schema.Properties, "extra")
}

// TestExtendWithOptions_BaseReader tests the reader base source
func TestExtendWithOptions_BaseReader(t *testing.T) {
	base := strings.NewReader(`{"type": "object", "properties": {"id": {"type": "number"}}}`)

	result, err := ExtendWithOptions(
		WithBaseReader(base),
		WithValue(map[string]any{"id": 7.0}),
	)
	require.NoError(t, err)
	assert.Equal(t, "object", result.Schema.Type)
}

// TestExtendWithOptions_TitleOverride tests overriding the merged title
func TestExtendWithOptions_TitleOverride(t *testing.T) {
	result, err := ExtendWithOptions(
		WithBaseSchema(Generate(map[string]any{"a": 1.0})),
		WithValue(map[string]any{"a": 2.0}),
		WithTitle("Widened"),
	)
	require.NoError(t, err)
	assert.Equal(t, "Widened", result.Schema.Title)
}

// TestExtendWithOptions_NoChanges tests that re-extending with matching
// data reports no changes
func TestExtendWithOptions_NoChanges(t *testing.T) {
	result, err := ExtendWithOptions(
		WithBaseFilePath("../testdata/user-schema.json"),
		WithFilePath("../testdata/user.json"),
	)
	require.NoError(t, err)
	require.NotNil(t, result.Changes)
	assert.True(t, result.Changes.Empty())
	assert.Equal(t, "no changes", result.Changes.Summary())
}

// TestExtendWithOptions_RootReplaced tests the change report when the
// new data has a different root kind
func TestExtendWithOptions_RootReplaced(t *testing.T) {
	result, err := ExtendWithOptions(
		WithBaseFilePath("../testdata/user-schema.json"),
		WithValue([]any{1.0, 2.0}),
	)
	require.NoError(t, err)
	assert.Equal(t, "array", result.Schema.Type)
	require.NotNil(t, result.Changes)
	assert.True(t, result.Changes.RootReplaced)
	assert.Equal(t, "root schema replaced", result.Changes.Summary())
}

// TestExtendWithOptions_Filter tests extending with filtered samples
func TestExtendWithOptions_Filter(t *testing.T) {
	base := []byte(`{"type": "object", "properties": {"id": {"type": "number"}}, "required": ["id"]}`)

	result, err := ExtendWithOptions(
		WithBaseBytes(base),
		WithFilePath("../testdata/api-response.json"),
		WithFilter(".items[]"),
	)
	require.NoError(t, err)
	assert.Contains(t, result.Schema.Properties, "price")
	assert.Equal(t, []string{"id"}, result.Schema.Required)
}

// TestExtendWithOptions_MalformedBase tests shape validation of the
// base schema document
func TestExtendWithOptions_MalformedBase(t *testing.T) {
	_, err := ExtendWithOptions(
		WithBaseBytes([]byte(`{"type": "object", "properties": ["not", "an", "object"]}`)),
		WithValue(map[string]any{"a": 1.0}),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrBaseSchema)
	assert.Contains(t, err.Error(), "properties")
}
