//go:build integration

// Package integration provides integration tests for the schematools CLI.
// These tests exercise full pipelines — inference, widening, merging,
// conversion, and code generation — through the real command handlers
// and the filesystem.
//
// Run with: go test -tags=integration ./integration/... -v
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schematools/cmd/schematools/commands"
)

// writeFile writes a fixture into dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// readSchema decodes a schema document written by a command.
func readSchema(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestPipeline_GenerateExtendCodegen(t *testing.T) {
	dir := t.TempDir()

	user1 := writeFile(t, dir, "user1.json", `{"id": 1, "name": "ada", "active": true}`)
	user2 := writeFile(t, dir, "user2.json", `{"id": "u-2", "email": "ada@example.com"}`)
	schemaPath := filepath.Join(dir, "user.schema.json")

	// Infer the initial schema from the first sample.
	require.NoError(t, commands.HandleGenerate([]string{"-o", schemaPath, "-q", user1}))

	doc := readSchema(t, schemaPath)
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"active", "id", "name"}, doc["required"])

	// Widen it in place with the second sample.
	require.NoError(t, commands.HandleExtend([]string{"-b", schemaPath, "-o", schemaPath, "-q", user2}))

	doc = readSchema(t, schemaPath)
	assert.Equal(t, []any{"id"}, doc["required"], "only id appears in every sample")

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "email")
	id, ok := props["id"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"integer", "string"}, id["type"])

	// Generate Go types from the widened schema.
	outDir := filepath.Join(dir, "gen")
	require.NoError(t, commands.HandleCodegen([]string{
		"-o", outDir, "-package", "users", "-type", "User", "-schema", "-q", schemaPath,
	}))

	src, err := os.ReadFile(filepath.Join(outDir, "types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package users")
	assert.Contains(t, string(src), "type User struct {")
	assert.Regexp(t, `Id\s+any`, string(src), "the type union has no single Go representation")
	assert.Contains(t, string(src), "*string", "optional fields become pointers")
}

func TestPipeline_GenerateMergeConvert(t *testing.T) {
	dir := t.TempDir()

	event1 := writeFile(t, dir, "event1.json", `{"kind": "deploy", "attempts": 1}`)
	event2 := writeFile(t, dir, "event2.json", `{"kind": "rollback"}`)
	schema1 := filepath.Join(dir, "event1.schema.json")
	schema2 := filepath.Join(dir, "event2.schema.json")

	require.NoError(t, commands.HandleGenerate([]string{"-o", schema1, "-q", event1}))
	require.NoError(t, commands.HandleGenerate([]string{"-o", schema2, "-q", event2}))

	// Merge the per-document schemas into one that accepts both shapes.
	mergedPath := filepath.Join(dir, "merged.schema.json")
	require.NoError(t, commands.HandleMerge([]string{"-o", mergedPath, "-q", schema1, schema2}))

	doc := readSchema(t, mergedPath)
	assert.Equal(t, []any{"kind"}, doc["required"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "attempts")

	// Convert the merged document to YAML.
	yamlPath := filepath.Join(dir, "merged.schema.yaml")
	require.NoError(t, commands.HandleConvert([]string{"-o", yamlPath, "-q", mergedPath}))

	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	text := string(data)
	assert.Contains(t, text, "type: object")
	assert.Contains(t, text, "required:")
	assert.NotEqual(t, byte('{'), data[0], "YAML output must not be JSON")
}

func TestPipeline_ExtendSameDataIsStable(t *testing.T) {
	dir := t.TempDir()

	sample := writeFile(t, dir, "sample.json", `{"id": 7, "tags": ["a", "b"]}`)
	schemaPath := filepath.Join(dir, "sample.schema.json")
	widenedPath := filepath.Join(dir, "widened.schema.json")

	require.NoError(t, commands.HandleGenerate([]string{"-o", schemaPath, "-q", sample}))
	require.NoError(t, commands.HandleExtend([]string{"-b", schemaPath, "-o", widenedPath, "-q", sample}))

	before, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	after, err := os.ReadFile(widenedPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "re-observing the same data must not change the schema")
}

func TestPipeline_FilterFanout(t *testing.T) {
	dir := t.TempDir()

	wrapped := writeFile(t, dir, "page.json",
		`{"records": [{"id": 1, "name": "a"}, {"id": 2}, {"id": 3, "name": "c"}]}`)
	schemaPath := filepath.Join(dir, "record.schema.json")

	require.NoError(t, commands.HandleGenerate([]string{
		"-o", schemaPath, "--filter", ".records[]", "-q", wrapped,
	}))

	doc := readSchema(t, schemaPath)
	assert.Equal(t, "object", doc["type"], "the filter unwraps the page envelope")
	assert.Equal(t, []any{"id"}, doc["required"], "name is missing from one record")
}
