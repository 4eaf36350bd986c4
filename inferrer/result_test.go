package inferrer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yaml/v4"
)

// TestResultEncode_JSON tests deterministic JSON encoding
func TestResultEncode_JSON(t *testing.T) {
	result, err := GenerateWithOptions(WithFilePath("../testdata/user.json"))
	require.NoError(t, err)

	first, err := result.Encode(SourceFormatJSON)
	require.NoError(t, err)
	second, err := result.Encode(SourceFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	text := string(first)
	assert.True(t, strings.HasPrefix(text, "{\n  \"$schema\""), "expected indented JSON, got %q", text[:40])

	// Root-level keys appear in sorted order (anchored on the root
	// indent so nested keys do not interfere).
	rootKeys := []string{"\n  \"$schema\"", "\n  \"properties\"", "\n  \"required\"", "\n  \"title\"", "\n  \"type\""}
	for i := 0; i < len(rootKeys)-1; i++ {
		assert.Less(t, strings.Index(text, rootKeys[i]), strings.Index(text, rootKeys[i+1]),
			"expected %q before %q", rootKeys[i], rootKeys[i+1])
	}
	// Property map keys are sorted too.
	assert.Less(t, strings.Index(text, "\n    \"age\""), strings.Index(text, "\n    \"email\""))
}

// TestResultEncode_YAML tests YAML encoding round-trips the schema
func TestResultEncode_YAML(t *testing.T) {
	result, err := GenerateWithOptions(WithValue(map[string]any{"name": "x", "n": 1.0}))
	require.NoError(t, err)

	data, err := result.Encode(SourceFormatYAML)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "object", decoded["type"])
	assert.Equal(t, GeneratedTitle, decoded["title"])
}

// TestResultEncode_NoSchema tests the error for an empty result
func TestResultEncode_NoSchema(t *testing.T) {
	r := &Result{}
	_, err := r.Encode(SourceFormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema")
}

// TestWriteResult_JSON tests writing JSON output with restrictive permissions
func TestWriteResult_JSON(t *testing.T) {
	result, err := GenerateWithOptions(WithFilePath("../testdata/user.json"))
	require.NoError(t, err)

	outputPath := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, result.WriteResult(outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"), "JSON output should end with a newline")

	// The written file loads back as a valid schema document.
	loaded, err := LoadSchema(outputPath)
	require.NoError(t, err)
	assert.Equal(t, mustMarshal(t, result.Schema), mustMarshal(t, loaded))
}

// TestWriteResult_YAML tests that a .yaml extension switches the output format
func TestWriteResult_YAML(t *testing.T) {
	result, err := GenerateWithOptions(WithValue(map[string]any{"a": 1.0}))
	require.NoError(t, err)

	outputPath := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, result.WriteResult(outputPath))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(strings.TrimSpace(string(data)), "{"), "expected YAML, got JSON")

	loaded, err := LoadSchema(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "object", loaded.Type)
}

// TestWriteResult_UnwritablePath tests the output error path
func TestWriteResult_UnwritablePath(t *testing.T) {
	result, err := GenerateWithOptions(WithValue(map[string]any{"a": 1.0}))
	require.NoError(t, err)

	err = result.WriteResult(filepath.Join(t.TempDir(), "missing", "schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write output file")
}

// TestResultAddWarning tests warning accumulation
func TestResultAddWarning(t *testing.T) {
	r := &Result{}
	r.AddWarning("first: %d", 1)
	r.AddWarning("second: %s", "two")
	assert.Equal(t, []string{"first: 1", "second: two"}, r.Warnings)
}

// TestResultLoadTime tests that file loads record a duration
func TestResultLoadTime(t *testing.T) {
	result, err := GenerateWithOptions(WithFilePath("../testdata/user.json"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.LoadTime.Nanoseconds(), int64(0))
}
