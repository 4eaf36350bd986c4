package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schematools-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background — it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Tools, 5, "expected 5 registered tools")

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}

	expectedTools := []string{
		"schema_generate",
		"schema_extend",
		"schema_session_add",
		"schema_session_get",
		"schema_codegen",
	}

	for _, name := range expectedTools {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}

	// Every tool should have a non-empty description.
	for _, tool := range result.Tools {
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
}

func TestIntegration_CallTool_SchemaGenerate(t *testing.T) {
	inputCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "schema_generate",
		Arguments: map[string]any{
			"data": `{"id": 1, "name": "box"}`,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError, "schema_generate should succeed on valid data")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "inline data", structured["source"])

	schemaDoc, ok := structured["schema"].(string)
	require.True(t, ok, "schema should be a string document")
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(schemaDoc), &doc))
	assert.Equal(t, "object", doc["type"])

	stats, ok := structured["stats"].(map[string]any)
	require.True(t, ok, "stats should be an object")
	assert.Equal(t, float64(1), stats["objects"])
	assert.Equal(t, float64(2), stats["scalars"])
}

func TestIntegration_CallTool_SessionRoundtrip(t *testing.T) {
	sessions.reset()
	session := startTestSession(t)

	added, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "schema_session_add",
		Arguments: map[string]any{
			"data": `{"id": 1, "name": "box"}`,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.False(t, added.IsError)

	first := unmarshalStructured(t, added)
	sessionID, ok := first["session_id"].(string)
	require.True(t, ok, "session_id should be a string")
	require.NotEmpty(t, sessionID)
	assert.Equal(t, float64(1), first["samples"])

	widened, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "schema_session_add",
		Arguments: map[string]any{
			"session_id": sessionID,
			"data":       `{"id": 2}`,
		},
	})
	require.NoError(t, err)
	assert.False(t, widened.IsError)
	second := unmarshalStructured(t, widened)
	assert.Equal(t, float64(2), second["samples"])

	got, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "schema_session_get",
		Arguments: map[string]any{
			"session_id": sessionID,
		},
	})
	require.NoError(t, err)
	assert.False(t, got.IsError)

	current := unmarshalStructured(t, got)
	assert.Equal(t, float64(2), current["samples"])

	schemaDoc, ok := current["schema"].(string)
	require.True(t, ok)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(schemaDoc), &doc))
	// name was only in the first sample, so it is no longer required.
	assert.Equal(t, []any{"id"}, doc["required"])
}

func TestIntegration_CallTool_Error_InvalidData(t *testing.T) {
	inputCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "schema_generate",
		Arguments: map[string]any{
			"data": `{"id":`,
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "schema_generate should return IsError for unparseable input")

	// The error content should contain descriptive text.
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.NotEmpty(t, text.Text)
}

func TestIntegration_CallTool_Error_MissingInput(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "schema_generate",
		Arguments: map[string]any{},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "schema_generate should return IsError when no data source is provided")
}

// unmarshalStructured extracts the structured output from a CallToolResult.
// It first checks StructuredContent, then falls back to parsing the first TextContent.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	// Prefer structured content if available.
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	// Fall back to parsing text content.
	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
