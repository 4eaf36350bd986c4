// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schematools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/logging"
)

const serverInstructions = `schematools MCP server — infers, widens, and compiles JSON Schema (draft-07) documents from example data.

Configuration: All defaults are configurable via SCHEMATOOLS_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SCHEMATOOLS_LOG_FILE — log file path (default: stderr; stdout carries the protocol)
- SCHEMATOOLS_LOG_LEVEL (default: info) — debug, info, warn, or error
- SCHEMATOOLS_CACHE_ENABLED (default: true) — disable decoded-input caching entirely
- SCHEMATOOLS_CACHE_MAX_SIZE (default: 32) — max decoded-input cache entries
- SCHEMATOOLS_CACHE_TTL (default: 15m) — cache TTL for decoded data and parsed schemas
- SCHEMATOOLS_CACHE_SWEEP_INTERVAL (default: 60s) — expired-entry sweep interval
- SCHEMATOOLS_SESSION_CACHE_SIZE (default: 128) — max concurrent inference sessions
- SCHEMATOOLS_MAX_INPUT_BYTES (default: 10485760) — max inline input size

Workflow: schema_generate infers a schema from one data document. To widen across many documents, either call schema_extend with the previous schema as base, or use schema_session_add to accumulate samples server-side and schema_session_get to read the current result. schema_codegen turns a schema (or raw data) into Go type declarations.

Caching: Decoded inputs are cached per session. File entries use path+mtime as key (auto-invalidated on change); inline entries are keyed by content hash. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled. Logging is routed to stderr
// or the configured file; stdout carries the protocol.
func Run(ctx context.Context) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.FilePath = cfg.LogFile
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			slog.Warn("failed to close log file", "error", cerr)
		}
	}()

	if cfg.CacheEnabled {
		inputCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schematools", Version: schematools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_generate",
		Description: "Generate a JSON Schema (draft-07) from a JSON or YAML data document. Provide the data inline via data or as a path via file. Use filter (a jq expression) to select sub-values as samples — e.g. '.items[]' infers from every element and widens across them. Use title to set the schema title. Returns the schema document plus inference stats and warnings.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_extend",
		Description: "Widen an existing JSON Schema so it also accepts data shaped like a new document. Provide the base via base_schema (inline) or base_file (path), and the data via data or file. Property types grow into unions, required shrinks to fields seen in every sample, and new properties are added as optional. A root kind mismatch (object vs array) replaces the base entirely. Returns the widened schema and a change report.",
	}, handleExtend)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_session_add",
		Description: "Accumulate a data sample into a server-side inference session. The first call (without session_id) starts a session and returns its id; later calls with that id widen the session schema with each new sample. Useful for iterating over many documents without round-tripping the schema. Sessions live in an LRU cache (size via SCHEMATOOLS_SESSION_CACHE_SIZE) and vanish when evicted.",
	}, handleSessionAdd)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_session_get",
		Description: "Read the current schema of an inference session created by schema_session_add, without adding a sample. Returns the schema and the number of samples accumulated so far.",
	}, handleSessionGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_codegen",
		Description: "Generate Go type declarations from a JSON Schema or directly from example data. Provide exactly one of: schema (inline schema document), schema_file (path), data (inline example data), or file (data path). Data inputs are run through schema inference first. Use package to set the package name (default types) and type_name to name the root type (default Root). Returns the generated source files inline.",
	}, handleCodegen)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// schemaJSON renders a schema document as indented JSON for inline
// tool output.
func schemaJSON(s *inferrer.Schema) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
