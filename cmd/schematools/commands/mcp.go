package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/schematools/internal/cliutil"
	"github.com/erraggy/schematools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
// The server has no flags; everything is configured through
// SCHEMATOOLS_* environment variables set in the MCP client config.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schematools mcp\n\n")
		cliutil.Writef(fs.Output(), "Run the schematools MCP server over stdio.\n\n")
		cliutil.Writef(fs.Output(), "The server exposes schema inference as MCP tools: schema_generate,\n")
		cliutil.Writef(fs.Output(), "schema_extend, schema_session_add, schema_session_get, and\n")
		cliutil.Writef(fs.Output(), "schema_codegen. It speaks JSON-RPC on stdin/stdout, so it is meant\n")
		cliutil.Writef(fs.Output(), "to be launched by an MCP client, not interactively.\n\n")
		cliutil.Writef(fs.Output(), "Environment variables:\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_LOG_FILE              log file path (default: stderr)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_LOG_LEVEL             debug, info, warn, or error (default: info)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_CACHE_ENABLED         cache decoded inputs (default: true)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_CACHE_MAX_SIZE        max cached inputs (default: 32)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_CACHE_TTL             decoded input cache TTL (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_CACHE_SWEEP_INTERVAL  cache sweep interval (default: 60s)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_SESSION_CACHE_SIZE    max concurrent sessions (default: 128)\n")
		cliutil.Writef(fs.Output(), "  SCHEMATOOLS_MAX_INPUT_BYTES       max inline input size (default: 10485760)\n")
		cliutil.Writef(fs.Output(), "\nExample MCP client config:\n")
		cliutil.Writef(fs.Output(), "  {\"command\": \"schematools\", \"args\": [\"mcp\"],\n")
		cliutil.Writef(fs.Output(), "   \"env\": {\"SCHEMATOOLS_LOG_FILE\": \"/tmp/schematools-mcp.log\"}}\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
