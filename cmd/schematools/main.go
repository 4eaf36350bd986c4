// Command schematools infers JSON Schema documents from example data,
// widens existing schemas with newly observed data, merges schema
// documents, re-encodes them between JSON and YAML, and emits Go type
// declarations. It also hosts an MCP server exposing the same
// capabilities over stdio.
package main

import (
	"fmt"
	"os"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/cmd/schematools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schematools v%s\n", schematools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "extend":
		if err := commands.HandleExtend(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "merge":
		if err := commands.HandleMerge(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := commands.HandleConvert(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "codegen":
		if err := commands.HandleCodegen(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands lists every dispatchable command name for typo suggestions.
var knownCommands = []string{
	"generate", "extend", "merge", "convert", "codegen", "mcp", "version", "help",
}

// suggestCommand returns the known command closest to input, or "" when
// nothing is within edit distance 2.
func suggestCommand(input string) string {
	best := ""
	bestDistance := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDistance {
			best = cmd
			bestDistance = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func printUsage() {
	fmt.Println(`schematools - JSON Schema inference tools

Usage:
  schematools <command> [options]

Commands:
  generate    Infer a JSON Schema from example data files
  extend      Widen an existing schema so it accepts new data
  merge       Merge multiple schema documents into one
  convert     Re-encode a schema document between JSON and YAML
  codegen     Emit Go type declarations from a schema or data
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  schematools generate users.json
  schematools generate --title "User record" -o user.schema.json users.json
  schematools extend -b user.schema.json new-users.json
  schematools merge -o merged.schema.json a.schema.json b.schema.json
  schematools convert -f yaml user.schema.json
  schematools codegen --schema --package model user.schema.json
  cat data.json | schematools generate -

Run 'schematools <command> --help' for more information on a command.`)
}
