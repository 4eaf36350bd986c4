package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/internal/cliutil"
	"github.com/erraggy/schematools/merger"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	Output     string
	Format     string
	OnMismatch string
	Dedupe     string
	Quiet      bool
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
// Returns the FlagSet and a MergeFlags struct with bound flag variables.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "f", "", "output format: json or yaml (default: first input's format, or inferred from -o extension)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: first input's format, or inferred from -o extension)")
	fs.StringVar(&flags.OnMismatch, "on-mismatch", string(merger.StrategyReplace),
		"root type mismatch handling: replace, keep, or fail")
	fs.StringVar(&flags.Dedupe, "dedupe", string(merger.DedupeExact),
		"duplicate document handling: exact or none")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the schema, no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the schema, no summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schematools merge [flags] <schema1> <schema2> [schema3...]\n\n")
		cliutil.Writef(fs.Output(), "Merge two or more JSON Schema documents into one widened schema.\n\n")
		cliutil.Writef(fs.Output(), "Object roots merge with object roots and array roots with array\n")
		cliutil.Writef(fs.Output(), "roots: properties union, required keys intersect, and conflicting\n")
		cliutil.Writef(fs.Output(), "scalar types become type unions. Any other root combination is a\n")
		cliutil.Writef(fs.Output(), "mismatch, handled per --on-mismatch.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schematools merge staging.schema.json prod.schema.json\n")
		cliutil.Writef(fs.Output(), "  schematools merge -o combined.schema.yaml v1.schema.yaml v2.schema.yaml v3.schema.yaml\n")
		cliutil.Writef(fs.Output(), "  schematools merge --on-mismatch fail api.schema.json events.schema.json\n")
		cliutil.Writef(fs.Output(), "  schematools merge --dedupe none -q a.schema.json b.schema.json > merged.json\n")
		cliutil.Writef(fs.Output(), "\nMismatch strategies:\n")
		cliutil.Writef(fs.Output(), "  replace  the conflicting document replaces the merged result (default)\n")
		cliutil.Writef(fs.Output(), "  keep     the conflicting document is skipped\n")
		cliutil.Writef(fs.Output(), "  fail     the merge aborts with an error\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("merge command requires at least two schema files")
	}

	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format); err != nil {
			return err
		}
	}
	if err := ValidateMismatchStrategy(flags.OnMismatch); err != nil {
		return err
	}
	if err := ValidateDedupeMode(flags.Dedupe); err != nil {
		return err
	}

	inputPaths := fs.Args()
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, inputPaths); err != nil {
			return err
		}
	}

	m := merger.New(merger.Config{
		OnMismatch: merger.MismatchStrategy(flags.OnMismatch),
		Dedupe:     merger.DedupeMode(flags.Dedupe),
	})

	startTime := time.Now()
	result, err := m.Merge(inputPaths)
	totalTime := time.Since(startTime)
	if err != nil {
		return err
	}

	format, err := ResolveOutputFormat(flags.Format, flags.Output, result.SourceFormat)
	if err != nil {
		return err
	}
	data, err := MarshalSchema(result.Schema, format)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "JSON Schema Merger\n")
		cliutil.Writef(os.Stderr, "==================\n\n")
		cliutil.Writef(os.Stderr, "schematools version: %s\n", schematools.Version())
		cliutil.Writef(os.Stderr, "Documents: %d\n", result.Stats.Documents)
		if result.Stats.DuplicatesSkipped > 0 {
			cliutil.Writef(os.Stderr, "Duplicates skipped: %d\n", result.Stats.DuplicatesSkipped)
		}
		if result.Stats.RootMismatches > 0 {
			cliutil.Writef(os.Stderr, "Root mismatches: %d\n", result.Stats.RootMismatches)
		}
		cliutil.Writef(os.Stderr, "Merged properties: %d\n", result.Stats.Properties)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
		PrintWarnings(result.Warnings)
	}

	if flags.Output != "" {
		if err := WriteDocument(data, flags.Output); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing schema to stdout: %w", err)
	}
	return nil
}
