package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/cliutil"
)

// ExtendFlags contains flags for the extend command
type ExtendFlags struct {
	Base        string
	Output      string
	Format      string
	Title       string
	Filter      string
	ShowChanges bool
	Verbose     bool
	Quiet       bool
}

// SetupExtendFlags creates and configures a FlagSet for the extend command.
// Returns the FlagSet and an ExtendFlags struct with bound flag variables.
func SetupExtendFlags() (*flag.FlagSet, *ExtendFlags) {
	fs := flag.NewFlagSet("extend", flag.ContinueOnError)
	flags := &ExtendFlags{}

	fs.StringVar(&flags.Base, "b", "", "base schema file to widen (required)")
	fs.StringVar(&flags.Base, "base", "", "base schema file to widen (required)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "f", "", "output format: json or yaml (default: base schema format, or inferred from -o extension)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: base schema format, or inferred from -o extension)")
	fs.StringVar(&flags.Title, "title", "", "replace the schema title")
	fs.StringVar(&flags.Filter, "filter", "", "jq expression applied to each input before inference")
	fs.BoolVar(&flags.ShowChanges, "show-changes", true, "print a report of what widened to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log inference details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log inference details to stderr")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the schema, no summary or changes")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the schema, no summary or changes")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schematools extend -b <schema> [flags] <file|-> [file...]\n\n")
		cliutil.Writef(fs.Output(), "Widen an existing JSON Schema so it also accepts new example data.\n\n")
		cliutil.Writef(fs.Output(), "Keys missing from the new data become optional, scalar type conflicts\n")
		cliutil.Writef(fs.Output(), "become type unions, and new keys are added as optional properties.\n")
		cliutil.Writef(fs.Output(), "If the root types disagree (for example object schema, array data),\n")
		cliutil.Writef(fs.Output(), "the base is discarded and a fresh schema is generated.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schematools extend -b user.schema.json new-users.json\n")
		cliutil.Writef(fs.Output(), "  schematools extend -b user.schema.json -o user.schema.json batch1.json batch2.json\n")
		cliutil.Writef(fs.Output(), "  schematools extend -b api.schema.yaml --filter '.results[]' response.json\n")
		cliutil.Writef(fs.Output(), "  cat sample.json | schematools extend -b base.schema.json -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - The base schema file itself is never modified; write back with -o\n")
		cliutil.Writef(fs.Output(), "  - Widening only relaxes the schema: data valid before stays valid\n")
		cliutil.Writef(fs.Output(), "  - The change report (--show-changes) goes to stderr, the schema to stdout\n")
	}

	return fs, flags
}

// HandleExtend executes the extend command
func HandleExtend(args []string) error {
	fs, flags := SetupExtendFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Base == "" {
		fs.Usage()
		return fmt.Errorf("extend command requires a base schema (use -b or --base)")
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("extend command requires at least one data file or '-' for stdin")
	}

	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format); err != nil {
			return err
		}
	}

	inputPaths := fs.Args()
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, inputPaths); err != nil {
			return err
		}
	}

	base, baseFormat, err := inferrer.LoadSchemaFile(flags.Base)
	if err != nil {
		return err
	}

	inputs, err := loadDataInputs(inputPaths)
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, reports, err := extendWithInputs(base, inputs, flags)
	totalTime := time.Since(startTime)
	if err != nil {
		return err
	}

	format, err := ResolveOutputFormat(flags.Format, flags.Output, baseFormat)
	if err != nil {
		return err
	}
	data, err := MarshalSchema(result.Schema, format)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "JSON Schema Extender\n")
		cliutil.Writef(os.Stderr, "====================\n\n")
		cliutil.Writef(os.Stderr, "schematools version: %s\n", schematools.Version())
		cliutil.Writef(os.Stderr, "Base schema: %s\n", flags.Base)
		cliutil.Writef(os.Stderr, "Inputs: %d\n", len(inputs))
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
		if flags.ShowChanges {
			printChangeReports(reports)
		}
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

// changeReport pairs one input with the widening it caused.
type changeReport struct {
	source  string
	changes *inferrer.SchemaChanges
}

// extendWithInputs folds each input into the base schema in order and
// records the per-input change reports.
func extendWithInputs(base *inferrer.Schema, inputs []dataInput, flags *ExtendFlags) (*inferrer.Result, []changeReport, error) {
	var (
		result  *inferrer.Result
		reports []changeReport
	)

	current := base
	var warnings []string
	for _, input := range inputs {
		opts := []inferrer.Option{
			inferrer.WithBaseSchema(current),
			inferrer.WithBytes(input.data),
			inferrer.WithSourceName(FormatInputPath(input.path)),
		}
		if flags.Title != "" {
			opts = append(opts, inferrer.WithTitle(flags.Title))
		}
		if flags.Filter != "" {
			opts = append(opts, inferrer.WithFilter(flags.Filter))
		}
		if flags.Verbose {
			opts = append(opts, inferrer.WithLogger(verboseLogger()))
		}

		next, err := inferrer.ExtendWithOptions(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("widening schema with %s: %w", FormatInputPath(input.path), err)
		}

		reports = append(reports, changeReport{
			source:  FormatInputPath(input.path),
			changes: next.Changes,
		})
		warnings = append(warnings, next.Warnings...)
		current = next.Schema
		result = next
	}

	result.Warnings = warnings
	return result, reports, nil
}

// printChangeReports writes the per-input widening reports to stderr.
func printChangeReports(reports []changeReport) {
	for _, report := range reports {
		cliutil.Writef(os.Stderr, "Changes from %s: %s\n", report.source, report.changes.Summary())
		for _, line := range report.changes.Lines() {
			cliutil.Writef(os.Stderr, "  - %s\n", line)
		}
	}
	cliutil.Writef(os.Stderr, "\n")
}
