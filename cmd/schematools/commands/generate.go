package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output  string
	Format  string
	Title   string
	Filter  string
	Verbose bool
	Quiet   bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "f", "", "output format: json or yaml (default: json, or inferred from -o extension)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: json, or inferred from -o extension)")
	fs.StringVar(&flags.Title, "title", "", "title for the generated schema document")
	fs.StringVar(&flags.Filter, "filter", "", "jq expression applied to each input before inference")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log inference details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log inference details to stderr")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the schema, no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the schema, no summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schematools generate [flags] <file|-> [file...]\n\n")
		cliutil.Writef(fs.Output(), "Infer a JSON Schema from example JSON or YAML data.\n\n")
		cliutil.Writef(fs.Output(), "With multiple inputs, the first file generates the schema and each\n")
		cliutil.Writef(fs.Output(), "additional file widens it, so keys absent from some inputs become\n")
		cliutil.Writef(fs.Output(), "optional and differing scalar types become type unions.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schematools generate users.json\n")
		cliutil.Writef(fs.Output(), "  schematools generate --title \"User record\" -o user.schema.json users.json\n")
		cliutil.Writef(fs.Output(), "  schematools generate -f yaml response1.json response2.json response3.json\n")
		cliutil.Writef(fs.Output(), "  schematools generate --filter '.items[]' -o item.schema.json api-response.json\n")
		cliutil.Writef(fs.Output(), "  cat data.json | schematools generate -\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as a file path to read from stdin (at most once)\n")
		cliutil.Writef(fs.Output(), "  - The schema goes to stdout; the summary goes to stderr\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Every key present in a single input is required; optionality emerges from additional inputs\n")
		cliutil.Writef(fs.Output(), "  - A --filter emitting multiple values treats each value as a separate sample\n")
		cliutil.Writef(fs.Output(), "  - Output files are written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires at least one data file or '-' for stdin")
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

	inputs, err := loadDataInputs(inputPaths)
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, err := inferFromInputs(inputs, flags.Title, flags.Filter, flags.Verbose)
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
		cliutil.Writef(os.Stderr, "JSON Schema Generator\n")
		cliutil.Writef(os.Stderr, "=====================\n\n")
		cliutil.Writef(os.Stderr, "schematools version: %s\n", schematools.Version())
		cliutil.Writef(os.Stderr, "Inputs: %d\n", len(inputs))
		cliutil.Writef(os.Stderr, "Objects: %d\n", result.Stats.Objects)
		cliutil.Writef(os.Stderr, "Arrays: %d\n", result.Stats.Arrays)
		cliutil.Writef(os.Stderr, "Scalars: %d\n", result.Stats.Scalars)
		cliutil.Writef(os.Stderr, "Max Depth: %d\n", result.Stats.MaxDepth)
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

// inferFromInputs generates a schema from the first input and widens it
// with each additional input. The returned result carries the combined
// stats and warnings of every pass, and the first input's source format.
func inferFromInputs(inputs []dataInput, title, filter string, verbose bool) (*inferrer.Result, error) {
	opts := []inferrer.Option{
		inferrer.WithBytes(inputs[0].data),
		inferrer.WithSourceName(FormatInputPath(inputs[0].path)),
	}
	if title != "" {
		opts = append(opts, inferrer.WithTitle(title))
	}
	if filter != "" {
		opts = append(opts, inferrer.WithFilter(filter))
	}
	if verbose {
		opts = append(opts, inferrer.WithLogger(verboseLogger()))
	}

	result, err := inferrer.GenerateWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generating schema from %s: %w", FormatInputPath(inputs[0].path), err)
	}

	for _, input := range inputs[1:] {
		opts := []inferrer.Option{
			inferrer.WithBaseSchema(result.Schema),
			inferrer.WithBytes(input.data),
			inferrer.WithSourceName(FormatInputPath(input.path)),
		}
		if title != "" {
			opts = append(opts, inferrer.WithTitle(title))
		}
		if filter != "" {
			opts = append(opts, inferrer.WithFilter(filter))
		}
		if verbose {
			opts = append(opts, inferrer.WithLogger(verboseLogger()))
		}
		next, err := inferrer.ExtendWithOptions(opts...)
		if err != nil {
			return nil, fmt.Errorf("widening schema with %s: %w", FormatInputPath(input.path), err)
		}
		next.Warnings = append(result.Warnings, next.Warnings...)
		next.Stats = addStats(result.Stats, next.Stats)
		next.SourceFormat = result.SourceFormat
		result = next
	}
	return result, nil
}

// addStats sums the node counters of two inference passes; depth is the
// maximum rather than the sum.
func addStats(a, b inferrer.InferStats) inferrer.InferStats {
	out := inferrer.InferStats{
		Objects:  a.Objects + b.Objects,
		Arrays:   a.Arrays + b.Arrays,
		Scalars:  a.Scalars + b.Scalars,
		Unknowns: a.Unknowns + b.Unknowns,
		MaxDepth: a.MaxDepth,
	}
	if b.MaxDepth > out.MaxDepth {
		out.MaxDepth = b.MaxDepth
	}
	return out
}

// verboseLogger returns an engine logger writing to stderr, keeping
// stdout clean for the schema document.
func verboseLogger() inferrer.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return inferrer.NewSlogAdapter(slog.New(handler))
}
