package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/cliutil"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Output string
	Format string
	Quiet  bool
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
// Returns the FlagSet and a ConvertFlags struct with bound flag variables.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "f", "", "target format: json or yaml (default: inferred from -o extension)")
	fs.StringVar(&flags.Format, "format", "", "target format: json or yaml (default: inferred from -o extension)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the schema, no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the schema, no summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schematools convert [flags] <schema|->\n\n")
		cliutil.Writef(fs.Output(), "Re-encode a JSON Schema document between JSON and YAML.\n\n")
		cliutil.Writef(fs.Output(), "The document is decoded, validated, and re-encoded deterministically:\n")
		cliutil.Writef(fs.Output(), "JSON output is 2-space indented with all object keys sorted, so\n")
		cliutil.Writef(fs.Output(), "converting is also a normalization even within the same format.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schematools convert -f yaml user.schema.json\n")
		cliutil.Writef(fs.Output(), "  schematools convert -o user.schema.yaml user.schema.json\n")
		cliutil.Writef(fs.Output(), "  schematools convert -f json api.schema.yaml > api.schema.json\n")
		cliutil.Writef(fs.Output(), "  cat schema.yaml | schematools convert -f json -\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one schema file or '-' for stdin")
	}

	var target inferrer.SourceFormat
	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format); err != nil {
			return err
		}
		target = inferrer.SourceFormat(flags.Format)
	} else {
		switch filepath.Ext(flags.Output) {
		case ".yaml", ".yml":
			target = inferrer.SourceFormatYAML
		case ".json":
			target = inferrer.SourceFormatJSON
		default:
			return fmt.Errorf("target format is required (use -f or --format, or an -o path ending in .json, .yaml, or .yml)")
		}
	}

	inputPath := fs.Arg(0)
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{inputPath}); err != nil {
			return err
		}
	}

	schema, sourceFormat, err := loadSchemaInput(inputPath)
	if err != nil {
		return err
	}

	data, err := MarshalSchema(schema, target)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "Schema Converter\n")
		cliutil.Writef(os.Stderr, "================\n\n")
		cliutil.Writef(os.Stderr, "schematools version: %s\n", schematools.Version())
		cliutil.Writef(os.Stderr, "Input: %s (%s)\n", FormatInputPath(inputPath), sourceFormat)
		cliutil.Writef(os.Stderr, "Target format: %s\n\n", target)
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

// loadSchemaInput loads a schema document from a file path or stdin.
func loadSchemaInput(path string) (*inferrer.Schema, inferrer.SourceFormat, error) {
	if path == StdinFilePath {
		data, err := ReadInput(path)
		if err != nil {
			return nil, inferrer.SourceFormatUnknown, err
		}
		return inferrer.ParseSchema(data)
	}
	return inferrer.LoadSchemaFile(path)
}
