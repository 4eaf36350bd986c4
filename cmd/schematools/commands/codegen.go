package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/schematools"
	"github.com/erraggy/schematools/codegen"
	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/cliutil"
)

// CodegenFlags contains flags for the codegen command
type CodegenFlags struct {
	OutputDir string
	Package   string
	TypeName  string
	Schema    bool
	Pointers  bool
	Filter    string
	Quiet     bool
}

// SetupCodegenFlags creates and configures a FlagSet for the codegen command.
// Returns the FlagSet and a CodegenFlags struct with bound flag variables.
func SetupCodegenFlags() (*flag.FlagSet, *CodegenFlags) {
	fs := flag.NewFlagSet("codegen", flag.ContinueOnError)
	flags := &CodegenFlags{}

	fs.StringVar(&flags.OutputDir, "o", "", "output directory for generated files (default: stdout)")
	fs.StringVar(&flags.OutputDir, "output", "", "output directory for generated files (default: stdout)")
	fs.StringVar(&flags.Package, "package", "types", "package name for generated code")
	fs.StringVar(&flags.TypeName, "type", "Root", "name of the root type declaration")
	fs.BoolVar(&flags.Schema, "schema", false, "treat the input as a schema document instead of example data")
	fs.BoolVar(&flags.Pointers, "pointers", true, "use pointer types for optional scalar fields")
	fs.StringVar(&flags.Filter, "filter", "", "jq expression applied to the input before inference (data input only)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the generated code, no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the generated code, no summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schematools codegen [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate Go type declarations from example data or a schema document.\n\n")
		cliutil.Writef(fs.Output(), "By default the input is example JSON or YAML data: a schema is\n")
		cliutil.Writef(fs.Output(), "inferred first and the types are generated from it. With --schema\n")
		cliutil.Writef(fs.Output(), "the input is an existing schema document.\n\n")
		cliutil.Writef(fs.Output(), "Optional object keys become pointer fields with omitempty; type\n")
		cliutil.Writef(fs.Output(), "unions and tuple arrays have no exact Go shape and map to any.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  schematools codegen users.json\n")
		cliutil.Writef(fs.Output(), "  schematools codegen --package models --type User -o ./models users.json\n")
		cliutil.Writef(fs.Output(), "  schematools codegen --schema user.schema.json\n")
		cliutil.Writef(fs.Output(), "  schematools codegen --filter '.items[]' --type Item api-response.json\n")
		cliutil.Writef(fs.Output(), "  cat data.json | schematools codegen --package payloads -\n")
	}

	return fs, flags
}

// HandleCodegen executes the codegen command
func HandleCodegen(args []string) error {
	fs, flags := SetupCodegenFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("codegen command requires exactly one input file or '-' for stdin")
	}
	if flags.Schema && flags.Filter != "" {
		return fmt.Errorf("--filter only applies to data input, not --schema input")
	}

	inputPath := fs.Arg(0)
	schema, err := schemaForCodegen(inputPath, flags)
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, err := codegen.GenerateWithOptions(
		codegen.WithSchema(schema),
		codegen.WithPackageName(flags.Package),
		codegen.WithTypeName(flags.TypeName),
		codegen.WithPointers(flags.Pointers),
	)
	totalTime := time.Since(startTime)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "Go Type Generator\n")
		cliutil.Writef(os.Stderr, "=================\n\n")
		cliutil.Writef(os.Stderr, "schematools version: %s\n", schematools.Version())
		cliutil.Writef(os.Stderr, "Input: %s\n", FormatInputPath(inputPath))
		cliutil.Writef(os.Stderr, "Package: %s\n", result.PackageName)
		cliutil.Writef(os.Stderr, "Root type: %s\n", result.RootType)
		cliutil.Writef(os.Stderr, "Types generated: %d\n", result.GeneratedTypes)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
		PrintWarnings(result.Warnings)
	}

	if flags.OutputDir != "" {
		if err := result.WriteFiles(flags.OutputDir); err != nil {
			return err
		}
		if !flags.Quiet {
			for _, file := range result.Files {
				cliutil.Writef(os.Stderr, "Output written to: %s/%s\n", flags.OutputDir, file.Name)
			}
		}
		return nil
	}
	for _, file := range result.Files {
		if _, err := os.Stdout.Write(file.Content); err != nil {
			return fmt.Errorf("writing generated code to stdout: %w", err)
		}
	}
	return nil
}

// schemaForCodegen produces the schema the generator will consume:
// either a schema document loaded as-is, or one inferred from example
// data.
func schemaForCodegen(inputPath string, flags *CodegenFlags) (*inferrer.Schema, error) {
	if flags.Schema {
		schema, _, err := loadSchemaInput(inputPath)
		return schema, err
	}

	data, err := ReadInput(inputPath)
	if err != nil {
		return nil, err
	}
	opts := []inferrer.Option{
		inferrer.WithBytes(data),
		inferrer.WithSourceName(FormatInputPath(inputPath)),
	}
	if flags.Filter != "" {
		opts = append(opts, inferrer.WithFilter(flags.Filter))
	}
	result, err := inferrer.GenerateWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("inferring schema from %s: %w", FormatInputPath(inputPath), err)
	}
	return result.Schema, nil
}
