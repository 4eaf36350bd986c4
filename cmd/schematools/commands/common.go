// Package commands provides CLI command handlers for schematools.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/cliutil"
	"github.com/erraggy/schematools/merger"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// outputFileMode is the file permission mode for output files (owner read/write only)
const outputFileMode = 0600

// maxConcurrentReads caps the number of input files read at once.
const maxConcurrentReads = 4

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// ResolveOutputFormat picks the output encoding: an explicit --format value
// wins, then the output path extension, then the fallback format.
func ResolveOutputFormat(flagValue, outputPath string, fallback inferrer.SourceFormat) (inferrer.SourceFormat, error) {
	if flagValue != "" {
		if err := ValidateOutputFormat(flagValue); err != nil {
			return inferrer.SourceFormatUnknown, err
		}
		return inferrer.SourceFormat(flagValue), nil
	}
	switch filepath.Ext(outputPath) {
	case ".yaml", ".yml":
		return inferrer.SourceFormatYAML, nil
	case ".json":
		return inferrer.SourceFormatJSON, nil
	}
	if fallback == inferrer.SourceFormatYAML {
		return inferrer.SourceFormatYAML, nil
	}
	return inferrer.SourceFormatJSON, nil
}

// ValidateMismatchStrategy validates a merge mismatch strategy name and
// returns an error if invalid. Empty values are allowed and select the
// merger default.
func ValidateMismatchStrategy(value string) error {
	if value != "" && !merger.IsValidStrategy(value) {
		return fmt.Errorf("invalid on-mismatch '%s'. Valid strategies: %v", value, merger.ValidStrategies())
	}
	return nil
}

// ValidateDedupeMode validates a merge dedupe mode name and returns an
// error if invalid. Empty values are allowed and select the merger default.
func ValidateDedupeMode(value string) error {
	if value != "" && !merger.IsValidDedupeMode(value) {
		return fmt.Errorf("invalid dedupe '%s'. Valid modes: %v", value, merger.ValidDedupeModes())
	}
	return nil
}

// MarshalSchema renders a schema document in the given format. JSON output
// is 2-space indented with all object keys sorted and ends with a newline,
// so two calls over the same logical schema produce identical bytes.
func MarshalSchema(s *inferrer.Schema, format inferrer.SourceFormat) ([]byte, error) {
	if format == inferrer.SourceFormatYAML {
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("marshaling schema to YAML: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadInput reads a data file, or all of stdin when the path is StdinFilePath.
func ReadInput(path string) ([]byte, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// dataInput pairs raw input bytes with the path they came from.
type dataInput struct {
	path string
	data []byte
}

// loadDataInputs reads every input, fetching files concurrently. Stdin
// may appear at most once since it can only be consumed once.
func loadDataInputs(paths []string) ([]dataInput, error) {
	stdinCount := 0
	for _, path := range paths {
		if path == StdinFilePath {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return nil, fmt.Errorf("stdin ('-') can only be read once")
	}

	inputs := make([]dataInput, len(paths))
	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			data, err := ReadInput(path)
			if err != nil {
				return err
			}
			inputs[i] = dataInput{path: path, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// FormatInputPath returns a display-friendly name for an input.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	// Get absolute path of output file
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	// Check if output file would overwrite any input files
	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	// Check if output file already exists and warn (but don't error)
	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}

	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// File doesn't exist yet, safe to write.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// WriteDocument writes schema output to outputPath with restrictive
// permissions (0600). If the file already exists its permissions are reset
// to 0600 after writing.
func WriteDocument(data []byte, outputPath string) error {
	cleaned := filepath.Clean(outputPath)
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, outputFileMode); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := os.Chmod(cleaned, outputFileMode); err != nil {
		return fmt.Errorf("setting output file permissions: %w", err)
	}
	return nil
}

// PrintWarnings writes a warnings block to stderr.
func PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	cliutil.Writef(os.Stderr, "Warnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		cliutil.Writef(os.Stderr, "  - %s\n", warning)
	}
	cliutil.Writef(os.Stderr, "\n")
}
