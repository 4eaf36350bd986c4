package codegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/schematools/internal/fileutil"
	"github.com/erraggy/schematools/schemaerrors"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *CodegenResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return &schemaerrors.OutputError{
			Path:    outputDir,
			Message: "failed to create output directory",
			Cause:   err,
		}
	}

	for _, file := range r.Files {
		safeName := filepath.Base(file.Name)
		if safeName != file.Name {
			return fmt.Errorf("codegen: invalid file name %q: must not contain path separators", file.Name)
		}
		filePath := filepath.Join(outputDir, safeName)
		if err := os.WriteFile(filePath, file.Content, fileutil.ReadableByAll); err != nil {
			return &schemaerrors.OutputError{
				Path:    filePath,
				Message: "failed to write generated file",
				Cause:   err,
			}
		}
	}

	return nil
}

// WriteFile writes a single generated file to the specified path.
// Parent directories are created as needed.
func (f *GeneratedFile) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &schemaerrors.OutputError{
			Path:    path,
			Message: "failed to create output directory",
			Cause:   err,
		}
	}

	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return &schemaerrors.OutputError{
			Path:    path,
			Message: "failed to write generated file",
			Cause:   err,
		}
	}

	return nil
}
