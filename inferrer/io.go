package inferrer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schematools/schemaerrors"
)

// detectFormatFromPath detects the source format from a file path.
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from content
// bytes. Documents starting with '{', '[', or '"' are treated as
// JSON; everything else is assumed to be YAML, which also covers
// bare JSON scalars since YAML is a superset.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// readSource reads a file and detects its format from the extension.
func readSource(path string) ([]byte, SourceFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SourceFormatUnknown, &schemaerrors.InputError{
			Source:  path,
			Message: "failed to read file",
			Cause:   err,
		}
	}
	return data, detectFormatFromPath(path), nil
}

// decodeValue parses data bytes into a generic JSON value. When the
// format is unknown it is sniffed from the content, defaulting to
// JSON. YAML decoding covers JSON input too, but the formats are kept
// distinct so results can report what they actually read.
func decodeValue(data []byte, format SourceFormat, source string) (any, SourceFormat, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	var value any
	switch format {
	case SourceFormatYAML:
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, format, &schemaerrors.DecodeError{
				Path:    source,
				Format:  "yaml",
				Message: "invalid YAML",
				Cause:   err,
			}
		}
	default:
		format = SourceFormatJSON
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, format, &schemaerrors.DecodeError{
				Path:    source,
				Format:  "json",
				Message: "invalid JSON",
				Cause:   err,
			}
		}
	}
	return value, format, nil
}

// DecodeValue decodes a JSON or YAML data document into the value
// shapes a JSON decoder produces (map[string]any, []any, scalars),
// sniffing the format from the content. The decoded value is suitable
// for WithValue.
func DecodeValue(data []byte) (any, SourceFormat, error) {
	return decodeValue(data, SourceFormatUnknown, "data input")
}

// schemaFromBytes decodes a schema document and validates its shape.
func schemaFromBytes(data []byte, format SourceFormat, source string) (*Schema, error) {
	value, _, err := decodeValue(data, format, source)
	if err != nil {
		return nil, err
	}
	schema, err := SchemaFromValue(value)
	if err != nil {
		return nil, fmt.Errorf("inferrer: invalid schema document %s: %w", source, err)
	}
	return schema, nil
}

// ParseSchema decodes a schema document from raw JSON or YAML bytes,
// sniffing the format from the content. The document shape is
// validated; see SchemaFromValue.
func ParseSchema(data []byte) (*Schema, SourceFormat, error) {
	format := detectFormatFromContent(data)
	schema, err := schemaFromBytes(data, format, "schema document")
	if err != nil {
		return nil, format, err
	}
	return schema, format, nil
}

// LoadSchema reads a schema document from a JSON or YAML file,
// detecting the format from the extension (content sniffing as a
// fallback). The document shape is validated; see SchemaFromValue.
func LoadSchema(path string) (*Schema, error) {
	schema, _, err := LoadSchemaFile(path)
	return schema, err
}

// LoadSchemaFile is like LoadSchema but also reports the detected
// source format, for callers that re-encode output to match their
// input.
func LoadSchemaFile(path string) (*Schema, SourceFormat, error) {
	data, format, err := readSource(path)
	if err != nil {
		return nil, SourceFormatUnknown, err
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	schema, err := schemaFromBytes(data, format, path)
	if err != nil {
		return nil, format, err
	}
	return schema, format, nil
}
