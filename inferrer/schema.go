package inferrer

import (
	"fmt"

	"github.com/erraggy/schematools/schemaerrors"
)

// Schema is a JSON Schema node restricted to the structural keywords
// this package infers. The same struct serves as document root (where
// SchemaURI and Title are set) and as nested node.
//
// Fields are declared in lexicographic key order so struct marshaling
// emits keys sorted, matching the map-key ordering of the codec. Empty
// fields are omitted; a tuple node always carries AdditionalItems.
type Schema struct {
	SchemaURI       string             `yaml:"$schema,omitempty" json:"$schema,omitempty"`
	AdditionalItems *bool              `yaml:"additionalItems,omitempty" json:"additionalItems,omitempty"`
	Items           any                `yaml:"items,omitempty" json:"items,omitempty"` // *Schema or []*Schema (tuple)
	Properties      map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required        []string           `yaml:"required,omitempty" json:"required,omitempty"`
	Title           string             `yaml:"title,omitempty" json:"title,omitempty"`
	Type            any                `yaml:"type,omitempty" json:"type,omitempty"` // string or []string
}

// DefaultSchemaURI is the draft version stamped on generated documents.
const DefaultSchemaURI = "http://json-schema.org/draft-07/schema#"

// Titles stamped on document roots.
const (
	GeneratedTitle = "Generated schema for Root"
	ExtendedTitle  = "Extended schema"
)

// Clone returns a deep copy of the schema. The copy shares no
// structure with the original, so callers may retain inputs across
// merge operations without aliasing.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		SchemaURI: s.SchemaURI,
		Title:     s.Title,
	}
	if s.AdditionalItems != nil {
		v := *s.AdditionalItems
		out.AdditionalItems = &v
	}
	switch items := s.Items.(type) {
	case *Schema:
		out.Items = items.Clone()
	case []*Schema:
		list := make([]*Schema, len(items))
		for i, item := range items {
			list[i] = item.Clone()
		}
		out.Items = list
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	switch t := s.Type.(type) {
	case string:
		out.Type = t
	case []string:
		out.Type = append([]string(nil), t...)
	}
	return out
}

// isType reports whether the schema's type is exactly the bare string
// tag. A type list never matches, even with a single element: merging
// distinguishes {"type": "object"} from {"type": ["object"]}.
func (s *Schema) isType(tag string) bool {
	if s == nil {
		return false
	}
	t, ok := s.Type.(string)
	return ok && t == tag
}

// isEmpty reports whether the schema carries no keywords at all, such
// as the empty item schema of an empty array. Empty nodes yield to
// their peer during merging.
func (s *Schema) isEmpty() bool {
	return s == nil || (s.SchemaURI == "" &&
		s.AdditionalItems == nil &&
		s.Items == nil &&
		len(s.Properties) == 0 &&
		len(s.Required) == 0 &&
		s.Title == "" &&
		s.Type == nil)
}

// SchemaFromValue converts a decoded JSON/YAML document into a Schema,
// validating field shapes along the way. Unknown keywords are dropped;
// known keywords with the wrong shape produce a *schemaerrors.
// SchemaShapeError naming the path. An explicit empty-string type is
// treated as absent.
//
// This is the single entry point for externally supplied schema
// documents (base schemas, merge inputs, MCP payloads); the engine
// itself only sees well-shaped nodes.
func SchemaFromValue(v any) (*Schema, error) {
	return schemaFromValue(v, "")
}

func schemaFromValue(v any, path string) (*Schema, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &schemaerrors.SchemaShapeError{
			Path:    path,
			Value:   v,
			Message: fmt.Sprintf("expected a schema object, got %T", v),
		}
	}
	s := &Schema{}

	if raw, ok := obj["$schema"]; ok {
		uri, ok := raw.(string)
		if !ok {
			return nil, shapeError(path, "$schema", raw, "must be a string")
		}
		s.SchemaURI = uri
	}
	if raw, ok := obj["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			return nil, shapeError(path, "title", raw, "must be a string")
		}
		s.Title = title
	}
	if raw, ok := obj["type"]; ok {
		t, err := typeFromValue(raw, path)
		if err != nil {
			return nil, err
		}
		s.Type = t
	}
	if raw, ok := obj["additionalItems"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, shapeError(path, "additionalItems", raw, "must be a boolean")
		}
		s.AdditionalItems = &b
	}
	if raw, ok := obj["items"]; ok {
		items, err := itemsFromValue(raw, path)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	if raw, ok := obj["properties"]; ok {
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, shapeError(path, "properties", raw, "must be an object")
		}
		s.Properties = make(map[string]*Schema, len(props))
		for name, rawProp := range props {
			prop, err := schemaFromValue(rawProp, childPath(path, "properties."+name))
			if err != nil {
				return nil, err
			}
			s.Properties[name] = prop
		}
	}
	if raw, ok := obj["required"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, shapeError(path, "required", raw, "must be an array of strings")
		}
		required := make([]string, 0, len(list))
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				return nil, shapeError(path, "required", item, "must be an array of strings")
			}
			required = append(required, name)
		}
		if len(required) > 0 {
			s.Required = required
		}
	}
	return s, nil
}

// typeFromValue normalizes a raw type keyword to string or []string.
func typeFromValue(raw any, path string) (any, error) {
	switch t := raw.(type) {
	case string:
		if t == "" {
			return nil, nil
		}
		return t, nil
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			tag, ok := item.(string)
			if !ok {
				return nil, shapeError(path, "type", item, "must be a string or array of strings")
			}
			if tag != "" {
				tags = append(tags, tag)
			}
		}
		switch len(tags) {
		case 0:
			return nil, nil
		case 1:
			return tags[0], nil
		}
		return tags, nil
	}
	return nil, shapeError(path, "type", raw, "must be a string or array of strings")
}

// itemsFromValue normalizes a raw items keyword to *Schema or []*Schema.
func itemsFromValue(raw any, path string) (any, error) {
	switch items := raw.(type) {
	case map[string]any:
		return schemaFromValue(items, childPath(path, "items"))
	case []any:
		list := make([]*Schema, 0, len(items))
		for i, item := range items {
			s, err := schemaFromValue(item, childPath(path, fmt.Sprintf("items[%d]", i)))
			if err != nil {
				return nil, err
			}
			list = append(list, s)
		}
		return list, nil
	}
	return nil, shapeError(path, "items", raw, "must be a schema object or array of schema objects")
}

func shapeError(path, field string, value any, message string) error {
	return &schemaerrors.SchemaShapeError{
		Path:    path,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

func childPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
