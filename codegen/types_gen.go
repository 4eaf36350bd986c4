package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/schematools/inferrer"
	"github.com/erraggy/schematools/internal/schemautil"
	"golang.org/x/tools/imports"
)

// typesFileName is the single file emitted by the generator.
const typesFileName = "types.go"

// typeInteger appears in hand-written schemas; the inferrer itself only
// emits number for numeric values.
const typeInteger = "integer"

// fieldDecl is one struct field: Go name, Go type, and the JSON tag.
type fieldDecl struct {
	name   string
	goType string
	tag    string
}

// typeDecl is one emitted type declaration. Object schemas declare a
// struct with fields; other declarations name an underlying Go type.
type typeDecl struct {
	name       string
	doc        string
	underlying string
	fields     []fieldDecl
}

// typesBuilder walks a schema and accumulates type declarations in
// document order: parents before the nested types their fields reference.
type typesBuilder struct {
	g         *Generator
	result    *CodegenResult
	decls     []typeDecl
	usedNames map[string]bool
}

func newTypesBuilder(g *Generator, result *CodegenResult) *typesBuilder {
	return &typesBuilder{
		g:         g,
		result:    result,
		usedNames: make(map[string]bool),
	}
}

// build declares the root type and, transitively, every nested object type.
func (b *typesBuilder) build(schema *inferrer.Schema) {
	rootName := b.claimName(b.result.RootType)
	b.result.RootType = rootName
	doc := fmt.Sprintf("// %s is the document root.", rootName)

	// A nullable object root still declares a plain struct; encoding/json
	// decodes a document-level null as a no-op.
	types := schemautil.GetSchemaTypes(schema)
	nullableUnion := len(types) == 2 && schemautil.IsNullable(schema)
	structRoot := schemautil.GetPrimaryType(schema) == inferrer.TypeObject &&
		len(schema.Properties) > 0 &&
		(len(types) == 1 || nullableUnion)
	if structRoot {
		b.declareStruct(rootName, doc, "", schema)
		return
	}

	idx := len(b.decls)
	b.decls = append(b.decls, typeDecl{name: rootName, doc: doc})
	b.decls[idx].underlying = b.valueTypeFor(schema, "", rootName)
}

// declareStruct reserves a declaration slot for an object schema and
// fills in its fields after recursion, keeping parents ahead of the
// types their fields reference.
func (b *typesBuilder) declareStruct(name, doc, path string, schema *inferrer.Schema) {
	idx := len(b.decls)
	b.decls = append(b.decls, typeDecl{name: name, doc: doc})

	props := make([]string, 0, len(schema.Properties))
	for prop := range schema.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)

	seen := make(map[string]bool, len(props))
	fields := make([]fieldDecl, 0, len(props))
	for _, prop := range props {
		fieldName := toFieldName(prop)
		for seen[fieldName] {
			fieldName += "_"
		}
		seen[fieldName] = true

		required := isRequired(schema.Required, prop)
		jsonTag := prop
		if !required {
			jsonTag += ",omitempty"
		}

		goType := b.goTypeFor(schema.Properties[prop], childPath(path, prop), name+fieldName, required)
		fields = append(fields, fieldDecl{
			name:   fieldName,
			goType: goType,
			tag:    fmt.Sprintf("`json:%q`", jsonTag),
		})
	}
	b.decls[idx].fields = fields
}

// goTypeFor maps a property schema to its field type, wrapping optional
// value types in a pointer when UsePointers is enabled.
func (b *typesBuilder) goTypeFor(schema *inferrer.Schema, path, hint string, required bool) string {
	goType := b.valueTypeFor(schema, path, hint)
	if required || !b.g.UsePointers || !pointerEligible(goType) {
		return goType
	}
	return "*" + goType
}

// valueTypeFor maps a schema node to a Go type expression. hint is the
// name to declare if the node needs its own type, already prefixed with
// the parent type name.
func (b *typesBuilder) valueTypeFor(schema *inferrer.Schema, path, hint string) string {
	if schema == nil {
		return "any"
	}

	types := schemautil.GetSchemaTypes(schema)
	switch {
	case len(types) == 0:
		// No type constraint admits any value.
		return "any"
	case len(types) == 1:
		if types[0] == inferrer.TypeNull {
			b.result.AddWarning("%s: only null values observed; using any", displayPath(path))
			return "any"
		}
		return b.typedFor(types[0], schema, path, hint, false)
	case len(types) == 2 && schemautil.IsNullable(schema):
		return b.typedFor(schemautil.GetPrimaryType(schema), schema, path, hint, true)
	default:
		b.result.AddWarning("%s: no single Go type for %v; using any", displayPath(path), types)
		return "any"
	}
}

// typedFor maps one concrete type tag to a Go type. Nullable scalars
// become pointers; nullable slices and maps already decode null as nil.
func (b *typesBuilder) typedFor(tag string, schema *inferrer.Schema, path, hint string, nullable bool) string {
	switch tag {
	case inferrer.TypeString:
		return scalarFor("string", nullable)
	case inferrer.TypeNumber:
		return scalarFor("float64", nullable)
	case inferrer.TypeBoolean:
		return scalarFor("bool", nullable)
	case typeInteger:
		return scalarFor("int64", nullable)
	case inferrer.TypeObject:
		if len(schema.Properties) == 0 {
			return "map[string]any"
		}
		name := b.claimName(hint)
		b.declareStruct(name, docForPath(name, path), path, schema)
		if nullable {
			return "*" + name
		}
		return name
	case inferrer.TypeArray:
		return b.arrayTypeFor(schema, path, hint)
	default:
		b.result.AddWarning("%s: unsupported type %q; using any", displayPath(path), tag)
		return "any"
	}
}

// arrayTypeFor maps an array schema to a slice type. Tuple forms carry
// per-position schemas, which have no single element type in Go.
func (b *typesBuilder) arrayTypeFor(schema *inferrer.Schema, path, hint string) string {
	switch items := schema.Items.(type) {
	case *inferrer.Schema:
		return "[]" + b.valueTypeFor(items, childPath(path, "items"), hint+"Item")
	case []*inferrer.Schema:
		b.result.AddWarning("%s: tuple items have no single element type; using []any", displayPath(path))
		return "[]any"
	default:
		return "[]any"
	}
}

// claimName reserves a unique type name, appending a numeric suffix when
// the name was already taken by another branch of the schema.
func (b *typesBuilder) claimName(name string) string {
	if name == "" {
		name = "Type"
	}
	if !b.usedNames[name] {
		b.usedNames[name] = true
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !b.usedNames[candidate] {
			b.usedNames[candidate] = true
			return candidate
		}
	}
}

// emit renders the accumulated declarations into types.go.
func (b *typesBuilder) emit() {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by schematools. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", b.result.PackageName)

	for i, decl := range b.decls {
		if i > 0 {
			buf.WriteString("\n")
		}
		if decl.doc != "" {
			buf.WriteString(decl.doc)
			buf.WriteString("\n")
		}
		if decl.underlying != "" {
			fmt.Fprintf(&buf, "type %s %s\n", decl.name, decl.underlying)
			continue
		}
		fmt.Fprintf(&buf, "type %s struct {\n", decl.name)
		for _, field := range decl.fields {
			fmt.Fprintf(&buf, "\t%s %s %s\n", field.name, field.goType, field.tag)
		}
		buf.WriteString("}\n")
	}

	formatted, err := formatAndFixImports(typesFileName, buf.Bytes())
	if err != nil {
		// Keep the unformatted source rather than failing generation.
		b.result.AddWarning("%s: failed to format generated code: %v", typesFileName, err)
		formatted = buf.Bytes()
	}

	b.result.Files = append(b.result.Files, GeneratedFile{
		Name:    typesFileName,
		Content: formatted,
	})
	b.result.GeneratedTypes = len(b.decls)
}

func scalarFor(goType string, nullable bool) string {
	if nullable {
		return "*" + goType
	}
	return goType
}

// pointerEligible reports whether an optional field of this type needs a
// pointer. Slices, maps, any, and already-pointered types have usable
// zero values and are left alone.
func pointerEligible(goType string) bool {
	switch {
	case goType == "any",
		strings.HasPrefix(goType, "*"),
		strings.HasPrefix(goType, "[]"),
		strings.HasPrefix(goType, "map["):
		return false
	}
	return true
}

// docForPath writes the doc comment for a declared type, naming the
// schema location it was generated from.
func docForPath(name, path string) string {
	if path == "" {
		return fmt.Sprintf("// %s is the document root.", name)
	}
	seg := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		seg = path[i+1:]
	}
	if seg == "items" {
		parent := strings.TrimSuffix(strings.TrimSuffix(path, "items"), ".")
		if parent == "" {
			return fmt.Sprintf("// %s is an element of the document root.", name)
		}
		return fmt.Sprintf("// %s is an element of %q.", name, parent)
	}
	return fmt.Sprintf("// %s is the %q object.", name, seg)
}

// isRequired checks if a property name is in the required list.
func isRequired(required []string, name string) bool {
	for _, r := range required {
		if r == name {
			return true
		}
	}
	return false
}

func childPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

// formatAndFixImports formats Go source code and automatically fixes
// imports using goimports-equivalent processing, so generated code is
// immediately compilable.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}
