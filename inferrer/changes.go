package inferrer

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaChanges describes how an extend operation widened the base
// schema. Paths are dotted property paths from the document root,
// with tuple positions written as items[i].
type SchemaChanges struct {
	// RootReplaced reports that the root types did not match and the
	// base document was discarded in favor of the generated one
	RootReplaced bool `json:"rootReplaced,omitempty"`
	// AddedProperties lists property paths present only in the new data
	AddedProperties []string `json:"addedProperties,omitempty"`
	// RemovedRequired lists required keys the base lost (now optional)
	RemovedRequired []string `json:"removedRequired,omitempty"`
	// WidenedTypes lists nodes whose type changed, as "path: old -> new"
	WidenedTypes []string `json:"widenedTypes,omitempty"`
	// ExtendedTuples lists tuple nodes that gained positions
	ExtendedTuples []string `json:"extendedTuples,omitempty"`
}

// Empty reports whether the extend operation changed nothing.
func (c *SchemaChanges) Empty() bool {
	return c == nil || (!c.RootReplaced &&
		len(c.AddedProperties) == 0 &&
		len(c.RemovedRequired) == 0 &&
		len(c.WidenedTypes) == 0 &&
		len(c.ExtendedTuples) == 0)
}

// Summary returns a one-line description, e.g.
// "2 properties added, 1 required key dropped".
func (c *SchemaChanges) Summary() string {
	if c.Empty() {
		return "no changes"
	}
	var parts []string
	if c.RootReplaced {
		parts = append(parts, "root schema replaced")
	}
	if n := len(c.AddedProperties); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s added", n, plural(n, "property", "properties")))
	}
	if n := len(c.RemovedRequired); n > 0 {
		parts = append(parts, fmt.Sprintf("%d required %s dropped", n, plural(n, "key", "keys")))
	}
	if n := len(c.WidenedTypes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s widened", n, plural(n, "type", "types")))
	}
	if n := len(c.ExtendedTuples); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s extended", n, plural(n, "tuple", "tuples")))
	}
	return strings.Join(parts, ", ")
}

// Lines returns one human-readable line per change, for report output.
func (c *SchemaChanges) Lines() []string {
	if c.Empty() {
		return nil
	}
	var lines []string
	if c.RootReplaced {
		lines = append(lines, "root schema replaced (type mismatch between base and new data)")
	}
	for _, path := range c.AddedProperties {
		lines = append(lines, "added property "+path)
	}
	for _, path := range c.RemovedRequired {
		lines = append(lines, "required key dropped: "+path)
	}
	for _, change := range c.WidenedTypes {
		lines = append(lines, "widened type "+change)
	}
	for _, change := range c.ExtendedTuples {
		lines = append(lines, "extended tuple "+change)
	}
	return lines
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// compareSchemas walks the base and merged documents and reports what
// the extend operation changed. When the roots did not merge (any
// combination other than object+object or array+array), the report
// only records the replacement.
func compareSchemas(base, merged *Schema) *SchemaChanges {
	changes := &SchemaChanges{}
	switch {
	case base.isType(TypeObject) && merged.isType(TypeObject):
		compareObjects("", base, merged, changes)
	case base.isType(TypeArray) && merged.isType(TypeArray):
		compareArrays("", base, merged, changes)
	default:
		changes.RootReplaced = true
	}
	return changes
}

func compareObjects(path string, base, merged *Schema, changes *SchemaChanges) {
	names := make([]string, 0, len(merged.Properties))
	for name := range merged.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		baseProp := base.Properties[name]
		mergedProp := merged.Properties[name]
		if baseProp == nil {
			changes.AddedProperties = append(changes.AddedProperties, childPath(path, name))
			continue
		}
		compareNodes(childPath(path, name), baseProp, mergedProp, changes)
	}

	mergedRequired := make(map[string]bool, len(merged.Required))
	for _, name := range merged.Required {
		mergedRequired[name] = true
	}
	for _, name := range base.Required {
		if !mergedRequired[name] {
			changes.RemovedRequired = append(changes.RemovedRequired, childPath(path, name))
		}
	}
}

func compareNodes(path string, base, merged *Schema, changes *SchemaChanges) {
	if base == nil || merged == nil {
		return
	}
	switch {
	case base.isType(TypeObject) && merged.isType(TypeObject):
		compareObjects(path, base, merged, changes)
	case base.isType(TypeArray) && merged.isType(TypeArray):
		compareArrays(path, base, merged, changes)
	default:
		if !typesEqual(base.Type, merged.Type) {
			changes.WidenedTypes = append(changes.WidenedTypes,
				fmt.Sprintf("%s: %s -> %s", path, typeDisplay(base.Type), typeDisplay(merged.Type)))
		}
	}
}

func compareArrays(path string, base, merged *Schema, changes *SchemaChanges) {
	baseTuple, baseIsTuple := base.Items.([]*Schema)
	mergedTuple, mergedIsTuple := merged.Items.([]*Schema)

	switch {
	case baseIsTuple && mergedIsTuple:
		if len(mergedTuple) > len(baseTuple) {
			changes.ExtendedTuples = append(changes.ExtendedTuples,
				fmt.Sprintf("%s: %d -> %d positions", displayPath(path), len(baseTuple), len(mergedTuple)))
		}
		for i := 0; i < len(baseTuple) && i < len(mergedTuple); i++ {
			compareNodes(childPath(path, fmt.Sprintf("items[%d]", i)), baseTuple[i], mergedTuple[i], changes)
		}
	case !baseIsTuple && mergedIsTuple:
		changes.WidenedTypes = append(changes.WidenedTypes,
			fmt.Sprintf("%s: single-item form -> tuple form", childPath(path, "items")))
	case !baseIsTuple && !mergedIsTuple:
		baseItems, _ := base.Items.(*Schema)
		mergedItems, _ := merged.Items.(*Schema)
		compareNodes(childPath(path, "items"), baseItems, mergedItems, changes)
	}
}

func typeDisplay(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	}
	return "(none)"
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
