package inferrer

import "sort"

// Merging never mutates its inputs: kept or copied nodes are cloned
// into the result, so outputs share no structure with either input.

// Merge combines two schema documents at the root. Matching roots
// merge by kind; on any other combination the second document replaces
// the first in full. When the roots merge, the first document's
// $schema and title are preserved, with defaults filled in when it
// lacks them.
func Merge(a, b *Schema) *Schema {
	var merged *Schema
	switch {
	case a.isType(TypeObject) && b.isType(TypeObject):
		merged = mergeObjectSchemas(a, b)
	case a.isType(TypeArray) && b.isType(TypeArray):
		merged = mergeArraySchemas(a, b)
	default:
		return b.Clone()
	}
	merged.SchemaURI = a.SchemaURI
	if merged.SchemaURI == "" {
		merged.SchemaURI = DefaultSchemaURI
	}
	merged.Title = a.Title
	if merged.Title == "" {
		merged.Title = ExtendedTitle
	}
	return merged
}

// mergeObjectSchemas combines two object nodes into one covering the
// union of their properties. Required shrinks to the intersection: the
// merged schema must accept data shaped like either input.
func mergeObjectSchemas(a, b *Schema) *Schema {
	merged := &Schema{Type: TypeObject}

	names := make([]string, 0, len(a.Properties)+len(b.Properties))
	seen := make(map[string]bool, len(a.Properties)+len(b.Properties))
	for name := range a.Properties {
		seen[name] = true
		names = append(names, name)
	}
	for name := range b.Properties {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) > 0 {
		merged.Properties = make(map[string]*Schema, len(names))
	}
	for _, name := range names {
		propA := a.Properties[name]
		propB := b.Properties[name]
		switch {
		case !propA.isEmpty() && !propB.isEmpty():
			merged.Properties[name] = mergeProperty(propA, propB)
		case !propA.isEmpty():
			merged.Properties[name] = propA.Clone()
		default:
			merged.Properties[name] = propB.Clone()
		}
	}

	merged.Required = intersectRequired(a.Required, b.Required)
	return merged
}

// mergeProperty reconciles one property present in both objects.
// Object pairs recurse, array pairs merge structurally, equal type
// values keep the first node, and anything else flattens to a node
// with the unioned type set, discarding nested structure on both
// sides.
func mergeProperty(a, b *Schema) *Schema {
	switch {
	case a.isType(TypeObject) && b.isType(TypeObject):
		return mergeObjectSchemas(a, b)
	case a.isType(TypeArray) && b.isType(TypeArray):
		return mergeArraySchemas(a, b)
	case typesEqual(a.Type, b.Type):
		return a.Clone()
	default:
		return &Schema{Type: unionTypes(a.Type, b.Type)}
	}
}

// mergeArraySchemas combines two array nodes.
func mergeArraySchemas(a, b *Schema) *Schema {
	merged := &Schema{Type: TypeArray}

	tupleA, aIsTuple := a.Items.([]*Schema)
	tupleB, bIsTuple := b.Items.([]*Schema)

	switch {
	case aIsTuple && bIsTuple:
		merged.Items = mergeTuples(tupleA, tupleB)
		merged.AdditionalItems = inheritAdditionalItems(a, b)
	case aIsTuple:
		// Tuple beats homogeneous: the other side's items are discarded.
		merged.Items = cloneTuple(tupleA)
		merged.AdditionalItems = inheritAdditionalItems(a, nil)
	case bIsTuple:
		merged.Items = cloneTuple(tupleB)
		merged.AdditionalItems = inheritAdditionalItems(b, nil)
	case a.Items == nil:
		// One side never saw items: take the other side verbatim.
		if itemsB, ok := b.Items.(*Schema); ok {
			merged.Items = itemsB.Clone()
		}
		if b.AdditionalItems != nil {
			v := *b.AdditionalItems
			merged.AdditionalItems = &v
		}
	case b.Items == nil:
		if itemsA, ok := a.Items.(*Schema); ok {
			merged.Items = itemsA.Clone()
		}
		if a.AdditionalItems != nil {
			v := *a.AdditionalItems
			merged.AdditionalItems = &v
		}
	default:
		itemsA, okA := a.Items.(*Schema)
		itemsB, okB := b.Items.(*Schema)
		if okA && okB {
			merged.Items = mergeItems(itemsA, itemsB)
		}
	}
	return merged
}

// mergeTuples merges two positional item lists up to the longer
// length. Positions present on both sides merge per kind; empty or
// missing positions yield to the peer.
func mergeTuples(a, b []*Schema) []*Schema {
	length := len(a)
	if len(b) > length {
		length = len(b)
	}
	merged := make([]*Schema, 0, length)
	for i := 0; i < length; i++ {
		var itemA, itemB *Schema
		if i < len(a) {
			itemA = a[i]
		}
		if i < len(b) {
			itemB = b[i]
		}
		switch {
		case !itemA.isEmpty() && !itemB.isEmpty():
			merged = append(merged, mergeItems(itemA, itemB))
		case !itemA.isEmpty():
			merged = append(merged, itemA.Clone())
		default:
			merged = append(merged, itemB.Clone())
		}
	}
	return merged
}

// mergeItems reconciles two homogeneous item schemas or two tuple
// positions. Unlike property merging, array pairs do not recurse
// here; equal type values keep the first node as-is.
func mergeItems(a, b *Schema) *Schema {
	switch {
	case a.isType(TypeObject) && b.isType(TypeObject):
		return mergeObjectSchemas(a, b)
	case typesEqual(a.Type, b.Type):
		return a.Clone()
	default:
		return &Schema{Type: unionTypes(a.Type, b.Type)}
	}
}

// inheritAdditionalItems resolves the additionalItems of a merged
// tuple node: the first input's value when set, else the second's,
// else false. The result is always set, so tuple nodes serialize
// additionalItems even when false.
func inheritAdditionalItems(a, b *Schema) *bool {
	if a != nil && a.AdditionalItems != nil {
		v := *a.AdditionalItems
		return &v
	}
	if b != nil && b.AdditionalItems != nil {
		v := *b.AdditionalItems
		return &v
	}
	v := false
	return &v
}

func cloneTuple(items []*Schema) []*Schema {
	cloned := make([]*Schema, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
	}
	return cloned
}

// intersectRequired returns the sorted intersection of two required
// lists. An empty intersection yields nil so the keyword is omitted.
func intersectRequired(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[name] = true
	}
	var out []string
	seen := make(map[string]bool, len(a))
	for _, name := range a {
		if inB[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
