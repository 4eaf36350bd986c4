package inferrer

import (
	"encoding/json"
	"sort"
)

// JSON Schema type tags produced by TypeOf.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
	// TypeUnknown is the fallback tag for Go values with no JSON
	// equivalent. Classification never fails; callers surface a
	// warning instead.
	TypeUnknown = "unknown"
)

// typePriority fixes the order of type tags in union lists.
// Unknown tags sort after all known tags, lexicographically.
var typePriority = map[string]int{
	TypeNull:    0,
	TypeBoolean: 1,
	TypeNumber:  2,
	TypeString:  3,
	TypeArray:   4,
	TypeObject:  5,
}

// TypeOf classifies a decoded JSON value into its schema type tag.
// Booleans are tested before numbers; every integer and float kind
// maps to "number" (JSON does not distinguish them). Values outside
// the JSON data model return TypeUnknown.
//
// The value is expected to come from a JSON or YAML decoder: maps are
// map[string]any, arrays are []any.
func TypeOf(v any) string {
	switch v.(type) {
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return TypeNumber
	case string:
		return TypeString
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	case nil:
		return TypeNull
	default:
		return TypeUnknown
	}
}

// sortTypeTags orders tags in place: known tags by priority
// (null < boolean < number < string < array < object), then any
// remaining tags lexicographically.
func sortTypeTags(tags []string) {
	sort.Slice(tags, func(i, j int) bool {
		pi, iKnown := typePriority[tags[i]]
		pj, jKnown := typePriority[tags[j]]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return tags[i] < tags[j]
		}
	})
}

// typeTags normalizes a schema type value to its set of tags.
// A nil or empty type yields nil: absent types contribute nothing
// to a union.
func typeTags(t any) []string {
	switch v := t.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

// unionTypes merges two schema type values into one. A union of
// cardinality 1 collapses to a bare string; larger unions become a
// sorted []string. Both inputs empty yields nil.
func unionTypes(a, b any) any {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range typeTags(a) {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	for _, t := range typeTags(b) {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	switch len(tags) {
	case 0:
		return nil
	case 1:
		return tags[0]
	}
	sortTypeTags(tags)
	return tags
}

// typesEqual reports whether two schema type values are the same
// shape: both absent, the same bare string, or lists with identical
// tags in identical order. A bare string never equals a one-element
// list.
func typesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr || bIsStr {
		return aIsStr && bIsStr && as == bs
	}
	al, bl := typeTags(a), typeTags(b)
	if len(al) != len(bl) {
		return false
	}
	for i := range al {
		if al[i] != bl[i] {
			return false
		}
	}
	return true
}
