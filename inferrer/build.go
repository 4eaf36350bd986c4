package inferrer

import (
	"fmt"
	"sort"
)

// builder constructs schema nodes from decoded JSON values, collecting
// stats and non-fatal diagnostics along the way. A builder is used for
// a single build pass and is not safe for concurrent use; the build
// functions themselves never mutate their inputs.
type builder struct {
	logger   Logger
	stats    InferStats
	warnings []string
}

func newBuilder(logger Logger) *builder {
	if logger == nil {
		logger = NopLogger{}
	}
	return &builder{logger: logger}
}

// typeOf classifies a value and records a diagnostic when it falls
// outside the JSON data model. Classification never fails.
func (b *builder) typeOf(v any) string {
	tag := TypeOf(v)
	if tag == TypeUnknown {
		b.logger.Warn("value outside the JSON data model", "goType", fmt.Sprintf("%T", v))
		b.warnings = append(b.warnings, fmt.Sprintf("value of type %T has no JSON equivalent; classified as %q", v, TypeUnknown))
		b.stats.Unknowns++
	}
	return tag
}

func (b *builder) observeDepth(depth int) {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}
}

// buildValue builds the schema node for any JSON value.
func (b *builder) buildValue(v any, depth int) *Schema {
	switch val := v.(type) {
	case map[string]any:
		return b.buildObject(val, depth)
	case []any:
		return b.buildArray(val, depth)
	default:
		b.observeDepth(depth)
		b.stats.Scalars++
		return &Schema{Type: b.typeOf(v)}
	}
}

// buildObject builds an object node. Keys are visited in sorted order
// and every present key becomes required; optionality only emerges
// later, by merging against an object where the key is absent.
func (b *builder) buildObject(obj map[string]any, depth int) *Schema {
	b.observeDepth(depth)
	b.stats.Objects++

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	node := &Schema{Type: TypeObject}
	if len(keys) > 0 {
		node.Properties = make(map[string]*Schema, len(keys))
		node.Required = make([]string, 0, len(keys))
	}
	for _, key := range keys {
		node.Properties[key] = b.buildValue(obj[key], depth+1)
		node.Required = append(node.Required, key)
	}
	return node
}

// buildArray builds an array node, choosing between the homogeneous
// single-item form and positional tuple validation.
//
// Homogeneity is decided by shallow type tag alone: differently shaped
// objects still count as homogeneous and fold into one unified item
// schema. An array of arrays stays shallow, yielding items of type
// "array" without recursing into the elements.
func (b *builder) buildArray(items []any, depth int) *Schema {
	b.observeDepth(depth)
	b.stats.Arrays++

	if len(items) == 0 {
		return &Schema{Type: TypeArray, Items: &Schema{}}
	}

	tags := make([]string, len(items))
	homogeneous := true
	for i, item := range items {
		tags[i] = b.typeOf(item)
		if tags[i] != tags[0] {
			homogeneous = false
		}
	}

	if homogeneous {
		if tags[0] == TypeObject {
			merged := b.buildObject(items[0].(map[string]any), depth+1)
			for _, item := range items[1:] {
				merged = mergeObjectSchemas(merged, b.buildObject(item.(map[string]any), depth+1))
			}
			return &Schema{Type: TypeArray, Items: merged}
		}
		b.observeDepth(depth + 1)
		b.stats.Scalars++
		return &Schema{Type: TypeArray, Items: &Schema{Type: tags[0]}}
	}

	list := make([]*Schema, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]any); ok {
			list[i] = b.buildObject(obj, depth+1)
		} else {
			b.observeDepth(depth + 1)
			b.stats.Scalars++
			list[i] = &Schema{Type: tags[i]}
		}
	}
	additional := false
	return &Schema{Type: TypeArray, Items: list, AdditionalItems: &additional}
}
