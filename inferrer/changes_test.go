package inferrer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extendAndCompare generates both documents and reports how extending
// the first with the second's data changed it.
func extendAndCompare(t *testing.T, baseValue, newValue any) *SchemaChanges {
	t.Helper()
	base := Generate(baseValue)
	return compareSchemas(base, Extend(base, newValue))
}

// TestCompareSchemas_AddedProperties tests reporting of new property paths
func TestCompareSchemas_AddedProperties(t *testing.T) {
	changes := extendAndCompare(t,
		map[string]any{"name": "Alice"},
		map[string]any{"name": "Bob", "age": 30.0, "email": "b@example.com"},
	)
	assert.Equal(t, []string{"age", "email"}, changes.AddedProperties)
	assert.Empty(t, changes.RemovedRequired)
	assert.False(t, changes.Empty())
}

// TestCompareSchemas_NestedAddedProperty tests dotted paths for nested additions
func TestCompareSchemas_NestedAddedProperty(t *testing.T) {
	changes := extendAndCompare(t,
		map[string]any{"address": map[string]any{"city": "Springfield"}},
		map[string]any{"address": map[string]any{"city": "Shelbyville", "zip": "22222"}},
	)
	assert.Equal(t, []string{"address.zip"}, changes.AddedProperties)
}

// TestCompareSchemas_RemovedRequired tests reporting of demoted required keys
func TestCompareSchemas_RemovedRequired(t *testing.T) {
	changes := extendAndCompare(t,
		map[string]any{"name": "Alice", "age": 30.0},
		map[string]any{"name": "Bob"},
	)
	assert.Equal(t, []string{"age"}, changes.RemovedRequired)
	assert.Empty(t, changes.AddedProperties)
}

// TestCompareSchemas_WidenedTypes tests reporting of type changes
func TestCompareSchemas_WidenedTypes(t *testing.T) {
	changes := extendAndCompare(t,
		map[string]any{"id": 1.0},
		map[string]any{"id": "abc"},
	)
	require.Len(t, changes.WidenedTypes, 1)
	assert.Equal(t, "id: number -> [number, string]", changes.WidenedTypes[0])
}

// TestCompareSchemas_RootReplaced tests the root mismatch report
func TestCompareSchemas_RootReplaced(t *testing.T) {
	changes := extendAndCompare(t,
		map[string]any{"a": 1.0},
		[]any{1.0, 2.0},
	)
	assert.True(t, changes.RootReplaced)
	assert.Empty(t, changes.AddedProperties)
	assert.Equal(t, "root schema replaced", changes.Summary())
}

// TestCompareSchemas_TupleExtended tests reporting of tuples gaining positions
func TestCompareSchemas_TupleExtended(t *testing.T) {
	changes := extendAndCompare(t,
		[]any{1.0, "a"},
		[]any{2.0, "b", true},
	)
	require.Len(t, changes.ExtendedTuples, 1)
	assert.Equal(t, "(root): 2 -> 3 positions", changes.ExtendedTuples[0])
}

// TestCompareSchemas_TuplePositionWidened tests per-position type reports
func TestCompareSchemas_TuplePositionWidened(t *testing.T) {
	changes := extendAndCompare(t,
		[]any{1.0, "a"},
		[]any{"one", "a"},
	)
	require.Len(t, changes.WidenedTypes, 1)
	assert.Equal(t, "items[0]: number -> [number, string]", changes.WidenedTypes[0])
}

// TestCompareSchemas_SingleItemToTuple tests the homogeneous-to-tuple report
func TestCompareSchemas_SingleItemToTuple(t *testing.T) {
	base := Generate([]any{1.0, 2.0})
	tuple := Generate([]any{1.0, "a"})
	changes := compareSchemas(base, Merge(base, tuple))

	require.Len(t, changes.WidenedTypes, 1)
	assert.Equal(t, "items: single-item form -> tuple form", changes.WidenedTypes[0])
}

// TestCompareSchemas_HomogeneousItemsWidened tests item schema reports
// for single-item arrays
func TestCompareSchemas_HomogeneousItemsWidened(t *testing.T) {
	changes := extendAndCompare(t,
		map[string]any{"tags": []any{"a", "b"}},
		map[string]any{"tags": []any{1.0, 2.0}},
	)
	require.Len(t, changes.WidenedTypes, 1)
	assert.Equal(t, "tags.items: string -> [number, string]", changes.WidenedTypes[0])
}

// TestCompareSchemas_NoChanges tests that identical data reports nothing
func TestCompareSchemas_NoChanges(t *testing.T) {
	value := map[string]any{"name": "Alice", "tags": []any{"x"}}
	changes := extendAndCompare(t, value, value)
	assert.True(t, changes.Empty())
	assert.Equal(t, "no changes", changes.Summary())
	assert.Nil(t, changes.Lines())
}

// TestChangesSummary tests summary phrasing for each change kind
func TestChangesSummary(t *testing.T) {
	tests := []struct {
		name    string
		changes SchemaChanges
		want    string
	}{
		{
			name:    "single property",
			changes: SchemaChanges{AddedProperties: []string{"a"}},
			want:    "1 property added",
		},
		{
			name:    "plural properties",
			changes: SchemaChanges{AddedProperties: []string{"a", "b"}},
			want:    "2 properties added",
		},
		{
			name:    "required keys",
			changes: SchemaChanges{RemovedRequired: []string{"a", "b"}},
			want:    "2 required keys dropped",
		},
		{
			name:    "single type",
			changes: SchemaChanges{WidenedTypes: []string{"a: number -> string"}},
			want:    "1 type widened",
		},
		{
			name:    "tuples",
			changes: SchemaChanges{ExtendedTuples: []string{"x: 1 -> 2 positions"}},
			want:    "1 tuple extended",
		},
		{
			name: "combined",
			changes: SchemaChanges{
				AddedProperties: []string{"a"},
				RemovedRequired: []string{"b"},
				WidenedTypes:    []string{"c: x -> y"},
			},
			want: "1 property added, 1 required key dropped, 1 type widened",
		},
		{
			name:    "root replaced",
			changes: SchemaChanges{RootReplaced: true},
			want:    "root schema replaced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.changes.Summary())
		})
	}
}

// TestChangesLines tests the per-change report lines
func TestChangesLines(t *testing.T) {
	changes := SchemaChanges{
		AddedProperties: []string{"nickname"},
		RemovedRequired: []string{"age"},
		WidenedTypes:    []string{"id: number -> [number, string]"},
		ExtendedTuples:  []string{"coords: 2 -> 3 positions"},
	}
	assert.Equal(t, []string{
		"added property nickname",
		"required key dropped: age",
		"widened type id: number -> [number, string]",
		"extended tuple coords: 2 -> 3 positions",
	}, changes.Lines())
}

// TestChangesEmpty_NilReceiver tests nil-receiver safety
func TestChangesEmpty_NilReceiver(t *testing.T) {
	var changes *SchemaChanges
	assert.True(t, changes.Empty())
	assert.Equal(t, "no changes", changes.Summary())
	assert.Nil(t, changes.Lines())
}
