package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schematools/schemaerrors"
)

func TestEngine_Apply_Identity(t *testing.T) {
	input := map[string]any{"name": "John", "age": 30.0}

	values, err := New().Apply(".", input)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, input, values[0])
}

func TestEngine_Apply_FieldAccess(t *testing.T) {
	input := map[string]any{"name": "John", "age": 30.0}

	values, err := New().Apply(".name", input)
	require.NoError(t, err)
	assert.Equal(t, []any{"John"}, values)
}

func TestEngine_Apply_ArrayIteration(t *testing.T) {
	input := map[string]any{
		"items": []any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b"},
			map[string]any{"name": "c"},
		},
	}

	values, err := New().Apply(".items[].name", input)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, values)
}

func TestEngine_Apply_Select(t *testing.T) {
	input := map[string]any{
		"items": []any{
			map[string]any{"status": "active", "name": "a"},
			map[string]any{"status": "inactive", "name": "b"},
			map[string]any{"status": "active", "name": "c"},
		},
	}

	values, err := New().Apply(`.items[] | select(.status == "active") | .name`, input)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, values)
}

func TestEngine_Apply_ObjectConstruction(t *testing.T) {
	input := map[string]any{
		"products": []any{
			map[string]any{"name": "A", "price": 10.0, "internal": true},
			map[string]any{"name": "B", "price": 20.0},
		},
	}

	values, err := New().Apply(`.products[] | {name, price}`, input)
	require.NoError(t, err)
	require.Len(t, values, 2)

	first, ok := values[0].(map[string]any)
	require.True(t, ok, "expected object, got %T", values[0])
	assert.Equal(t, "A", first["name"])
	assert.Equal(t, 10.0, first["price"])
	assert.NotContains(t, first, "internal")
}

func TestEngine_Apply_SkipsNullOutputs(t *testing.T) {
	input := map[string]any{
		"items": []any{
			map[string]any{"name": "a"},
			map[string]any{"noname": "b"},
			map[string]any{"name": "c"},
		},
	}

	values, err := New().Apply(".items[].name", input)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, values)
}

func TestEngine_Apply_NoValues(t *testing.T) {
	_, err := New().Apply(".missing", map[string]any{"present": 1.0})
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrFilter)
	assert.Contains(t, err.Error(), "produced no values")
}

func TestEngine_Apply_ParseError(t *testing.T) {
	_, err := New().Apply(".name[", map[string]any{"name": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrFilter)
	assert.Contains(t, err.Error(), "parse failed")
}

func TestEngine_Apply_RuntimeError(t *testing.T) {
	_, err := New().Apply(".foo[]", map[string]any{"foo": nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrFilter)
	assert.Contains(t, err.Error(), "the path may not exist in this input")
}

func TestEngine_Apply_MaxResults(t *testing.T) {
	input := map[string]any{"items": []any{1.0, 2.0, 3.0, 4.0, 5.0}}

	engine := &Engine{MaxResults: 3}
	values, err := engine.Apply(".items[]", input)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, values)
}

func TestEngine_Apply_DefaultLimit(t *testing.T) {
	items := make([]any, DefaultMaxResults+50)
	for i := range items {
		items[i] = float64(i)
	}

	values, err := New().Apply(".[]", items)
	require.NoError(t, err)
	assert.Len(t, values, DefaultMaxResults)
}

func TestEngine_Validate(t *testing.T) {
	engine := New()

	assert.NoError(t, engine.Validate(".name"))
	assert.NoError(t, engine.Validate(".data.items[].name"))
	assert.NoError(t, engine.Validate(`.items[] | select(.status == "active")`))

	assert.Error(t, engine.Validate(".name["))
	assert.Error(t, engine.Validate("invalid("))
}
