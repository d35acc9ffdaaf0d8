package dotpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet_CreatesIntermediates(t *testing.T) {
	doc := map[string]any{}
	Set(doc, "a.b.c", 5)

	v, ok := Get(doc, "a.b.c")
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestSet_SlashSeparator(t *testing.T) {
	doc := map[string]any{}
	Set(doc, "theme/primaryColor", "#fff")

	v, ok := Get(doc, "theme.primaryColor")
	require.True(t, ok)
	assert.Equal(t, "#fff", v)
}

func TestSet_OverwritesScalarIntermediate(t *testing.T) {
	doc := map[string]any{"a": "scalar"}
	Set(doc, "a.b", true)

	assert.Equal(t, map[string]any{"a": map[string]any{"b": true}}, doc)
}

func TestSet_EmptyPathIsNoop(t *testing.T) {
	doc := map[string]any{"x": 1}
	out := Set(doc, "", 2)

	assert.Equal(t, map[string]any{"x": 1}, out)
	out = Set(doc, "..", 2)
	assert.Equal(t, map[string]any{"x": 1}, out)
}

func TestSet_ReturnsSameDocument(t *testing.T) {
	doc := map[string]any{}
	out := Set(doc, "k", "v")
	out["other"] = 1
	assert.Equal(t, 1, doc["other"])
}

func TestSet_ListIndex(t *testing.T) {
	doc := map[string]any{
		"sections": []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b"},
		},
	}
	Set(doc, "sections.1.id", "z")
	v, ok := Get(doc, "sections.1.id")
	require.True(t, ok)
	assert.Equal(t, "z", v)

	// out-of-range index leaves the list alone
	Set(doc, "sections.7.id", "nope")
	assert.Len(t, doc["sections"], 2)
}

func TestGet(t *testing.T) {
	doc := map[string]any{
		"a":    map[string]any{"b": nil},
		"list": []any{"x", "y"},
	}
	tests := []struct {
		name string
		path string
		want any
		ok   bool
	}{
		{"empty path returns document", "", doc, true},
		{"missing key", "nope", nil, false},
		{"nil intermediate", "a.b.c", nil, false},
		{"nil leaf", "a.b", nil, true},
		{"list index", "list.1", "y", true},
		{"list out of range", "list.2", nil, false},
		{"list non-numeric", "list.x", nil, false},
		{"scalar intermediate", "list.0.z", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(doc, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Split("a.b/c"))
	assert.Empty(t, Split(""))
}
