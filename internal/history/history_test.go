package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	N    int
	Tags []string
}

func cloneDoc(d doc) doc {
	d.Tags = append([]string(nil), d.Tags...)
	return d
}

func set(n int) func(doc) (doc, bool) {
	return func(d doc) (doc, bool) {
		d.N = n
		return d, true
	}
}

func TestApply_ClearsFuture(t *testing.T) {
	h := New(doc{}, 0, cloneDoc)
	h.Apply(set(1))
	h.Apply(set(2))
	require.True(t, h.Undo())
	require.True(t, h.CanRedo())

	h.Apply(set(3))
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
	assert.Equal(t, 3, h.Present().N)
}

func TestApply_Unchanged(t *testing.T) {
	h := New(doc{N: 1}, 0, cloneDoc)
	recorded := h.Apply(func(d doc) (doc, bool) { return d, false })

	assert.False(t, recorded)
	assert.False(t, h.CanUndo())
}

func TestUndoRedo_EmptyStacks(t *testing.T) {
	h := New(doc{N: 7}, 0, cloneDoc)
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
	assert.Equal(t, 7, h.Present().N)
}

func TestUndo_RestoresEveryStep(t *testing.T) {
	h := New(doc{}, DefaultLimit, cloneDoc)
	for i := 1; i <= DefaultLimit; i++ {
		h.Apply(set(i))
	}
	for i := DefaultLimit - 1; i >= 0; i-- {
		require.True(t, h.Undo())
		assert.Equal(t, i, h.Present().N)
	}
	assert.False(t, h.CanUndo())

	past, future := h.Len()
	assert.Equal(t, 0, past)
	assert.Equal(t, DefaultLimit, future)

	// redo walks the same chain forward
	for i := 1; i <= DefaultLimit; i++ {
		require.True(t, h.Redo())
		assert.Equal(t, i, h.Present().N)
	}
}

func TestApply_EvictsOldest(t *testing.T) {
	h := New(doc{}, 50, cloneDoc)
	for i := 1; i <= 60; i++ {
		h.Apply(set(i))
	}
	past, _ := h.Len()
	require.Equal(t, 50, past)

	for h.Undo() {
	}
	// states 0..9 were evicted; the oldest reachable state is 10
	assert.Equal(t, 10, h.Present().N)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	h := New(doc{Tags: []string{"a"}}, 0, cloneDoc)
	h.Apply(func(d doc) (doc, bool) {
		d.Tags[0] = "b"
		return d, true
	})

	p := h.Present()
	p.Tags[0] = "mutated outside"

	require.True(t, h.Undo())
	assert.Equal(t, []string{"a"}, h.Present().Tags)
	require.True(t, h.Redo())
	assert.Equal(t, []string{"b"}, h.Present().Tags)
}

func TestReset(t *testing.T) {
	h := New(doc{}, 0, cloneDoc)
	h.Apply(set(1))
	h.Apply(set(2))
	h.Undo()

	h.Reset(doc{N: 9})
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 9, h.Present().N)
}

func TestWalk_Order(t *testing.T) {
	h := New(doc{N: 0}, 10, cloneDoc)
	for i := 1; i <= 3; i++ {
		require.True(t, h.Apply(set(i)))
	}
	require.True(t, h.Undo())

	var all, future []int
	h.Walk(func(d doc) { all = append(all, d.N) })
	h.WalkFuture(func(d doc) { future = append(future, d.N) })
	assert.Equal(t, []int{0, 1, 2, 3}, all)
	assert.Equal(t, []int{3}, future)
}
