// Package history keeps a bounded undo/redo trail around a single document.
//
// Every recorded change works on a fresh deep copy of the present value, so
// entries in the past and future stacks are never reachable from present
// and cannot be altered by later edits.
package history

// DefaultLimit is the number of past states retained when New is given a
// non-positive limit.
const DefaultLimit = 50

// History holds past, present and future states of a document of type T.
// It is not safe for concurrent use; callers serialise access.
type History[T any] struct {
	past    []T // oldest first
	present T
	future  []T // nearest undo first
	limit   int
	clone   func(T) T
}

// New creates a History whose present is initial. clone must return a
// fully independent copy of its argument.
func New[T any](initial T, limit int, clone func(T) T) *History[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History[T]{present: clone(initial), limit: limit, clone: clone}
}

// Present returns a copy of the current state.
func (h *History[T]) Present() T {
	return h.clone(h.present)
}

// Peek calls fn with the live present value without copying it.
// fn must not retain or modify the value.
func (h *History[T]) Peek(fn func(T)) {
	fn(h.present)
}

// Walk calls fn with every retained state without copying it: past oldest
// first, then present, then future nearest first. fn must not retain or
// modify the values.
func (h *History[T]) Walk(fn func(T)) {
	for _, v := range h.past {
		fn(v)
	}
	fn(h.present)
	h.WalkFuture(fn)
}

// WalkFuture calls fn with each future state, nearest first, without
// copying it.
func (h *History[T]) WalkFuture(fn func(T)) {
	for _, v := range h.future {
		fn(v)
	}
}

// Reset replaces the present value and drops all history.
func (h *History[T]) Reset(value T) {
	h.past = nil
	h.future = nil
	h.present = h.clone(value)
}

// Apply runs mutate on a deep copy of the present value. When mutate
// reports a change, the previous present is appended to past (evicting the
// oldest entry beyond the limit), the result becomes present and the future
// branch is discarded. Apply reports whether a change was recorded.
func (h *History[T]) Apply(mutate func(T) (T, bool)) bool {
	next, changed := mutate(h.clone(h.present))
	if !changed {
		return false
	}
	// present is never handed out, so the old value can move to past as is
	h.past = append(h.past, h.present)
	if over := len(h.past) - h.limit; over > 0 {
		clear(h.past[:over])
		h.past = h.past[over:]
	}
	h.present = next
	h.future = nil
	return true
}

// Undo makes the most recent past state present. It reports false when
// there is nothing to undo.
func (h *History[T]) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := len(h.past) - 1
	prev := h.past[last]
	var zero T
	h.past[last] = zero
	h.past = h.past[:last]

	h.future = append([]T{h.present}, h.future...)
	h.present = prev
	return true
}

// Redo re-applies the nearest undone state. It reports false when there is
// nothing to redo.
func (h *History[T]) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]

	h.past = append(h.past, h.present)
	if over := len(h.past) - h.limit; over > 0 {
		h.past = h.past[over:]
	}
	h.present = next
	return true
}

func (h *History[T]) CanUndo() bool { return len(h.past) > 0 }
func (h *History[T]) CanRedo() bool { return len(h.future) > 0 }

// Len returns the depth of the past and future stacks.
func (h *History[T]) Len() (past, future int) {
	return len(h.past), len(h.future)
}

// Limit returns the maximum number of retained past states.
func (h *History[T]) Limit() int { return h.limit }
