// Package history provides linear undo/redo over annotation sets. A
// snapshot of the whole set is recorded before each mutating edit;
// undo swaps the live set for the previous snapshot and parks the
// current one on the redo stack.
package history

import "github.com/example/yolomark/internal/annotation"

// Limit caps the undo depth. The oldest snapshot is dropped once the
// stack is full.
const Limit = 100

type History struct {
	undo []*annotation.Set
	redo []*annotation.Set
}

func New() *History {
	return &History{}
}

// Record pushes a snapshot of cur onto the undo stack and clears the
// redo stack. Call it with the pre-edit state, before mutating.
func (h *History) Record(cur *annotation.Set) {
	h.undo = append(h.undo, cur.Clone())
	if len(h.undo) > Limit {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

// Undo returns the set to restore in place of cur, or (nil, false)
// when there is nothing to undo. cur is snapshotted for redo.
func (h *History) Undo(cur *annotation.Set) (*annotation.Set, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur.Clone())
	return prev, true
}

// Redo reverses the most recent Undo, or returns (nil, false).
func (h *History) Redo(cur *annotation.Set) (*annotation.Set, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur.Clone())
	return next, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Reset drops both stacks. Called when switching images so edits on
// one image can never leak onto another.
func (h *History) Reset() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}
