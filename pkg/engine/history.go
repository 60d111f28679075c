package engine

import (
	"github.com/aretw0/ramp/pkg/domain"
)

// undoStep records what one address held before an operation touched it.
// A nil Prior means the address was empty.
type undoStep struct {
	Addr  domain.Address
	Prior *domain.Element
}

// historyEntry pairs an applied operation with the steps that revert it.
// Steps are recorded in application order; reverting walks them backwards.
type historyEntry struct {
	op      domain.Operation
	summary domain.Summary
	steps   []undoStep
}

// History is the ordered record of applied operations with a cursor
// separating undoable entries from redoable ones. Memory is bounded by the
// edit sequence length: entries hold inverse steps, never full snapshots.
type History struct {
	entries []historyEntry
	cursor  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Depth returns the number of undoable entries.
func (h *History) Depth() int {
	return h.cursor
}

// RedoDepth returns the number of redoable entries past the cursor.
func (h *History) RedoDepth() int {
	return len(h.entries) - h.cursor
}

// push records a freshly applied operation, discarding any redo tail.
func (h *History) push(e historyEntry) {
	h.entries = append(h.entries[:h.cursor], e)
	h.cursor = len(h.entries)
}

// stepBack returns the entry to revert and moves the cursor over it.
func (h *History) stepBack() (historyEntry, error) {
	if h.cursor == 0 {
		return historyEntry{}, domain.ErrNothingToUndo
	}
	h.cursor--
	return h.entries[h.cursor], nil
}

// stepForward returns the entry to reapply and advances the cursor.
func (h *History) stepForward() (historyEntry, error) {
	if h.cursor == len(h.entries) {
		return historyEntry{}, domain.ErrNothingToRedo
	}
	e := h.entries[h.cursor]
	h.cursor++
	return e, nil
}

// replaceCurrent swaps the entry just reapplied by stepForward. Redo
// regenerates the undo steps, so the stored entry must follow suit.
func (h *History) replaceCurrent(e historyEntry) {
	h.entries[h.cursor-1] = e
}

// reset drops all entries, e.g. after importing a document.
func (h *History) reset() {
	h.entries = nil
	h.cursor = 0
}
