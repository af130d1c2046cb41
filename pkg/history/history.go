// Package history is the bounded undo/redo stack over day plan snapshots.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tripbook/pkg/dayplan"
)

// DefaultLimit bounds each stack.
const DefaultLimit = 50

const (
	redoPrefix      = "redo-of-"
	LabelJumpedFrom = "jump-from-history"
)

// Entry is one snapshot of the plan (days and memories) with the label of the
// change it precedes.
type Entry struct {
	Label    string       `json:"label"`
	At       time.Time    `json:"at"`
	Snapshot dayplan.Plan `json:"snapshot"`
}

// History keeps the undo and redo stacks. The zero value is usable and uses
// DefaultLimit.
type History struct {
	Limit int `json:"limit,omitempty"`
	// Now is the clock used to stamp entries; nil means time.Now.
	Now func() time.Time `json:"-"`

	undo []Entry
	redo []Entry
}

// New returns a history bounded at limit entries per stack.
func New(limit int) *History {
	return &History{Limit: limit}
}

func (h *History) limit() int {
	if h.Limit < 1 {
		return DefaultLimit
	}
	return h.Limit
}

func (h *History) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Record snapshots current under label before a mutation is applied. Any redo
// entries are discarded.
func (h *History) Record(current dayplan.Plan, label string) {
	h.undo = h.push(h.undo, Entry{Label: label, At: h.now(), Snapshot: current.Clone()})
	h.redo = nil
}

// Undo pops the latest snapshot and returns it as the new current plan. The
// plan being replaced goes onto the redo stack. ok is false when there is
// nothing to undo.
func (h *History) Undo(current dayplan.Plan) (dayplan.Plan, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = h.push(h.redo, Entry{Label: redoPrefix + top.Label, At: h.now(), Snapshot: current.Clone()})
	return top.Snapshot.Clone(), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current dayplan.Plan) (dayplan.Plan, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, Entry{Label: strings.TrimPrefix(top.Label, redoPrefix), At: h.now(), Snapshot: current.Clone()})
	return top.Snapshot.Clone(), true
}

// JumpTo restores the undo entry at index (0 is the oldest). Entries from
// index on are dropped from the undo stack and the plan being replaced is
// pushed onto the redo stack. An out of range index is a no-op.
func (h *History) JumpTo(index int, current dayplan.Plan) (dayplan.Plan, bool) {
	if index < 0 || index >= len(h.undo) {
		return current, false
	}
	target := h.undo[index]
	h.undo = append([]Entry(nil), h.undo[:index]...)
	h.redo = h.push(h.redo, Entry{Label: LabelJumpedFrom, At: h.now(), Snapshot: current.Clone()})
	return target.Snapshot.Clone(), true
}

// Entries returns the undo stack, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.undo...)
}

// RedoEntries returns the redo stack, oldest first.
func (h *History) RedoEntries() []Entry {
	return append([]Entry(nil), h.redo...)
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Reset empties both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

type document struct {
	Limit int     `json:"limit,omitempty"`
	Undo  []Entry `json:"undo"`
	Redo  []Entry `json:"redo"`
}

// MarshalJSON encodes both stacks.
func (h *History) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{Limit: h.Limit, Undo: h.Entries(), Redo: h.RedoEntries()})
}

// UnmarshalJSON restores both stacks, trimming them to the limit.
func (h *History) UnmarshalJSON(b []byte) error {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("history: decode: %w", err)
	}
	if h.Limit < 1 {
		h.Limit = doc.Limit
	}
	h.undo, h.redo = nil, nil
	for _, e := range doc.Undo {
		h.undo = h.push(h.undo, e)
	}
	for _, e := range doc.Redo {
		h.redo = h.push(h.redo, e)
	}
	return nil
}

// push appends e and evicts the oldest entries beyond the limit.
func (h *History) push(stack []Entry, e Entry) []Entry {
	stack = append(stack, e)
	if over := len(stack) - h.limit(); over > 0 {
		stack = append([]Entry(nil), stack[over:]...)
	}
	return stack
}
