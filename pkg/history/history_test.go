package history

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
)

func edit(p dayplan.Plan, id string) dayplan.Plan {
	return p.Append(1, item.Item{ID: id, Title: id, Provenance: item.Manual})
}

func TestUndoRedoAcrossThreeEdits(t *testing.T) {
	h := New(0)
	s0 := dayplan.New()

	h.Record(s0, "add a")
	s1 := edit(s0, "a")
	h.Record(s1, "add b")
	s2 := edit(s1, "b")
	h.Record(s2, "add c")
	s3 := edit(s2, "c")

	cur, ok := h.Undo(s3)
	require.True(t, ok)
	assert.True(t, cur.Equal(s2))
	cur, ok = h.Undo(cur)
	require.True(t, ok)
	assert.True(t, cur.Equal(s1))
	assert.Len(t, h.RedoEntries(), 2)
	assert.Equal(t, "redo-of-add c", h.RedoEntries()[0].Label)

	cur, ok = h.Redo(cur)
	require.True(t, ok)
	assert.True(t, cur.Equal(s2))
	assert.Len(t, h.RedoEntries(), 1)
	assert.Equal(t, "add b", h.Entries()[len(h.Entries())-1].Label)
}

func TestRecordClearsRedo(t *testing.T) {
	h := New(0)
	s0 := dayplan.New()
	h.Record(s0, "add a")
	s1 := edit(s0, "a")
	cur, _ := h.Undo(s1)
	require.True(t, h.CanRedo())

	h.Record(cur, "add b")
	assert.False(t, h.CanRedo())
}

func TestEmptyStacks(t *testing.T) {
	var h History
	s := edit(dayplan.New(), "a")
	got, ok := h.Undo(s)
	assert.False(t, ok)
	assert.True(t, got.Equal(s))
	got, ok = h.Redo(s)
	assert.False(t, ok)
	assert.True(t, got.Equal(s))
}

func TestBoundedFIFO(t *testing.T) {
	h := New(0)
	cur := dayplan.New()
	for i := 0; i < DefaultLimit+5; i++ {
		h.Record(cur, fmt.Sprintf("edit %d", i))
		cur = edit(cur, fmt.Sprintf("i%d", i))
	}
	entries := h.Entries()
	require.Len(t, entries, DefaultLimit)
	assert.Equal(t, "edit 5", entries[0].Label)
	assert.Equal(t, fmt.Sprintf("edit %d", DefaultLimit+4), entries[len(entries)-1].Label)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	h := New(0)
	s0 := edit(dayplan.New(), "a")
	h.Record(s0, "edit")
	s0.Days[1][0].Title = "mutated"

	got, _ := h.Undo(dayplan.New())
	assert.Equal(t, "a", got.Days[1][0].Title)
}

func TestJumpTo(t *testing.T) {
	h := New(0)
	s0 := dayplan.New()
	h.Record(s0, "add a")
	s1 := edit(s0, "a")
	h.Record(s1, "add b")
	s2 := edit(s1, "b")
	h.Record(s2, "add c")
	s3 := edit(s2, "c")

	got, ok := h.JumpTo(1, s3)
	require.True(t, ok)
	assert.True(t, got.Equal(s1))
	require.Len(t, h.Entries(), 1)
	assert.Equal(t, "add a", h.Entries()[0].Label)
	require.Len(t, h.RedoEntries(), 1)
	assert.Equal(t, LabelJumpedFrom, h.RedoEntries()[0].Label)

	back, ok := h.Redo(got)
	require.True(t, ok)
	assert.True(t, back.Equal(s3))

	_, ok = h.JumpTo(9, back)
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	h := New(3)
	h.Now = func() time.Time { return at }
	s0 := dayplan.New().SetMemory(1, "sunny")
	h.Record(s0, "add a")
	s1 := edit(s0, "a")
	h.Undo(s1)

	b, err := json.Marshal(h)
	require.NoError(t, err)

	var got History
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 3, got.Limit)
	assert.Empty(t, got.Entries())
	require.Len(t, got.RedoEntries(), 1)
	e := got.RedoEntries()[0]
	assert.Equal(t, "redo-of-add a", e.Label)
	assert.True(t, e.At.Equal(at))
	assert.True(t, e.Snapshot.Equal(s1))
}
