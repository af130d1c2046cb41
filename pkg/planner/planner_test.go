package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tripbook/pkg/bulk"
	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/reorder"
	"tableflip.dev/tripbook/pkg/store"
)

func ids(items []item.Item) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSelectionFlowsIntoPlan(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})

	p.AddSelection(ctx, item.Item{ID: "h1", Category: "lodging", Title: "Hotel (2 nights)"})
	plan := p.AddSelection(ctx, item.Item{ID: "h2", Category: "hotel", Title: "Hotel B"})

	assert.Equal(t, []string{"h1"}, ids(plan.Days[1]))
	assert.Equal(t, []string{"h2"}, ids(plan.Days[3]))
	assert.Equal(t, item.SelectionSourced, plan.Days[3][0].Provenance)
	assert.Empty(t, p.Violations())

	plan = p.AddSelection(ctx, item.Item{ID: "h1"})
	h1, ok := p.Selection().Get("h1")
	require.True(t, ok)
	assert.Equal(t, 2, h1.Quantity)
	assert.Equal(t, 2, plan.Days[1][0].Quantity)
}

func TestBulkMoveWritesBackDay(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddSelection(ctx, item.Item{ID: "f1", Title: "Flight", Category: "flight", Day: 1})

	plan := p.BulkMove(ctx, 1, 3, []string{"f1"})

	assert.Empty(t, plan.Days[1])
	assert.Equal(t, []string{"f1"}, ids(plan.Days[3]))
	f1, _ := p.Selection().Get("f1")
	assert.Equal(t, 3, f1.Day)
	assert.Empty(t, p.Violations())
}

func TestUndoRedoThroughPlanner(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	s1 := p.AddManual(ctx, item.Item{ID: "a", Title: "a"}, 1)
	s2 := p.AddManual(ctx, item.Item{ID: "b", Title: "b"}, 1)
	p.AddManual(ctx, item.Item{ID: "c", Title: "c"}, 1)

	p.Undo(ctx)
	got, ok := p.Undo(ctx)
	require.True(t, ok)
	assert.True(t, got.Equal(s1))
	_, redo := p.History()
	assert.Len(t, redo, 2)

	got, ok = p.Redo(ctx)
	require.True(t, ok)
	assert.True(t, got.Equal(s2))

	p.AddDay(ctx)
	_, redo = p.History()
	assert.Empty(t, redo, "a new edit clears redo")
}

func TestUndoMoveRestoresSelectionDay(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddSelection(ctx, item.Item{ID: "f1", Title: "Museum", Category: "activity", Day: 1})
	p.Move(ctx, 1, 0, 3)
	f1, _ := p.Selection().Get("f1")
	require.Equal(t, 3, f1.Day)

	plan, ok := p.Undo(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"f1"}, ids(plan.Days[1]))
	f1, _ = p.Selection().Get("f1")
	assert.Equal(t, 1, f1.Day)
	assert.Empty(t, p.Violations())
}

func TestUndoRedoSelectionChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		p := New(Options{})
		before := p.AddManual(ctx, item.Item{ID: "m1", Title: "Walk"}, 1)
		after := p.AddSelection(ctx, item.Item{ID: "h1", Title: "Hotel", Category: "hotel", Price: 90})

		plan, ok := p.Undo(ctx)
		require.True(t, ok)
		assert.True(t, plan.Equal(before), "plan after undo: %v", plan)
		assert.False(t, p.Selection().Has("h1"))
		assert.Empty(t, p.Violations())

		plan, ok = p.Redo(ctx)
		require.True(t, ok)
		assert.True(t, plan.Equal(after))
		h1, found := p.Selection().Get("h1")
		require.True(t, found)
		assert.InDelta(t, 90.0, h1.Price, 0.001)
		assert.Empty(t, p.Violations())
	})

	t.Run("remove", func(t *testing.T) {
		p := New(Options{})
		before := p.AddSelection(ctx, item.Item{ID: "a", Title: "Tour", Category: "tour", Quantity: 3, Day: 2})
		p.RemoveSelection(ctx, "a")
		require.False(t, p.Selection().Has("a"))

		plan, ok := p.Undo(ctx)
		require.True(t, ok)
		assert.True(t, plan.Equal(before))
		a, found := p.Selection().Get("a")
		require.True(t, found)
		assert.Equal(t, 2, a.Day)
		assert.Equal(t, 3, a.Quantity)
		assert.Empty(t, p.Violations())

		plan, ok = p.Redo(ctx)
		require.True(t, ok)
		assert.Empty(t, plan.Items(2))
		assert.False(t, p.Selection().Has("a"))
	})

	t.Run("clear and quantity", func(t *testing.T) {
		p := New(Options{})
		p.AddSelection(ctx, item.Item{ID: "a", Title: "A", Day: 1})
		p.AddSelection(ctx, item.Item{ID: "b", Title: "B", Day: 2})
		p.SetQuantity(ctx, "b", 4)
		p.ClearSelection(ctx)
		require.Zero(t, p.Selection().Len())

		p.Undo(ctx)
		assert.Equal(t, 2, p.Selection().Len())
		b, _ := p.Selection().Get("b")
		assert.Equal(t, 4, b.Quantity)

		p.Undo(ctx)
		b, _ = p.Selection().Get("b")
		assert.Equal(t, 1, b.Quantity)
		assert.Empty(t, p.Violations())
	})
}

func TestRandomEditsKeepPlanInSync(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 42))
	p := New(Options{DayCapacity: 2})
	categories := []item.Category{"hotel", "tour", "dining", "flight", "other"}

	randomLoc := func() (dayplan.Location, bool) {
		plan := p.Plan()
		days := plan.DayNumbers()
		if len(days) == 0 {
			return dayplan.Location{}, false
		}
		day := days[rng.IntN(len(days))]
		n := len(plan.Days[day])
		if n == 0 {
			return dayplan.Location{}, false
		}
		return dayplan.Location{Day: day, Index: rng.IntN(n)}, true
	}

	for step := 0; step < 2000; step++ {
		var op string
		switch rng.IntN(10) {
		case 0:
			op = "select-add"
			id := fmt.Sprintf("s%d", rng.IntN(8))
			p.AddSelection(ctx, item.Item{ID: id, Title: id, Category: categories[rng.IntN(len(categories))], Day: rng.IntN(4)})
		case 1:
			op = "select-remove"
			p.RemoveSelection(ctx, fmt.Sprintf("s%d", rng.IntN(8)))
		case 2:
			op = "add-manual"
			p.AddManual(ctx, item.Item{ID: fmt.Sprintf("m%d", step), Title: "manual"}, rng.IntN(4))
		case 3:
			op = "remove-item"
			if loc, ok := randomLoc(); ok {
				p.RemoveItem(ctx, loc)
			}
		case 4:
			op = "reorder"
			if loc, ok := randomLoc(); ok {
				p.Reorder(ctx, loc.Day, loc.Index, rng.IntN(len(p.Plan().Days[loc.Day])))
			}
		case 5:
			op = "move"
			if loc, ok := randomLoc(); ok {
				p.Move(ctx, loc.Day, loc.Index, 1+rng.IntN(4))
			}
		case 6:
			op = "bulk-move"
			if loc, ok := randomLoc(); ok {
				var picked []string
				for _, it := range p.Plan().Days[loc.Day] {
					if rng.IntN(2) == 0 {
						picked = append(picked, it.ID)
					}
				}
				p.BulkMove(ctx, loc.Day, 1+rng.IntN(4), picked)
			}
		case 7, 8:
			op = "undo"
			p.Undo(ctx)
		default:
			op = "redo"
			p.Redo(ctx)
		}
		require.Empty(t, p.Violations(), "step %d (%s)", step, op)
	}
}

func TestJumpTo(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddManual(ctx, item.Item{ID: "a"}, 1)
	p.AddManual(ctx, item.Item{ID: "b"}, 1)
	p.AddManual(ctx, item.Item{ID: "c"}, 1)

	plan, ok := p.JumpTo(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, ids(plan.Days[1]))
	undo, redo := p.History()
	assert.Len(t, undo, 1)
	require.Len(t, redo, 1)
	assert.Equal(t, "jump-from-history", redo[0].Label)

	_, ok = p.JumpTo(ctx, 5)
	assert.False(t, ok)
}

func TestRemoveSourcedItemCascades(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddSelection(ctx, item.Item{ID: "t1", Title: "Tour", Category: "tour", Day: 2})

	plan := p.RemoveItem(ctx, dayplan.Location{Day: 2, Index: 0})

	assert.Empty(t, plan.Days[2])
	assert.False(t, p.Selection().Has("t1"))
}

func TestAutoSyncOffFreezes(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddSelection(ctx, item.Item{ID: "a", Title: "A", Day: 1})

	plan := p.SetAutoSync(ctx, false)
	require.Len(t, plan.Days[1], 1)
	assert.Equal(t, item.Manual, plan.Days[1][0].Provenance)
	assert.False(t, p.AutoSync())

	plan = p.AddSelection(ctx, item.Item{ID: "b", Title: "B", Day: 1})
	assert.Equal(t, []string{"a"}, ids(plan.Days[1]))
	assert.ElementsMatch(t, []string{"a", "b"}, p.Violations(), "frozen entries no longer count as synced")

	plan = p.SetAutoSync(ctx, true)
	assert.Contains(t, ids(plan.Days[1]), "b")
	assert.Empty(t, p.Violations())
}

func TestRepeatAndMemory(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddManual(ctx, item.Item{ID: "x", Title: "Swim"}, 2)

	plan, added := p.Repeat(ctx, dayplan.Location{Day: 2, Index: 0}, "2, 4, abc, -1")
	assert.Equal(t, []int{4}, added)
	assert.Equal(t, []string{"x"}, ids(plan.Days[4]))

	plan = p.SetMemory(ctx, 4, "Great pool")
	assert.Equal(t, "Great pool", plan.Memories[4])
	assert.Len(t, p.Search("swim").Days, 2)
}

func TestDragAndBulkSessions(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.AddManual(ctx, item.Item{ID: "a"}, 1)
	p.AddManual(ctx, item.Item{ID: "b"}, 1)
	p.AddManual(ctx, item.Item{ID: "c"}, 2)

	var s reorder.Session
	require.True(t, s.PickUp(p.Plan(), dayplan.Location{Day: 1, Index: 1}))
	s.Hover(p.Plan(), dayplan.Location{Day: 1, Index: 0})
	plan, moved := p.Drop(ctx, &s)
	require.True(t, moved)
	assert.Equal(t, []string{"b", "a"}, ids(plan.Days[1]))

	var b bulk.Selection
	b.Toggle(1, "a")
	plan = p.ConfirmBulk(ctx, &b, 2)
	assert.Equal(t, []string{"c", "a"}, ids(plan.Days[2]))
	assert.False(t, b.Active())
}

func TestNoOpCommandsLeaveHistoryAlone(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	p.Reorder(ctx, 1, 0, 1)
	p.RemoveItem(ctx, dayplan.Location{Day: 9, Index: 0})
	p.SetMemory(ctx, 0, "x")
	undo, _ := p.History()
	assert.Empty(t, undo)
}

func TestPersistsAcrossPlanners(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	p := New(Options{Store: s, Trip: "rome"})
	p.AddSelection(ctx, item.Item{ID: "h1", Title: "Hotel", Category: "lodging"})
	p.AddManual(ctx, item.Item{ID: "m1", Title: "Walk"}, 1)
	p.SetMemory(ctx, 1, "arrived")

	q := New(Options{Store: s, Trip: "rome"})
	require.NoError(t, q.Load(ctx))
	assert.True(t, p.Plan().Equal(q.Plan()))
	assert.Equal(t, p.Selection().Items(), q.Selection().Items())
	undo, _ := q.History()
	assert.Len(t, undo, 3)

	other := New(Options{Store: s, Trip: "paris"})
	require.NoError(t, other.Load(ctx))
	assert.Zero(t, other.Plan().Len())
	assert.True(t, q.Owns("rome/dayplan"))
	assert.False(t, q.Owns("paris/dayplan"))
}

type brokenStore struct{ *store.Memory }

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenStore) Put(context.Context, string, []byte) error   { return errBroken }

func TestStoreFailuresDegradeToMemory(t *testing.T) {
	ctx := context.Background()
	p := New(Options{Store: brokenStore{store.NewMemory()}})

	require.ErrorIs(t, p.Load(ctx), errBroken)
	assert.True(t, p.Degraded())

	plan := p.AddSelection(ctx, item.Item{ID: "a", Title: "A", Day: 1})
	assert.Equal(t, []string{"a"}, ids(plan.Days[1]))
	assert.ErrorIs(t, p.Save(ctx), errBroken)
}

func TestCommandsAreSerialized(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.AddSelection(ctx, item.Item{ID: fmt.Sprintf("s%d", i), Title: "Tour", Category: "activity"})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 40, p.Plan().Len())
	assert.Empty(t, p.Violations())
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	p := New(Options{})
	assert.False(t, p.Progress()[0].Done)
	p.AddSelection(ctx, item.Item{ID: "a", Title: "A", Day: 1})
	ms := p.Progress()
	require.Len(t, ms, 3)
	assert.True(t, ms[0].Done)
	assert.True(t, ms[1].Done)
	assert.False(t, ms[2].Done)
}
