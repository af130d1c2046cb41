// Package planner owns a trip's selection set, day plan and command history and
// runs every command against them one at a time. CLIs, the TUI and the MCP
// server share it so they apply the same rules.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/tripbook/pkg/assign"
	"tableflip.dev/tripbook/pkg/bulk"
	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/history"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/reconcile"
	"tableflip.dev/tripbook/pkg/reorder"
	"tableflip.dev/tripbook/pkg/repeat"
	"tableflip.dev/tripbook/pkg/selection"
	"tableflip.dev/tripbook/pkg/store"
)

// Options configures a Planner. The zero value plans in memory with the
// default day capacity and history bound.
type Options struct {
	// Store persists the trip. Nil keeps everything in memory.
	Store        store.Store
	Trip         string
	DayCapacity  int
	HistoryLimit int
	Logger       *slog.Logger
}

// Settings is the persisted per-trip preference document.
type Settings struct {
	AutoSync bool `json:"autoSync"`
}

// Planner serializes commands on a single mutex. Every command returns the day
// plan as it stands after the command.
type Planner struct {
	mu sync.Mutex

	store  store.Store
	trip   string
	log    *slog.Logger
	assign assign.Options

	sel      selection.Set
	plan     dayplan.Plan
	hist     *history.History
	autoSync bool
	degraded bool
}

// New returns an empty planner with auto-sync on. Call Load to read the trip
// from the store.
func New(opts Options) *Planner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	trip := opts.Trip
	if trip == "" {
		trip = "default"
	}
	return &Planner{
		store:    opts.Store,
		trip:     trip,
		log:      logger.With("trip", trip),
		assign:   assign.Options{DayCapacity: opts.DayCapacity},
		plan:     dayplan.New(),
		hist:     history.New(opts.HistoryLimit),
		autoSync: true,
	}
}

// Trip is the scope this planner reads and writes.
func (p *Planner) Trip() string { return p.trip }

// Plan returns a copy of the current day plan.
func (p *Planner) Plan() dayplan.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.Clone()
}

// Selection returns the current selection set.
func (p *Planner) Selection() selection.Set {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sel
}

// AutoSync reports whether selection changes flow into the plan.
func (p *Planner) AutoSync() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.autoSync
}

// History returns the undo entries, oldest first, and the redo entries.
func (p *Planner) History() (undo, redo []history.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hist.Entries(), p.hist.RedoEntries()
}

// Degraded reports whether a load or save failed and the planner is running
// on in-memory state only.
func (p *Planner) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

// Violations lists selection ids that break the plan/selection invariant. It
// is empty whenever auto-sync is on.
func (p *Planner) Violations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return reconcile.Violations(p.plan, p.sel)
}

// AddSelection adds it to the selection set, assigning a day with the
// heuristic when it has none. An item without an id gets a fresh one. Adding
// an id that is already selected bumps its quantity.
func (p *Planner) AddSelection(ctx context.Context, it item.Item) dayplan.Plan {
	return p.run(ctx, "select-add", func() {
		if it.ID == "" {
			it.ID = item.NewID()
		}
		it = item.Normalize(it)
		if !p.sel.Has(it.ID) {
			it = assign.Apply(it, p.sel, p.assign)
		}
		p.sel = p.sel.Add(it)
	})
}

// RemoveSelection drops id from the selection set.
func (p *Planner) RemoveSelection(ctx context.Context, id string) dayplan.Plan {
	return p.run(ctx, "select-remove", func() {
		p.sel = p.sel.Remove(id)
	})
}

// SetQuantity changes the quantity of a selected item, never below 1.
func (p *Planner) SetQuantity(ctx context.Context, id string, qty int) dayplan.Plan {
	return p.run(ctx, "select-quantity", func() {
		p.sel = p.sel.UpdateQuantity(id, qty)
	})
}

// SetSelectionDay moves a selected item to day, never below 1.
func (p *Planner) SetSelectionDay(ctx context.Context, id string, day int) dayplan.Plan {
	return p.run(ctx, "select-day", func() {
		p.sel = p.sel.UpdateDay(id, day)
	})
}

// ClearSelection empties the selection set.
func (p *Planner) ClearSelection(ctx context.Context) dayplan.Plan {
	return p.run(ctx, "select-clear", func() {
		p.sel = p.sel.Clear()
	})
}

// AddManual places a hand-written item on day. Day 0 lets the heuristic pick.
func (p *Planner) AddManual(ctx context.Context, it item.Item, day int) dayplan.Plan {
	return p.run(ctx, "add-manual", func() {
		p.place(it, item.Manual, day)
	})
}

// AddSuggested places an externally suggested item on day. Day 0 lets the
// heuristic pick.
func (p *Planner) AddSuggested(ctx context.Context, it item.Item, day int) dayplan.Plan {
	return p.run(ctx, "add-suggested", func() {
		p.place(it, item.Suggested, day)
	})
}

func (p *Planner) place(it item.Item, prov item.Provenance, day int) {
	if it.ID == "" {
		it.ID = item.NewID()
	}
	it.Provenance = prov
	it.Day = day
	it = assign.Apply(item.Normalize(it), p.sel, p.assign)
	p.plan = p.plan.Append(it.Day, it)
}

// RemoveItem deletes the entry at loc. A selection-sourced entry is removed
// from the selection set as well.
func (p *Planner) RemoveItem(ctx context.Context, loc dayplan.Location) dayplan.Plan {
	return p.run(ctx, "remove-item", func() {
		it, ok := p.plan.At(loc)
		if !ok {
			return
		}
		p.plan = p.plan.RemoveAt(loc)
		if it.Sourced() {
			p.sel = p.sel.Remove(it.ID)
		}
	})
}

// Reorder moves the entry at index from to index to within day.
func (p *Planner) Reorder(ctx context.Context, day, from, to int) dayplan.Plan {
	return p.run(ctx, "reorder", func() {
		p.plan, p.sel = reorder.Reorder(p.plan, p.sel, day, from, to)
	})
}

// Move sends the entry at (fromDay, index) to the end of toDay.
func (p *Planner) Move(ctx context.Context, fromDay, index, toDay int) dayplan.Plan {
	return p.run(ctx, "move", func() {
		p.plan, p.sel = reorder.Move(p.plan, p.sel, fromDay, index, toDay)
	})
}

// Drop completes a drag held in s against the current plan.
func (p *Planner) Drop(ctx context.Context, s *reorder.Session) (dayplan.Plan, bool) {
	var moved bool
	plan := p.run(ctx, "drag", func() {
		p.plan, p.sel, moved = s.Drop(p.plan, p.sel)
	})
	return plan, moved
}

// BulkMove transfers the picked ids from source to the end of dest.
func (p *Planner) BulkMove(ctx context.Context, source, dest int, ids []string) dayplan.Plan {
	return p.run(ctx, "bulk-move", func() {
		p.plan, p.sel = bulk.Transfer(p.plan, p.sel, source, dest, ids)
	})
}

// ConfirmBulk applies the picks held in b and leaves bulk mode.
func (p *Planner) ConfirmBulk(ctx context.Context, b *bulk.Selection, dest int) dayplan.Plan {
	return p.run(ctx, "bulk-move", func() {
		p.plan, p.sel = b.Confirm(p.plan, p.sel, dest)
	})
}

// Repeat copies the manual or suggested entry at loc onto the days listed in
// text and returns the days that received a copy.
func (p *Planner) Repeat(ctx context.Context, loc dayplan.Location, text string) (dayplan.Plan, []int) {
	var added []int
	plan := p.run(ctx, "repeat", func() {
		it, ok := p.plan.At(loc)
		if !ok {
			return
		}
		p.plan, added = repeat.RepeatText(p.plan, it, text)
	})
	return plan, added
}

// SetMemory stores the memory note for day; blank text clears it.
func (p *Planner) SetMemory(ctx context.Context, day int, text string) dayplan.Plan {
	return p.run(ctx, "memory", func() {
		p.plan = p.plan.SetMemory(day, text)
	})
}

// AddDay opens an empty day after the last one.
func (p *Planner) AddDay(ctx context.Context) dayplan.Plan {
	return p.run(ctx, "add-day", func() {
		p.plan = p.plan.AddDay()
	})
}

// SetAutoSync turns reconciliation on or off. Turning it on reconciles right
// away. Turning it off converts every selection-sourced entry into a manual
// one so the plan stops claiming to mirror the selection.
func (p *Planner) SetAutoSync(ctx context.Context, on bool) dayplan.Plan {
	label := "auto-sync-off"
	if on {
		label = "auto-sync-on"
	}
	return p.run(ctx, label, func() {
		p.autoSync = on
		if !on {
			p.plan = reconcile.Freeze(p.plan)
		}
	})
}

// Undo restores the plan as it was before the last change.
func (p *Planner) Undo(ctx context.Context) (dayplan.Plan, bool) {
	return p.travel(ctx, func(cur dayplan.Plan) (dayplan.Plan, bool) { return p.hist.Undo(cur) })
}

// Redo re-applies the last undone change.
func (p *Planner) Redo(ctx context.Context) (dayplan.Plan, bool) {
	return p.travel(ctx, func(cur dayplan.Plan) (dayplan.Plan, bool) { return p.hist.Redo(cur) })
}

// JumpTo restores the undo entry at index, oldest first.
func (p *Planner) JumpTo(ctx context.Context, index int) (dayplan.Plan, bool) {
	return p.travel(ctx, func(cur dayplan.Plan) (dayplan.Plan, bool) { return p.hist.JumpTo(index, cur) })
}

// Progress reports the trip milestones.
func (p *Planner) Progress() []dayplan.Milestone {
	p.mu.Lock()
	defer p.mu.Unlock()
	return dayplan.Progress(p.plan, p.sel.Len())
}

// Search returns the part of the plan whose titles, subtitles or day notes
// match query.
func (p *Planner) Search(query string) dayplan.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.Filter(query).Clone()
}

// run applies fn under the lock. When fn changed the plan or the selection,
// the prior plan is recorded under label and the trip is saved.
func (p *Planner) run(ctx context.Context, label string, fn func()) dayplan.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()

	before := p.plan.Clone()
	beforeSel := p.sel
	beforeSync := p.autoSync
	fn()
	if p.autoSync {
		p.plan = reconcile.Reconcile(p.plan, p.sel)
	}

	planChanged := !before.Equal(p.plan)
	if planChanged {
		p.hist.Record(before, label)
	}
	if planChanged || beforeSync != p.autoSync || !sameSelection(beforeSel, p.sel) {
		p.log.Debug("command applied", "command", label, "days", len(p.plan.Days), "selected", p.sel.Len())
		p.persist(ctx)
	}
	return p.plan.Clone()
}

// travel swaps in a plan from history. The selection is rebuilt from the
// restored plan's selection-sourced entries and, with auto-sync on, the plan
// is reconciled against it.
func (p *Planner) travel(ctx context.Context, step func(dayplan.Plan) (dayplan.Plan, bool)) (dayplan.Plan, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	restored, ok := step(p.plan)
	if !ok {
		return p.plan.Clone(), false
	}
	p.sel = writeBack(restored, p.sel, p.autoSync)
	if p.autoSync {
		restored = reconcile.Reconcile(restored, p.sel)
	}
	p.plan = restored
	p.persist(ctx)
	return p.plan.Clone(), true
}

// writeBack makes sel agree with the selection-sourced entries of plan. Each
// entry overwrites or re-adds its selection item with the day it sits on, and
// the selection takes the plan's order. With prune set, selected ids that
// appear nowhere in plan are dropped.
func writeBack(plan dayplan.Plan, sel selection.Set, prune bool) selection.Set {
	var order []string
	present := make(map[string]bool)
	for _, day := range plan.DayNumbers() {
		for _, it := range plan.Days[day] {
			present[it.ID] = true
			if !it.Sourced() {
				continue
			}
			it.Day = day
			if sel.Has(it.ID) {
				sel = sel.Replace(it)
			} else {
				sel = sel.Add(it)
			}
			order = append(order, it.ID)
		}
	}
	if prune {
		for _, it := range sel.Items() {
			if !present[it.ID] {
				sel = sel.Remove(it.ID)
			}
		}
	}
	return sel.ReorderWithin(order)
}

func sameSelection(a, b selection.Set) bool {
	x, y := a.Items(), b.Items()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func (p *Planner) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("planner(%s: %d selected, %d planned)", p.trip, p.sel.Len(), p.plan.Len())
}
