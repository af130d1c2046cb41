// Package bulk moves a multi-selected batch of items from one day to another.
package bulk

import (
	"sort"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/selection"
)

// Transfer moves the items of source whose ids are in picked to the end of
// dest. Both the retained and the moved items keep their relative order.
// Moved selection-sourced items have their selection day set to dest. An
// empty pick, dest == source or dest < 1 is a no-op.
func Transfer(plan dayplan.Plan, sel selection.Set, source, dest int, picked []string) (dayplan.Plan, selection.Set) {
	if len(picked) == 0 || dest == source || dest < 1 {
		return plan, sel
	}
	want := make(map[string]struct{}, len(picked))
	for _, id := range picked {
		want[id] = struct{}{}
	}

	var retained, moved []item.Item
	for _, it := range plan.Days[source] {
		if _, ok := want[it.ID]; ok {
			it.Day = dest
			moved = append(moved, it)
			continue
		}
		retained = append(retained, it)
	}
	if len(moved) == 0 {
		return plan, sel
	}
	if retained == nil {
		retained = []item.Item{}
	}

	target := append(plan.Items(dest), moved...)
	plan = plan.WithDay(source, retained).WithDay(dest, target)
	for _, it := range moved {
		if it.Sourced() {
			sel = sel.UpdateDay(it.ID, dest)
		}
	}
	return plan, sel
}

// Selection is the multi-select mode state: which day is being picked from and
// which ids are ticked. The zero value is "not in bulk mode".
type Selection struct {
	active bool
	day    int
	ids    map[string]struct{}
}

// Enter starts bulk mode on day, discarding any earlier picks.
func (b *Selection) Enter(day int) {
	b.active = true
	b.day = day
	b.ids = make(map[string]struct{})
}

// Exit leaves bulk mode and clears the picks.
func (b *Selection) Exit() {
	b.active = false
	b.day = 0
	b.ids = nil
}

// Active reports whether bulk mode is on.
func (b *Selection) Active() bool { return b.active }

// Day is the source day of the current picks.
func (b *Selection) Day() int { return b.day }

// Toggle ticks or unticks id. Picking on another day restarts the selection
// there, since a batch always comes from a single day.
func (b *Selection) Toggle(day int, id string) {
	if !b.active || b.day != day {
		b.Enter(day)
	}
	if _, ok := b.ids[id]; ok {
		delete(b.ids, id)
		return
	}
	b.ids[id] = struct{}{}
}

// Picked reports whether id is ticked.
func (b *Selection) Picked(id string) bool {
	_, ok := b.ids[id]
	return ok
}

// IDs returns the ticked ids, sorted.
func (b *Selection) IDs() []string {
	out := make([]string, 0, len(b.ids))
	for id := range b.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Confirm transfers the picks to dest and exits bulk mode. Confirming with
// nothing picked or onto the source day leaves the plan alone but still exits.
func (b *Selection) Confirm(plan dayplan.Plan, sel selection.Set, dest int) (dayplan.Plan, selection.Set) {
	defer b.Exit()
	if !b.active {
		return plan, sel
	}
	return Transfer(plan, sel, b.day, dest, b.IDs())
}
