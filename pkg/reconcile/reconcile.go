// Package reconcile keeps the selection-derived entries of a day plan in step
// with the selection set. The sync runs one way only: selection to plan.
package reconcile

import (
	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/selection"
)

// Reconcile returns a plan in which every selection item appears exactly once,
// as a selectionSourced entry on its assigned day, and no selectionSourced
// entry survives for an id that left the selection. Manual and suggested
// entries are passed through untouched. Running it again on its own output
// with the same selection returns an equal plan.
func Reconcile(plan dayplan.Plan, sel selection.Set) dayplan.Plan {
	wanted := make(map[string]item.Item, sel.Len())
	for _, it := range sel.Items() {
		wanted[it.ID] = it
	}

	out := dayplan.Plan{
		Days:     make(map[int][]item.Item, len(plan.Days)),
		Memories: make(map[int]string, len(plan.Memories)),
	}
	for day, text := range plan.Memories {
		out.Memories[day] = text
	}

	// placed records the day on which a selection id has been kept.
	placed := make(map[string]bool, len(wanted))
	for _, day := range plan.DayNumbers() {
		items := plan.Days[day]
		if items == nil {
			out.Days[day] = nil
			continue
		}
		kept := make([]item.Item, 0, len(items))
		for _, it := range items {
			if !it.Sourced() {
				kept = append(kept, it)
				continue
			}
			want, ok := wanted[it.ID]
			if !ok || want.Day != day || placed[it.ID] {
				continue
			}
			placed[it.ID] = true
			kept = append(kept, refresh(it, want))
		}
		out.Days[day] = kept
	}

	for _, it := range sel.Items() {
		if placed[it.ID] {
			continue
		}
		entry := it
		entry.Provenance = item.SelectionSourced
		if entry.TimeOfDay == "" {
			entry.TimeOfDay = item.Flexible
		}
		out.Days[it.Day] = append(out.Days[it.Day], entry)
		placed[it.ID] = true
	}
	return out
}

// refresh copies the selection's current fields onto an existing plan entry.
// The entry keeps its time of day when the selection has none.
func refresh(existing, want item.Item) item.Item {
	next := want
	next.Provenance = item.SelectionSourced
	if next.TimeOfDay == "" {
		next.TimeOfDay = existing.TimeOfDay
	}
	if next.TimeOfDay == "" {
		next.TimeOfDay = item.Flexible
	}
	return next
}

// Freeze turns every selectionSourced entry into a manual one. It is used when
// auto-sync is switched off so the entries stay in the plan without being
// tied to the selection any more.
func Freeze(plan dayplan.Plan) dayplan.Plan {
	out := plan.Clone()
	for day, items := range out.Days {
		for i := range items {
			if items[i].Sourced() {
				items[i].Provenance = item.Manual
			}
		}
		out.Days[day] = items
	}
	return out
}

// Violations lists ids whose selectionSourced entries break the sync
// invariant: missing from the plan, present more than once, on the wrong day,
// or not in the selection at all. An empty result means the plan is
// consistent with sel.
func Violations(plan dayplan.Plan, sel selection.Set) []string {
	seen := make(map[string]int)
	var bad []string
	for _, day := range plan.DayNumbers() {
		for _, it := range plan.Days[day] {
			if !it.Sourced() {
				continue
			}
			seen[it.ID]++
			want, ok := sel.Get(it.ID)
			if !ok || want.Day != day {
				bad = append(bad, it.ID)
			}
		}
	}
	for _, it := range sel.Items() {
		if seen[it.ID] != 1 {
			bad = append(bad, it.ID)
		}
	}
	return bad
}
