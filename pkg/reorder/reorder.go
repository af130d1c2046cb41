// Package reorder moves items within and across days of a plan, writing the
// result back to the selection set when selection-sourced items move.
package reorder

import (
	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/selection"
)

// Reorder moves the item at index from to index to within day. When the day
// holds selection-sourced items their new relative order becomes the
// selection's persisted order. Invalid indexes and from == to are no-ops.
func Reorder(plan dayplan.Plan, sel selection.Set, day, from, to int) (dayplan.Plan, selection.Set) {
	items := plan.Days[day]
	if from == to || !inRange(from, len(items)) || !inRange(to, len(items)) {
		return plan, sel
	}

	moved := items[from]
	next := make([]item.Item, 0, len(items))
	next = append(next, items[:from]...)
	next = append(next, items[from+1:]...)
	next = append(next[:to], append([]item.Item{moved}, next[to:]...)...)

	var order []string
	for _, it := range next {
		if it.Sourced() {
			order = append(order, it.ID)
		}
	}
	if len(order) > 0 {
		sel = sel.ReorderWithin(order)
	}
	return plan.WithDay(day, next), sel
}

// Move takes the item at (fromDay, index) and appends it to the end of toDay.
// A selection-sourced item has its selection day updated to match. Moving to
// the same day, to a day below 1, or from an empty slot is a no-op.
func Move(plan dayplan.Plan, sel selection.Set, fromDay, index, toDay int) (dayplan.Plan, selection.Set) {
	if toDay < 1 || toDay == fromDay {
		return plan, sel
	}
	loc := dayplan.Location{Day: fromDay, Index: index}
	it, ok := plan.At(loc)
	if !ok {
		return plan, sel
	}
	plan = plan.RemoveAt(loc).Append(toDay, it)
	if it.Sourced() {
		sel = sel.UpdateDay(it.ID, toDay)
	}
	return plan, sel
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
