// Package assign picks a day and time of day for items that arrive without one.
package assign

import (
	"tableflip.dev/tripbook/pkg/classify"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/selection"
)

// DefaultDayCapacity is how many items a day holds before new activities roll
// over to the next day.
const DefaultDayCapacity = 4

// Options tunes the heuristic.
type Options struct {
	DayCapacity int
}

func (o Options) capacity() int {
	if o.DayCapacity < 1 {
		return DefaultDayCapacity
	}
	return o.DayCapacity
}

// Assignment is the heuristic's answer. TimeOfDay is empty when the rule for
// the category has no opinion.
type Assignment struct {
	Day       int
	TimeOfDay item.TimeOfDay
}

// Assign chooses a day for it given the current selection. It never fails and
// returns the same answer for the same inputs.
func Assign(it item.Item, sel selection.Set, opts Options) Assignment {
	maxDay := sel.MaxDay()
	current := atLeastOne(maxDay)
	next := maxDay + 1
	text := it.Title + " " + it.Description

	switch item.ParseCategory(string(it.Category)) {
	case item.Lodging:
		if last, ok := latestLodging(sel); ok {
			return Assignment{Day: last.Day + classify.Nights(last.Title)}
		}
		return Assignment{Day: next}

	case item.Activity:
		slot := classify.ActivitySlot(text)
		if classify.MultiDay(text) > 1 {
			return Assignment{Day: next, TimeOfDay: slot}
		}
		if maxDay > 0 && sel.CountOnDay(maxDay) >= opts.capacity() {
			return Assignment{Day: next, TimeOfDay: slot}
		}
		return Assignment{Day: current, TimeOfDay: slot}

	case item.Dining:
		return Assignment{Day: current, TimeOfDay: classify.DiningSlot(text)}

	case item.Transport:
		if classify.Departure(it.Title) {
			return Assignment{Day: next}
		}
		return Assignment{Day: 1, TimeOfDay: item.Morning}

	default:
		return Assignment{Day: current}
	}
}

// Apply fills in day and time of day on it when they are unset.
func Apply(it item.Item, sel selection.Set, opts Options) item.Item {
	if it.Day >= 1 {
		if it.TimeOfDay == "" {
			it.TimeOfDay = item.Flexible
		}
		return it
	}
	a := Assign(it, sel, opts)
	it.Day = a.Day
	if it.TimeOfDay == "" {
		it.TimeOfDay = a.TimeOfDay
	}
	if it.TimeOfDay == "" {
		it.TimeOfDay = item.Flexible
	}
	return it
}

// latestLodging is the lodging with the highest day; ties keep the first one
// in selection order.
func latestLodging(sel selection.Set) (item.Item, bool) {
	var (
		best  item.Item
		found bool
	)
	for _, it := range sel.Items() {
		if it.Category != item.Lodging {
			continue
		}
		if !found || it.Day > best.Day {
			best = it
			found = true
		}
	}
	return best, found
}

func atLeastOne(day int) int {
	if day < 1 {
		return 1
	}
	return day
}
