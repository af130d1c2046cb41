// Package dayplan holds the per-day ordered schedule and the per-day memory
// notes. Plans are treated as values: every method that changes a plan returns
// a new one and never writes through to the receiver's maps or slices.
package dayplan

import (
	"reflect"
	"sort"
	"strings"

	"tableflip.dev/tripbook/pkg/item"
)

// Plan maps day number (1-based) to the ordered items of that day, plus free
// text memories keyed the same way.
type Plan struct {
	Days     map[int][]item.Item `json:"days"`
	Memories map[int]string      `json:"memories"`
}

// Location addresses one slot of the plan.
type Location struct {
	Day   int
	Index int
}

// New returns an empty plan.
func New() Plan {
	return Plan{
		Days:     map[int][]item.Item{},
		Memories: map[int]string{},
	}
}

// Clone deep copies the plan. Empty and nil day slices are preserved as they
// are so a restored snapshot compares equal to the original.
func (p Plan) Clone() Plan {
	out := Plan{
		Days:     make(map[int][]item.Item, len(p.Days)),
		Memories: make(map[int]string, len(p.Memories)),
	}
	for day, items := range p.Days {
		if items == nil {
			out.Days[day] = nil
			continue
		}
		out.Days[day] = append(make([]item.Item, 0, len(items)), items...)
	}
	for day, text := range p.Memories {
		out.Memories[day] = text
	}
	return out
}

// Equal reports structural equality.
func (p Plan) Equal(other Plan) bool {
	return reflect.DeepEqual(p.norm(), other.norm())
}

// norm makes nil maps and nil day slices comparable with empty ones.
func (p Plan) norm() Plan {
	out := p.Clone()
	for day, items := range out.Days {
		if items == nil {
			out.Days[day] = []item.Item{}
		}
	}
	return out
}

// DayNumbers lists the days that have an entry in the plan, ascending.
func (p Plan) DayNumbers() []int {
	days := make([]int, 0, len(p.Days))
	for day := range p.Days {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Items returns a copy of the items planned for day.
func (p Plan) Items(day int) []item.Item {
	return append([]item.Item(nil), p.Days[day]...)
}

// Len counts items across all days.
func (p Plan) Len() int {
	n := 0
	for _, items := range p.Days {
		n += len(items)
	}
	return n
}

// MaxDay is the highest day key, or 0 when the plan has no days.
func (p Plan) MaxDay() int {
	maxDay := 0
	for day := range p.Days {
		if day > maxDay {
			maxDay = day
		}
	}
	return maxDay
}

// At returns the item at loc.
func (p Plan) At(loc Location) (item.Item, bool) {
	items := p.Days[loc.Day]
	if loc.Index < 0 || loc.Index >= len(items) {
		return item.Item{}, false
	}
	return items[loc.Index], true
}

// Find lists every slot holding id, by ascending day then index.
func (p Plan) Find(id string) []Location {
	var out []Location
	for _, day := range p.DayNumbers() {
		for i, it := range p.Days[day] {
			if it.ID == id {
				out = append(out, Location{Day: day, Index: i})
			}
		}
	}
	return out
}

// Contains reports whether day already holds an item with id.
func (p Plan) Contains(day int, id string) bool {
	for _, it := range p.Days[day] {
		if it.ID == id {
			return true
		}
	}
	return false
}

// WithDay returns a copy of the plan with day's items replaced.
func (p Plan) WithDay(day int, items []item.Item) Plan {
	out := p.shallow()
	out.Days[day] = items
	return out
}

// Append adds it at the end of day. Days below 1 are ignored.
func (p Plan) Append(day int, it item.Item) Plan {
	if day < 1 {
		return p
	}
	it.Day = day
	items := append(p.Items(day), it)
	return p.WithDay(day, items)
}

// RemoveAt drops the item at loc; out of range locations are a no-op.
func (p Plan) RemoveAt(loc Location) Plan {
	items := p.Days[loc.Day]
	if loc.Index < 0 || loc.Index >= len(items) {
		return p
	}
	next := make([]item.Item, 0, len(items)-1)
	next = append(next, items[:loc.Index]...)
	next = append(next, items[loc.Index+1:]...)
	return p.WithDay(loc.Day, next)
}

// AddDay opens an empty day after the last one, unless the last day is
// already empty.
func (p Plan) AddDay() Plan {
	last := p.MaxDay()
	if last > 0 && len(p.Days[last]) == 0 {
		return p
	}
	return p.WithDay(last+1, []item.Item{})
}

// SetMemory stores the note for day. Blank text removes it.
func (p Plan) SetMemory(day int, text string) Plan {
	if day < 1 {
		return p
	}
	out := p.shallow()
	if strings.TrimSpace(text) == "" {
		delete(out.Memories, day)
		return out
	}
	out.Memories[day] = text
	return out
}

// Filter keeps the items whose title or subtitle contains query, ignoring
// case. A day whose memory note matches is kept whole. Days with no match are
// left out. A blank query returns the plan.
func (p Plan) Filter(query string) Plan {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return p
	}
	out := Plan{Days: map[int][]item.Item{}, Memories: map[int]string{}}
	for day, items := range p.Days {
		if strings.Contains(strings.ToLower(p.Memories[day]), q) {
			out.Days[day] = items
			out.Memories[day] = p.Memories[day]
			continue
		}
		var hits []item.Item
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Title), q) || strings.Contains(strings.ToLower(it.Subtitle), q) {
				hits = append(hits, it)
			}
		}
		if len(hits) > 0 {
			out.Days[day] = hits
			if memo, ok := p.Memories[day]; ok {
				out.Memories[day] = memo
			}
		}
	}
	return out
}

// shallow copies the maps but shares the day slices, which callers must then
// replace rather than mutate.
func (p Plan) shallow() Plan {
	out := Plan{
		Days:     make(map[int][]item.Item, len(p.Days)+1),
		Memories: make(map[int]string, len(p.Memories)+1),
	}
	for day, items := range p.Days {
		out.Days[day] = items
	}
	for day, text := range p.Memories {
		out.Memories[day] = text
	}
	return out
}
