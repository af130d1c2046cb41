// Package selection implements the traveler's working set of chosen items.
//
// A Set is an immutable value: every operation returns a new Set and leaves the
// receiver untouched, so callers can keep the previous value around.
package selection

import (
	"encoding/json"

	"tableflip.dev/tripbook/pkg/item"
)

// Set is an ordered collection of items keyed by id.
type Set struct {
	items []item.Item
}

// New builds a set from items, dropping entries without an id and later
// duplicates of an id already seen.
func New(items ...item.Item) Set {
	out := make([]item.Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, normalize(it))
	}
	return Set{items: out}
}

func normalize(it item.Item) item.Item {
	it = item.Normalize(it)
	if it.Day < 1 {
		it.Day = 1
	}
	it.Provenance = item.SelectionSourced
	return it
}

// Items returns a copy of the items in persisted order.
func (s Set) Items() []item.Item {
	return append([]item.Item(nil), s.items...)
}

// Len is the number of distinct items.
func (s Set) Len() int { return len(s.items) }

// Get returns the item with id.
func (s Set) Get(id string) (item.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return item.Item{}, false
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// MaxDay is the highest assigned day, or 0 for an empty set.
func (s Set) MaxDay() int {
	maxDay := 0
	for _, it := range s.items {
		if it.Day > maxDay {
			maxDay = it.Day
		}
	}
	return maxDay
}

// CountOnDay counts items assigned to day.
func (s Set) CountOnDay(day int) int {
	n := 0
	for _, it := range s.items {
		if it.Day == day {
			n++
		}
	}
	return n
}

// Add appends it. An item with no id is ignored and an id already present has
// its quantity bumped by one. The caller is expected to have assigned a day;
// an unassigned item lands on day 1.
func (s Set) Add(it item.Item) Set {
	if it.ID == "" {
		return s
	}
	if s.Has(it.ID) {
		return s.update(it.ID, func(cur *item.Item) { cur.Quantity++ })
	}
	items := append(s.Items(), normalize(it))
	return Set{items: items}
}

// Remove drops id; unknown ids are a no-op.
func (s Set) Remove(id string) Set {
	out := make([]item.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return Set{items: out}
}

// UpdateQuantity sets the quantity for id, never below 1.
func (s Set) UpdateQuantity(id string, qty int) Set {
	if qty < 1 {
		qty = 1
	}
	return s.update(id, func(cur *item.Item) { cur.Quantity = qty })
}

// UpdateDay reassigns id to day, never below 1.
func (s Set) UpdateDay(id string, day int) Set {
	if day < 1 {
		day = 1
	}
	return s.update(id, func(cur *item.Item) { cur.Day = day })
}

// Replace overwrites the stored fields for the item with the same id, keeping
// its position. Unknown ids are a no-op.
func (s Set) Replace(it item.Item) Set {
	return s.update(it.ID, func(cur *item.Item) { *cur = normalize(it) })
}

// ReorderWithin moves the listed ids to the front in the given order. Items
// that are not listed keep their relative order after them; unknown ids are
// skipped.
func (s Set) ReorderWithin(ids []string) Set {
	byID := make(map[string]item.Item, len(s.items))
	for _, it := range s.items {
		byID[it.ID] = it
	}
	used := make(map[string]struct{}, len(ids))
	out := make([]item.Item, 0, len(s.items))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := used[id]; dup {
			continue
		}
		used[id] = struct{}{}
		out = append(out, it)
	}
	for _, it := range s.items {
		if _, ok := used[it.ID]; !ok {
			out = append(out, it)
		}
	}
	return Set{items: out}
}

// Clear returns an empty set.
func (s Set) Clear() Set { return Set{} }

// PaidItems are the items with a positive price, the ones that feed a quote.
func (s Set) PaidItems() []item.Item {
	var out []item.Item
	for _, it := range s.items {
		if it.Price > 0 {
			out = append(out, it)
		}
	}
	return out
}

// Total sums price times quantity.
func (s Set) Total() float64 {
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s Set) update(id string, fn func(*item.Item)) Set {
	items := s.Items()
	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
			return Set{items: items}
		}
	}
	return s
}

// MarshalJSON encodes the set as an array of items.
func (s Set) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes an array of items, applying the same filtering as New.
func (s *Set) UnmarshalJSON(data []byte) error {
	var items []item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = New(items...)
	return nil
}
