package assign

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/selection"
)

func add(sel selection.Set, it item.Item) selection.Set {
	return sel.Add(Apply(it, sel, Options{}))
}

func TestLodgingChainsByNights(t *testing.T) {
	sel := selection.Set{}
	h1 := item.New("h1", "Hotel (2 nights)", "lodging", 200)
	assert.Equal(t, 1, Assign(h1, sel, Options{}).Day)
	sel = add(sel, h1)

	h2 := item.New("h2", "Hotel B", "lodging", 150)
	assert.Equal(t, 3, Assign(h2, sel, Options{}).Day)
	sel = add(sel, h2)

	// h2 has no nights count so the next stay starts one day later.
	h3 := item.New("h3", "Hotel C", "lodging", 150)
	assert.Equal(t, 4, Assign(h3, sel, Options{}).Day)
}

func TestLodgingWithoutPriorStay(t *testing.T) {
	sel := selection.New(item.Item{ID: "a", Category: item.Activity, Day: 2})
	got := Assign(item.New("h", "Lodge", "lodging", 0), sel, Options{})
	assert.Equal(t, 3, got.Day)
}

func TestActivityRollsOverAtCapacity(t *testing.T) {
	sel := selection.Set{}
	for i := 0; i < 4; i++ {
		sel = add(sel, item.New(fmt.Sprintf("a%d", i), "Walking tour", "activity", 10))
	}
	assert.Equal(t, 4, sel.CountOnDay(1))

	fifth := Assign(item.New("a5", "Walking tour", "activity", 10), sel, Options{})
	assert.Equal(t, 2, fifth.Day)
	assert.Equal(t, item.Flexible, fifth.TimeOfDay)
}

func TestActivityCapacityIsConfigurable(t *testing.T) {
	sel := selection.New(
		item.Item{ID: "a", Category: item.Activity, Day: 1},
		item.Item{ID: "b", Category: item.Activity, Day: 1},
	)
	it := item.New("c", "Museum", "activity", 0)
	assert.Equal(t, 1, Assign(it, sel, Options{}).Day)
	assert.Equal(t, 2, Assign(it, sel, Options{DayCapacity: 2}).Day)
}

func TestActivityMultiDayStartsNewBlock(t *testing.T) {
	sel := selection.New(item.Item{ID: "a", Category: item.Activity, Day: 2})
	got := Assign(item.New("s", "3-day safari, sunrise drives", "tour", 0), sel, Options{})
	assert.Equal(t, 3, got.Day)
	assert.Equal(t, item.Morning, got.TimeOfDay)
}

func TestActivityOnEmptySelection(t *testing.T) {
	got := Assign(item.New("a", "Sunset cruise", "experience", 0), selection.Set{}, Options{})
	assert.Equal(t, Assignment{Day: 1, TimeOfDay: item.Evening}, got)
}

func TestDiningNeverAdvances(t *testing.T) {
	sel := selection.Set{}
	for i := 0; i < 6; i++ {
		sel = sel.Add(item.Item{ID: fmt.Sprintf("d%d", i), Category: item.Dining, Day: 2})
	}
	got := Assign(item.New("x", "Dinner at Kloof Street", "dining", 0), sel, Options{})
	assert.Equal(t, Assignment{Day: 2, TimeOfDay: item.Evening}, got)
}

func TestTransport(t *testing.T) {
	sel := selection.New(item.Item{ID: "a", Day: 5})

	arrival := Assign(item.New("t1", "Airport pickup", "transfer", 0), sel, Options{})
	assert.Equal(t, Assignment{Day: 1, TimeOfDay: item.Morning}, arrival)

	ret := Assign(item.New("t2", "Return flight", "flight", 0), sel, Options{})
	assert.Equal(t, 6, ret.Day)

	assert.Equal(t, 1, Assign(item.New("t3", "Departure shuttle", "transport", 0), selection.Set{}, Options{}).Day)
}

func TestOtherUsesCurrentDay(t *testing.T) {
	sel := selection.New(item.Item{ID: "a", Day: 3})
	assert.Equal(t, 3, Assign(item.New("x", "Travel insurance", "", 0), sel, Options{}).Day)
	assert.Equal(t, 1, Assign(item.New("x", "Travel insurance", "", 0), selection.Set{}, Options{}).Day)
}

func TestAssignIsDeterministic(t *testing.T) {
	sel := selection.New(
		item.Item{ID: "h", Category: item.Lodging, Title: "Lodge 2 nights", Day: 1},
		item.Item{ID: "a", Category: item.Activity, Day: 1},
	)
	it := item.New("n", "Afternoon game drive", "activity", 0)
	first := Assign(it, sel, Options{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Assign(it, sel, Options{}))
	}
}

func TestApplyKeepsExplicitDay(t *testing.T) {
	it := item.New("x", "Breakfast", "dining", 0)
	it.Day = 4
	got := Apply(it, selection.Set{}, Options{})
	assert.Equal(t, 4, got.Day)
	assert.Equal(t, item.Flexible, got.TimeOfDay)
}
