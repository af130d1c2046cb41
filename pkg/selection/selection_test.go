package selection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tripbook/pkg/item"
)

func ids(s Set) []string {
	var out []string
	for _, it := range s.Items() {
		out = append(out, it.ID)
	}
	return out
}

func TestAddIgnoresMissingID(t *testing.T) {
	s := Set{}.Add(item.Item{Title: "no id"})
	assert.Zero(t, s.Len())
}

func TestAddBumpsQuantityForExistingID(t *testing.T) {
	s := Set{}.Add(item.Item{ID: "a", Title: "Kayak", Day: 2})
	s = s.Add(item.Item{ID: "a", Title: "Kayak again", Day: 5})

	require.Equal(t, 1, s.Len())
	got, _ := s.Get("a")
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 2, got.Day)
	assert.Equal(t, "Kayak", got.Title)
}

func TestAddNormalizes(t *testing.T) {
	s := Set{}.Add(item.Item{ID: "a", Category: "hotel", Price: -10})
	got, _ := s.Get("a")
	assert.Equal(t, 1, got.Day)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, item.Lodging, got.Category)
	assert.Equal(t, item.SelectionSourced, got.Provenance)
	assert.Zero(t, got.Price)
}

func TestSetIsImmutable(t *testing.T) {
	before := New(item.Item{ID: "a", Day: 1})
	after := before.UpdateDay("a", 3)

	b, _ := before.Get("a")
	a, _ := after.Get("a")
	assert.Equal(t, 1, b.Day)
	assert.Equal(t, 3, a.Day)
}

func TestUpdateClamps(t *testing.T) {
	s := New(item.Item{ID: "a", Day: 2, Quantity: 3})
	s = s.UpdateDay("a", 0).UpdateQuantity("a", -4)
	got, _ := s.Get("a")
	assert.Equal(t, 1, got.Day)
	assert.Equal(t, 1, got.Quantity)

	assert.Equal(t, s, s.UpdateDay("missing", 4))
}

func TestReorderWithin(t *testing.T) {
	s := New(
		item.Item{ID: "a"}, item.Item{ID: "b"}, item.Item{ID: "c"}, item.Item{ID: "d"},
	)
	s = s.ReorderWithin([]string{"c", "zzz", "a", "c"})
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(s))
}

func TestRemoveAndClear(t *testing.T) {
	s := New(item.Item{ID: "a"}, item.Item{ID: "b"})
	assert.Equal(t, []string{"b"}, ids(s.Remove("a")))
	assert.Equal(t, 2, s.Remove("nope").Len())
	assert.Zero(t, s.Clear().Len())
}

func TestMaxDayAndCount(t *testing.T) {
	s := New(item.Item{ID: "a", Day: 1}, item.Item{ID: "b", Day: 3}, item.Item{ID: "c", Day: 3})
	assert.Equal(t, 3, s.MaxDay())
	assert.Equal(t, 2, s.CountOnDay(3))
	assert.Zero(t, Set{}.MaxDay())
}

func TestPaidItemsAndTotal(t *testing.T) {
	s := New(
		item.Item{ID: "a", Price: 100, Quantity: 2},
		item.Item{ID: "b", Price: 0},
		item.Item{ID: "c", Price: 15.5},
	)
	assert.Len(t, s.PaidItems(), 2)
	assert.InDelta(t, 215.5, s.Total(), 0.001)
}

func TestJSONRoundTripDropsDuplicates(t *testing.T) {
	raw := `[{"id":"a","title":"A","day":2},{"id":"a","title":"dup"},{"title":"no id"}]`
	var s Set
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, []string{"a"}, ids(s))

	data, err := json.Marshal(Set{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
