// Package item defines the planning unit shared by the selection set and the
// day plan.
package item

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Item is a single purchasable or plannable travel unit.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	Day         int        `json:"day"`
	TimeOfDay   TimeOfDay  `json:"timeOfDay,omitempty"`
	Provenance  Provenance `json:"provenance"`
}

// New builds a normalized item. The category string is resolved to the closed
// Category enum here so later consumers never look at free-form text.
func New(id, title, category string, price float64) Item {
	return Normalize(Item{
		ID:       id,
		Title:    title,
		Category: ParseCategory(category),
		Price:    price,
	})
}

// Normalize applies the data model defaults: quantity at least 1, price not
// negative, a known category and time of day. Day is left untouched so callers
// can tell an unassigned item (0) from an assigned one.
func Normalize(it Item) Item {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if it.Price < 0 {
		it.Price = 0
	}
	if it.Day < 0 {
		it.Day = 0
	}
	it.Category = ParseCategory(string(it.Category))
	if it.TimeOfDay != "" {
		it.TimeOfDay = ParseTimeOfDay(string(it.TimeOfDay))
	}
	if it.Provenance == "" {
		it.Provenance = Manual
	}
	return it
}

// Sourced reports whether the item mirrors a selection set entry.
func (it Item) Sourced() bool {
	return it.Provenance == SelectionSourced
}

// Subtotal is price times quantity.
func (it Item) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

func (it Item) String() string {
	return fmt.Sprintf("%s [%s] %s", it.ID, it.Category, it.Title)
}

// NewID returns a fresh sortable identifier for items created by the CLI or
// agent surfaces, which have no booking system id to reuse.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
