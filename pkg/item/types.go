package item

import (
	"fmt"
	"strings"
)

// Category is the closed set of item kinds the assignment heuristic knows.
type Category string

const (
	Lodging   Category = "lodging"
	Activity  Category = "activity"
	Dining    Category = "dining"
	Transport Category = "transport"
	Other     Category = "other"
)

// AllCategories returns the supported categories.
func AllCategories() []Category {
	return []Category{Lodging, Activity, Dining, Transport, Other}
}

var categoryAliases = map[string]Category{
	"lodging":       Lodging,
	"lodge":         Lodging,
	"hotel":         Lodging,
	"stay":          Lodging,
	"accommodation": Lodging,
	"activity":      Activity,
	"tour":          Activity,
	"experience":    Activity,
	"excursion":     Activity,
	"dining":        Dining,
	"meal":          Dining,
	"food":          Dining,
	"restaurant":    Dining,
	"transport":     Transport,
	"transfer":      Transport,
	"flight":        Transport,
	"car":           Transport,
	"train":         Transport,
	"other":         Other,
}

// ParseCategory maps booking-side category text onto a Category. Unknown text
// becomes Other.
func ParseCategory(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	// Plural forms ("tours", "hotels").
	if c, ok := categoryAliases[strings.TrimSuffix(key, "s")]; ok {
		return c
	}
	return Other
}

// TimeOfDay is the coarse slot an item occupies within its day.
type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
	Flexible  TimeOfDay = "Flexible"
)

// ParseTimeOfDay is case-insensitive; unknown values are Flexible.
func ParseTimeOfDay(raw string) TimeOfDay {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "morning":
		return Morning
	case "afternoon":
		return Afternoon
	case "evening":
		return Evening
	default:
		return Flexible
	}
}

// Provenance records how an item entered the day plan.
type Provenance string

const (
	Manual           Provenance = "manual"
	SelectionSourced Provenance = "selectionSourced"
	Suggested        Provenance = "suggested"
)

// ParseProvenance rejects unknown values.
func ParseProvenance(raw string) (Provenance, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "manual":
		return Manual, nil
	case "selectionsourced", "selection", "sourced":
		return SelectionSourced, nil
	case "suggested", "suggestion", "ai":
		return Suggested, nil
	}
	return Manual, fmt.Errorf("item: unknown provenance %q", raw)
}
