package ui

import (
	"context"

	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/planner"
)

// StaticDemo is a small Paris weekend: selected products the assignment
// heuristic spreads over the days, plus a suggestion and a manual note.
func StaticDemo() []item.Item {
	return []item.Item{
		item.New("demo-cdg", "Airport transfer CDG to hotel", "transfer", 65),
		item.New("demo-hotel", "Hotel Lutetia (3 nights)", "hotel", 420),
		item.New("demo-louvre", "Louvre guided tour, morning", "tour", 89),
		item.New("demo-cruise", "Seine dinner cruise", "dining", 120),
		item.New("demo-versailles", "Versailles full-day excursion", "excursion", 150),
		item.New("demo-bistro", "Lunch at a left bank bistro", "restaurant", 45),
		item.New("demo-return", "Return flight home", "flight", 0),
	}
}

// SeedDemo loads the demo products into p and adds one suggested and one
// manual entry.
func SeedDemo(ctx context.Context, p *planner.Planner) {
	for _, it := range StaticDemo() {
		p.AddSelection(ctx, it)
	}
	p.AddSuggested(ctx, item.Item{ID: "demo-montmartre", Title: "Sunset walk in Montmartre", TimeOfDay: item.Evening}, 2)
	p.AddManual(ctx, item.Item{ID: "demo-pack", Title: "Pack for the flight"}, 0)
	p.SetMemory(ctx, 1, "Check-in opens at 3pm")
}
