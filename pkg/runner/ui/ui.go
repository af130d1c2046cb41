// Package ui launches the interactive day plan organizer.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/tui/arrange"
)

type UI struct {
	Planner *planner.Planner
	// Demo seeds the planner with a sample trip before starting.
	Demo bool
}

func (d *UI) Do(ctx context.Context) error {
	if d.Planner == nil {
		return errors.New("can not start ui, no planner")
	}
	if d.Demo {
		SeedDemo(ctx, d.Planner)
	}
	return arrange.Run(ctx, d.Planner)
}
