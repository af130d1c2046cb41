// Package track reports how far along the trip planning is.
package track

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
)

// Track prints the milestones, the selection with its total and any selected
// product that is missing from the plan.
type Track struct {
	Planner *planner.Planner
	JSON    bool
	Out     io.Writer
}

func (n *Track) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not track, no planner")
	}
	pp := printers.PrettyPrint{Out: n.Out}

	if n.JSON {
		return pp.JSON(map[string]any{
			"milestones": n.Planner.Progress(),
			"total":      n.Planner.Selection().Total(),
			"autoSync":   n.Planner.AutoSync(),
			"violations": n.Planner.Violations(),
		})
	}

	pp.NewLine()
	pp.Progress(n.Planner.Progress())
	pp.Selection(n.Planner.Selection())
	if v := n.Planner.Violations(); len(v) > 0 {
		pp.Unplanned(v)
	}
	return nil
}
