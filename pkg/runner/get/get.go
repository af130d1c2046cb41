// Package get prints the day plan, the selection or search results.
package get

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
)

type Get struct {
	Planner *planner.Planner

	ShowID    bool
	JSON      bool
	Day       int
	Query     string
	Selection bool

	Out io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not get, no planner")
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}

	if n.Selection {
		sel := n.Planner.Selection()
		if n.JSON {
			return pp.JSON(sel.Items())
		}
		pp.Selection(sel)
		return nil
	}

	plan := n.Planner.Plan()
	if n.Query != "" {
		plan = n.Planner.Search(n.Query)
	}
	if n.Day > 0 {
		if _, ok := plan.Days[n.Day]; !ok {
			return fmt.Errorf("day %d is not planned", n.Day)
		}
	}

	if n.JSON {
		if n.Day > 0 {
			return pp.JSON(map[string]any{
				"day":    n.Day,
				"items":  plan.Items(n.Day),
				"memory": plan.Memories[n.Day],
			})
		}
		return pp.JSON(plan)
	}

	pp.NewLine()
	if n.Day > 0 {
		pp.Day(plan, n.Day)
		return nil
	}
	pp.DayPlan(plan)
	return nil
}
