package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
)

// Add puts a product into the selection, or a manual or suggested entry
// straight onto the day plan, then prints the day it landed on.
type Add struct {
	Item       item.Item
	Provenance item.Provenance

	Planner *planner.Planner
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not add, no planner")
	}
	it := n.Item
	if it.ID == "" {
		it.ID = item.NewID()
	}

	switch n.Provenance {
	case item.SelectionSourced:
		n.Planner.AddSelection(ctx, it)
	case item.Suggested:
		n.Planner.AddSuggested(ctx, it, it.Day)
	default:
		n.Planner.AddManual(ctx, it, it.Day)
	}

	plan := n.Planner.Plan()
	locs := plan.Find(it.ID)
	if len(locs) == 0 {
		// Auto-sync is off, so the product only sits in the selection.
		(&printers.PrettyPrint{Out: n.Out}).Selection(n.Planner.Selection())
		return nil
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	pp.Day(plan, locs[len(locs)-1].Day)
	return nil
}
