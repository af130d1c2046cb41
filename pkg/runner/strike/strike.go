// Package strike takes entries off the day plan.
package strike

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
)

// Strike removes the entry with ID. Day narrows the match when the same id
// was repeated onto several days. Removing a selected product drops it from
// the selection too.
type Strike struct {
	ID  string
	Day int

	Planner *planner.Planner
	Out     io.Writer
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not strike, no planner")
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}

	for _, loc := range n.Planner.Plan().Find(n.ID) {
		if n.Day > 0 && loc.Day != n.Day {
			continue
		}
		plan := n.Planner.RemoveItem(ctx, loc)
		pp.NewLine()
		pp.Day(plan, loc.Day)
		return nil
	}
	if n.Day > 0 {
		return fmt.Errorf("%s is not planned on day %d", n.ID, n.Day)
	}
	return fmt.Errorf("%s is not in the plan", n.ID)
}
