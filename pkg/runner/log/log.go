// Package log walks the edit history: undo, redo, jump to an older state and
// list what can be undone.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
)

type Op int

const (
	List Op = iota
	Undo
	Redo
	Jump
)

type Log struct {
	Planner *planner.Planner
	Op      Op
	// Index is the history entry to restore for Jump, as printed by List.
	Index int

	Out io.Writer
}

func (n *Log) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not walk history, no planner")
	}
	pp := printers.PrettyPrint{Out: n.Out}

	switch n.Op {
	case Undo:
		if _, ok := n.Planner.Undo(ctx); !ok {
			return errors.New("nothing to undo")
		}
	case Redo:
		if _, ok := n.Planner.Redo(ctx); !ok {
			return errors.New("nothing to redo")
		}
	case Jump:
		if _, ok := n.Planner.JumpTo(ctx, n.Index); !ok {
			undo, _ := n.Planner.History()
			return fmt.Errorf("no history entry %d (have %d)", n.Index, len(undo))
		}
	}

	if n.Op != List {
		pp.DayPlan(n.Planner.Plan())
	}
	pp.History(n.Planner.History())
	return nil
}
