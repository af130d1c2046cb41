package reorder

import (
	"fmt"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/selection"
)

// State is the phase of a drag gesture.
type State int

const (
	// Idle means nothing is held.
	Idle State = iota
	// PickedUp means an item is held but no drop target is chosen yet.
	PickedUp
	// Dragging means an item is held over a valid drop target.
	Dragging
)

func (s State) String() string {
	switch s {
	case PickedUp:
		return "picked-up"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Session tracks one in-progress drag for one user. Pointer and keyboard input
// drive the same machine:
//
//	Idle --PickUp--> PickedUp --Hover/Step--> Dragging --Drop--> Idle
//	any  --Cancel--> Idle
//
// Only Drop changes the plan.
type Session struct {
	state  State
	source dayplan.Location
	target dayplan.Location
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Holding reports whether an item is picked up.
func (s *Session) Holding() bool { return s.state != Idle }

// Source is the slot of the held item.
func (s *Session) Source() dayplan.Location { return s.source }

// Target is the prospective drop slot; it equals Source until a target is
// chosen.
func (s *Session) Target() dayplan.Location { return s.target }

func (s *Session) String() string {
	switch s.state {
	case PickedUp:
		return fmt.Sprintf("picked-up(day %d #%d)", s.source.Day, s.source.Index)
	case Dragging:
		return fmt.Sprintf("dragging(day %d #%d -> day %d #%d)", s.source.Day, s.source.Index, s.target.Day, s.target.Index)
	default:
		return "idle"
	}
}

// PickUp holds the item at loc. An empty slot leaves the session idle.
func (s *Session) PickUp(plan dayplan.Plan, loc dayplan.Location) bool {
	if _, ok := plan.At(loc); !ok {
		s.Cancel()
		return false
	}
	s.state = PickedUp
	s.source = loc
	s.target = loc
	return true
}

// Hover points the held item at loc. On the source day loc must be an
// existing slot; on another day any day of at least 1 is a valid target and
// the drop appends to its end. An invalid target drops back to PickedUp.
func (s *Session) Hover(plan dayplan.Plan, loc dayplan.Location) {
	if s.state == Idle {
		return
	}
	if !validTarget(plan, s.source, loc) {
		s.state = PickedUp
		s.target = s.source
		return
	}
	s.state = Dragging
	s.target = loc
}

// Step moves the prospective target one slot up (delta < 0) or down
// (delta > 0) within the source day. Stepping past either end is a no-op.
func (s *Session) Step(plan dayplan.Plan, delta int) {
	if s.state == Idle || delta == 0 {
		return
	}
	base := s.target
	if base.Day != s.source.Day {
		base = s.source
	}
	idx := base.Index + sign(delta)
	if !inRange(idx, len(plan.Days[s.source.Day])) {
		return
	}
	s.state = Dragging
	s.target = dayplan.Location{Day: s.source.Day, Index: idx}
}

// Drop applies the held move and returns to Idle. Without a valid target, or
// when the target is the source slot, nothing changes.
func (s *Session) Drop(plan dayplan.Plan, sel selection.Set) (dayplan.Plan, selection.Set, bool) {
	defer s.Cancel()
	if s.state != Dragging || s.target == s.source {
		return plan, sel, false
	}
	if !validTarget(plan, s.source, s.target) {
		return plan, sel, false
	}
	if s.target.Day == s.source.Day {
		p, se := Reorder(plan, sel, s.source.Day, s.source.Index, s.target.Index)
		return p, se, true
	}
	p, se := Move(plan, sel, s.source.Day, s.source.Index, s.target.Day)
	return p, se, true
}

// Toggle is the keyboard pick-up key: it picks up loc when idle and drops the
// held item otherwise.
func (s *Session) Toggle(plan dayplan.Plan, sel selection.Set, loc dayplan.Location) (dayplan.Plan, selection.Set, bool) {
	if s.state == Idle {
		s.PickUp(plan, loc)
		return plan, sel, false
	}
	return s.Drop(plan, sel)
}

// Cancel discards the gesture without touching the plan.
func (s *Session) Cancel() {
	s.state = Idle
	s.source = dayplan.Location{}
	s.target = dayplan.Location{}
}

func validTarget(plan dayplan.Plan, source, target dayplan.Location) bool {
	if _, ok := plan.At(source); !ok {
		return false
	}
	if target.Day < 1 {
		return false
	}
	if target.Day == source.Day {
		return inRange(target.Index, len(plan.Days[source.Day]))
	}
	return target.Index >= 0
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
