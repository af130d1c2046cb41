// Package mcp provides the Model Context Protocol server integration for
// tripbook.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
	"tableflip.dev/tripbook/pkg/selection"
)

// Service projects planner commands into transport-friendly results shared by
// the MCP tools and resources.
type Service struct {
	Planner *planner.Planner
}

var (
	// ErrNoPlanner is returned when the service was built without a planner.
	ErrNoPlanner = errors.New("planner is not configured")
	// ErrItemNotFound is returned when no plan entry has the requested id.
	ErrItemNotFound = errors.New("item not found")
)

// AddSelectionOptions captures the parameters for selecting a product.
type AddSelectionOptions struct {
	ID        string
	Title     string
	Subtitle  string
	Category  string
	TimeOfDay string
	Price     float64
	Quantity  int
	Day       int
}

// ItemDTO is a transport-friendly projection of a plan entry.
type ItemDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Category   string  `json:"category"`
	TimeOfDay  string  `json:"timeOfDay,omitempty"`
	Provenance string  `json:"provenance"`
	Glyph      string  `json:"glyph"`
	Price      float64 `json:"price,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	Day        int     `json:"day"`
	Index      int     `json:"index"`
}

// DayDTO is one day of the plan.
type DayDTO struct {
	Day    int       `json:"day"`
	Memory string    `json:"memory,omitempty"`
	Items  []ItemDTO `json:"items"`
}

// PlanDTO is the whole day plan plus the sync state.
type PlanDTO struct {
	Trip       string   `json:"trip"`
	AutoSync   bool     `json:"autoSync"`
	Degraded   bool     `json:"degraded,omitempty"`
	Days       []DayDTO `json:"days"`
	Violations []string `json:"violations,omitempty"`
}

// SelectionDTO lists the selected products with the running total.
type SelectionDTO struct {
	Items []ItemDTO `json:"items"`
	Total float64   `json:"total"`
	Count int       `json:"count"`
}

// NewService builds a service around p.
func NewService(p *planner.Planner) *Service {
	return &Service{Planner: p}
}

// ShowPlan returns the current plan. A non-empty query keeps only matching
// entries.
func (s *Service) ShowPlan(ctx context.Context, query string) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	plan := s.Planner.Plan()
	if strings.TrimSpace(query) != "" {
		plan = s.Planner.Search(query)
	}
	return s.planDTO(plan), nil
}

// Selection returns the selected products.
func (s *Service) Selection(ctx context.Context) (*SelectionDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	return selectionDTO(s.Planner.Selection()), nil
}

// AddSelection selects a product, or bumps its quantity when it is already
// selected.
func (s *Service) AddSelection(ctx context.Context, opts AddSelectionOptions) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	if strings.TrimSpace(opts.Title) == "" && opts.ID == "" {
		return nil, errors.New("title is required")
	}
	if opts.Day < 0 {
		return nil, fmt.Errorf("invalid day %d", opts.Day)
	}
	it := item.Item{
		ID:        opts.ID,
		Title:     opts.Title,
		Subtitle:  opts.Subtitle,
		Category:  item.ParseCategory(opts.Category),
		TimeOfDay: item.TimeOfDay(opts.TimeOfDay),
		Price:     opts.Price,
		Quantity:  opts.Quantity,
		Day:       opts.Day,
	}
	return s.planDTO(s.Planner.AddSelection(ctx, it)), nil
}

// RemoveSelection drops a selected product by id.
func (s *Service) RemoveSelection(ctx context.Context, id string) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	if _, ok := s.Planner.Selection().Get(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return s.planDTO(s.Planner.RemoveSelection(ctx, id)), nil
}

// MoveItem moves the first entry with id to the end of day.
func (s *Service) MoveItem(ctx context.Context, id string, day int) (*PlanDTO, error) {
	loc, err := s.locate(id)
	if err != nil {
		return nil, err
	}
	if day < 1 {
		return nil, fmt.Errorf("invalid day %d", day)
	}
	return s.planDTO(s.Planner.Move(ctx, loc.Day, loc.Index, day)), nil
}

// Reorder moves an entry within its day to position to.
func (s *Service) Reorder(ctx context.Context, day, from, to int) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	n := len(s.Planner.Plan().Items(day))
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("positions must be between 0 and %d on day %d", n-1, day)
	}
	return s.planDTO(s.Planner.Reorder(ctx, day, from, to)), nil
}

// BulkMove transfers ids from source to the end of dest.
func (s *Service) BulkMove(ctx context.Context, source, dest int, ids []string) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	if source < 1 || dest < 1 {
		return nil, errors.New("days start at 1")
	}
	if len(ids) == 0 {
		return nil, errors.New("no ids to move")
	}
	return s.planDTO(s.Planner.BulkMove(ctx, source, dest, ids)), nil
}

// Repeat copies the entry with id onto the days listed in days, such as "2, 4".
func (s *Service) Repeat(ctx context.Context, id, days string) (*PlanDTO, []int, error) {
	loc, err := s.locate(id)
	if err != nil {
		return nil, nil, err
	}
	it, _ := s.Planner.Plan().At(loc)
	if it.Sourced() {
		return nil, nil, fmt.Errorf("%s follows the selection and cannot be repeated", id)
	}
	plan, added := s.Planner.Repeat(ctx, loc, days)
	return s.planDTO(plan), added, nil
}

// SetMemory replaces the notes of a day.
func (s *Service) SetMemory(ctx context.Context, day int, text string) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	if day < 1 {
		return nil, fmt.Errorf("invalid day %d", day)
	}
	return s.planDTO(s.Planner.SetMemory(ctx, day, text)), nil
}

// AddDay appends an empty day.
func (s *Service) AddDay(ctx context.Context) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	return s.planDTO(s.Planner.AddDay(ctx)), nil
}

// Undo steps back one edit. The bool is false when there was nothing to undo.
func (s *Service) Undo(ctx context.Context) (*PlanDTO, bool, error) {
	if s.Planner == nil {
		return nil, false, ErrNoPlanner
	}
	plan, ok := s.Planner.Undo(ctx)
	return s.planDTO(plan), ok, nil
}

// Redo reapplies the last undone edit.
func (s *Service) Redo(ctx context.Context) (*PlanDTO, bool, error) {
	if s.Planner == nil {
		return nil, false, ErrNoPlanner
	}
	plan, ok := s.Planner.Redo(ctx)
	return s.planDTO(plan), ok, nil
}

// SetAutoSync turns selection auto-sync on or off.
func (s *Service) SetAutoSync(ctx context.Context, on bool) (*PlanDTO, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	return s.planDTO(s.Planner.SetAutoSync(ctx, on)), nil
}

// Progress returns the planning milestones.
func (s *Service) Progress(ctx context.Context) ([]dayplan.Milestone, error) {
	if s.Planner == nil {
		return nil, ErrNoPlanner
	}
	return s.Planner.Progress(), nil
}

func (s *Service) locate(id string) (dayplan.Location, error) {
	if s.Planner == nil {
		return dayplan.Location{}, ErrNoPlanner
	}
	locs := s.Planner.Plan().Find(id)
	if len(locs) == 0 {
		return dayplan.Location{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return locs[0], nil
}

func (s *Service) planDTO(plan dayplan.Plan) *PlanDTO {
	dto := &PlanDTO{
		Trip:       s.Planner.Trip(),
		AutoSync:   s.Planner.AutoSync(),
		Degraded:   s.Planner.Degraded(),
		Days:       []DayDTO{},
		Violations: s.Planner.Violations(),
	}
	for _, day := range plan.DayNumbers() {
		d := DayDTO{Day: day, Memory: plan.Memories[day], Items: []ItemDTO{}}
		for i, it := range plan.Items(day) {
			d.Items = append(d.Items, toItemDTO(it, day, i))
		}
		dto.Days = append(dto.Days, d)
	}
	return dto
}

func selectionDTO(sel selection.Set) *SelectionDTO {
	dto := &SelectionDTO{Items: []ItemDTO{}}
	for _, it := range sel.Items() {
		dto.Items = append(dto.Items, toItemDTO(it, it.Day, -1))
	}
	dto.Total = sel.Total()
	dto.Count = len(dto.Items)
	return dto
}

func toItemDTO(it item.Item, day, index int) ItemDTO {
	return ItemDTO{
		ID:         it.ID,
		Title:      it.Title,
		Subtitle:   it.Subtitle,
		Category:   string(it.Category),
		TimeOfDay:  string(it.TimeOfDay),
		Provenance: string(it.Provenance),
		Glyph:      printers.Glyph(it.Provenance),
		Price:      it.Price,
		Quantity:   it.Quantity,
		Day:        day,
		Index:      index,
	}
}
