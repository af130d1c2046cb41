package planner

import (
	"context"
	"errors"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/history"
	"tableflip.dev/tripbook/pkg/reconcile"
	"tableflip.dev/tripbook/pkg/selection"
	"tableflip.dev/tripbook/pkg/store"
)

// Load replaces the in-memory state with the trip's saved documents. Missing
// documents leave the defaults in place. On error the planner keeps its
// current state, is marked degraded and the error is returned for reporting.
func (p *Planner) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store == nil {
		return nil
	}

	var (
		sel      selection.Set
		plan     = dayplan.New()
		hist     = history.New(p.hist.Limit)
		settings = Settings{AutoSync: true}
	)
	docs := []struct {
		name string
		v    any
	}{
		{store.DocSelection, &sel},
		{store.DocDayPlan, &plan},
		{store.DocHistory, hist},
		{store.DocSettings, &settings},
	}
	var errs []error
	for _, doc := range docs {
		if _, err := store.LoadDocument(ctx, p.store, store.Key(p.trip, doc.name), doc.v); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		p.degraded = true
		p.log.Warn("load failed, keeping in-memory state", "err", err)
		return err
	}
	if plan.Days == nil || plan.Memories == nil {
		plan = plan.Clone()
	}

	p.sel = sel
	p.plan = plan
	p.hist = hist
	p.autoSync = settings.AutoSync
	if p.autoSync {
		p.plan = reconcile.Reconcile(p.plan, p.sel)
	}
	p.degraded = false
	p.log.Debug("loaded", "days", len(p.plan.Days), "selected", p.sel.Len(), "history", len(p.hist.Entries()))
	return nil
}

// Save writes every document of the trip. A successful save ends degraded
// mode.
func (p *Planner) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.saveLocked(ctx); err != nil {
		return err
	}
	p.degraded = false
	return nil
}

// persist saves after a command unless an earlier failure put the planner in
// memory-only mode.
func (p *Planner) persist(ctx context.Context) {
	if p.degraded {
		return
	}
	_ = p.saveLocked(ctx)
}

func (p *Planner) saveLocked(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	docs := []struct {
		name string
		v    any
	}{
		{store.DocSelection, p.sel},
		{store.DocDayPlan, p.plan},
		{store.DocHistory, p.hist},
		{store.DocSettings, Settings{AutoSync: p.autoSync}},
	}
	var errs []error
	for _, doc := range docs {
		if err := store.SaveDocument(ctx, p.store, store.Key(p.trip, doc.name), doc.v); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		p.degraded = true
		p.log.Warn("save failed, continuing in memory", "err", err)
		return err
	}
	return nil
}

// Watch subscribes to store change events.
func (p *Planner) Watch(ctx context.Context) (<-chan store.Event, error) {
	if p.store == nil {
		return nil, errors.New("planner: no store configured")
	}
	return p.store.Watch(ctx)
}

// Owns reports whether a store key belongs to this planner's trip.
func (p *Planner) Owns(key string) bool {
	trip, _ := store.SplitKey(key)
	return key == "" || trip == p.trip
}
