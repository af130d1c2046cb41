package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/store"
)

// session is an opened trip: config, store and a loaded planner.
type session struct {
	cfg     *store.FileConfig
	store   store.Store
	planner *planner.Planner
}

func (s *session) Close() error {
	return s.store.Close()
}

// openTrip resolves config, opens the store and loads the selected trip. A
// trip that cannot be loaded still opens in memory-only mode with a warning.
func openTrip(cmd *cobra.Command) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(firstNonEmpty(tripOpts.LogLevel, cfg.LogLevel))
	slog.SetDefault(logger)

	s, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	p := planner.New(planner.Options{
		Store:        s,
		Trip:         firstNonEmpty(tripOpts.Trip, cfg.Trip),
		DayCapacity:  cfg.DayCapacity,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
	})
	if err := p.Load(ctx(cmd)); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: trip %q could not be loaded, changes will not be saved: %v\n", p.Trip(), err)
	}
	return &session{cfg: cfg, store: s, planner: p}, nil
}

// withPlanner runs fn against the selected trip and closes the store after.
func withPlanner(cmd *cobra.Command, fn func(p *planner.Planner) error) error {
	s, err := openTrip(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.planner)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
