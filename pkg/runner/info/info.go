package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/store"
)

type Info struct {
	Config  *store.FileConfig
	Store   store.Store
	Planner *planner.Planner
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("TRIPBOOK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TRIPBOOK_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "TRIPBOOK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.Backend())
	_, _ = fmt.Fprintln(out, "Config.dayCapacity: ", n.Config.DayCapacity)
	_, _ = fmt.Fprintln(out, "Config.historyLimit: ", n.Config.HistoryLimit)

	if n.Store == nil {
		return fmt.Errorf("failed to open the store")
	}

	keys, err := n.Store.Keys(ctx, "")
	if err != nil {
		return err
	}
	trips := map[string]struct{}{}
	for _, k := range keys {
		trip, _ := store.SplitKey(k)
		trips[trip] = struct{}{}
	}
	names := make([]string, 0, len(trips))
	for t := range trips {
		names = append(names, t)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintf(out, "Trips:\n")
	if len(names) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no trips")
	}
	for _, t := range names {
		marker := " "
		if n.Planner != nil && t == n.Planner.Trip() {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out, " %s%s\n", marker, t)
	}

	if n.Planner != nil && n.Planner.Degraded() {
		_, _ = fmt.Fprintln(out, "Trip could not be loaded; changes are kept in memory only.")
	}
	return nil
}
