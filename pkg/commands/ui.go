package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	var demo bool
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive day plan organizer",
		Example: `
tripbook ui
tripbook ui --demo
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs an interactive terminal")
			}
			if demo {
				i := ui.UI{Planner: planner.New(planner.Options{Trip: "demo"}), Demo: true}
				return i.Do(ctx(cmd))
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				i := ui.UI{Planner: p}
				return i.Do(ctx(cmd))
			})
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Start on a sample trip kept in memory only.")

	topLevel.AddCommand(cmd)
}
