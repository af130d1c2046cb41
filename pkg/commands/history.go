package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/runner/log"
)

func addUndo(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: "Undo the last itinerary edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, log.Undo, 0)
		},
	})
}

func addRedo(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone itinerary edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, log.Redo, 0)
		},
	})
}

func addHistory(topLevel *cobra.Command) {
	jump := -1
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the edits that can be undone",
		Example: `
tripbook history
tripbook history --jump 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jump >= 0 {
				return runLog(cmd, log.Jump, jump)
			}
			return runLog(cmd, log.List, 0)
		},
	}
	cmd.Flags().IntVar(&jump, "jump", -1, "Restore the plan as it was before history entry N.")
	topLevel.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, op log.Op, index int) error {
	return withPlanner(cmd, func(p *planner.Planner) error {
		l := log.Log{Planner: p, Op: op, Index: index, Out: cmd.OutOrStdout()}
		return l.Do(ctx(cmd))
	})
}
