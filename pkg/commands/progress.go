package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/commands/options"
	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/runner/track"
)

func addProgress(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the planning milestones and the selection total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withPlanner(cmd, func(p *planner.Planner) error {
				t := track.Track{Planner: p, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return t.Do(ctx(cmd))
			})
			return oo.HandleError(cmd.OutOrStdout(), err)
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
