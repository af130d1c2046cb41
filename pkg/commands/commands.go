package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tripbook/pkg/commands/options"
)

var (
	tripOpts = &options.TripOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tripbook",
		Short: base.Wrap80("Plan a trip day by day: pick products, arrange the itinerary, share it."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	options.AddTripArgs(cmd, tripOpts)
	_ = cmd.RegisterFlagCompletionFunc("trip", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return tripCompletions(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSelect(topLevel)
	addPlan(topLevel)
	addUndo(topLevel)
	addRedo(topLevel)
	addHistory(topLevel)
	addSync(topLevel)
	addProgress(topLevel)
	addExport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
