package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the configuration and the stored trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openTrip(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			i := info.Info{Config: s.cfg, Store: s.store, Planner: s.planner, Out: cmd.OutOrStdout()}
			return i.Do(ctx(cmd))
		},
	}
	topLevel.AddCommand(cmd)
}
