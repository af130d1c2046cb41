package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show what the listing glyphs and slots mean",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			return k.Do(ctx(cmd))
		},
	}
	topLevel.AddCommand(cmd)
}
