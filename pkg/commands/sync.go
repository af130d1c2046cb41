package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/planner"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "sync [on|off]",
		Short:     "Show or set whether the plan follows the selection",
		Long:      "With auto-sync on, selected products are kept on the plan. Turning it off keeps the current entries as manual ones.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				if len(args) == 1 {
					switch strings.ToLower(args[0]) {
					case "on", "true":
						p.SetAutoSync(ctx(cmd), true)
					case "off", "false":
						p.SetAutoSync(ctx(cmd), false)
					default:
						return fmt.Errorf("expected on or off, got %q", args[0])
					}
				}
				state := "off"
				if p.AutoSync() {
					state = "on"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Auto-sync is %s.\n", state)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}
