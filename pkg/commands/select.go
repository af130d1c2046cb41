package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/commands/options"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
	"tableflip.dev/tripbook/pkg/runner/add"
	"tableflip.dev/tripbook/pkg/runner/get"
)

func addSelect(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "select",
		Aliases: []string{"sel"},
		Short:   "Manage the products selected for the trip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newSelectAddCmd(),
		newSelectRmCmd(),
		newSelectQtyCmd(),
		newSelectDayCmd(),
		newSelectListCmd(),
		newSelectClearCmd(),
	)
	topLevel.AddCommand(cmd)
}

func newSelectAddCmd() *cobra.Command {
	opts := &options.ItemOptions{}
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Select a product; it is placed on the plan automatically",
		Example: `
tripbook select add Hotel Lutetia 3 nights --category hotel --price 420
tripbook select add Louvre guided tour --category tour --time morning --day 2
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				a := add.Add{
					Item:       opts.Item(args),
					Provenance: item.SelectionSourced,
					Planner:    p,
					Out:        cmd.OutOrStdout(),
				}
				return a.Do(ctx(cmd))
			})
		},
	}
	options.AddItemArgs(cmd, opts)
	options.AddPriceArgs(cmd, opts)
	return cmd
}

func newSelectRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a selected product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				if !p.Selection().Has(args[0]) {
					return fmt.Errorf("%s is not selected", args[0])
				}
				p.RemoveSelection(ctx(cmd), args[0])
				(&printers.PrettyPrint{Out: cmd.OutOrStdout()}).Selection(p.Selection())
				return nil
			})
		},
	}
}

func newSelectQtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qty <id> <quantity>",
		Short: "Change the quantity of a selected product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil || qty < 1 {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				if !p.Selection().Has(args[0]) {
					return fmt.Errorf("%s is not selected", args[0])
				}
				p.SetQuantity(ctx(cmd), args[0], qty)
				(&printers.PrettyPrint{Out: cmd.OutOrStdout()}).Selection(p.Selection())
				return nil
			})
		},
	}
}

func newSelectDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day <id> <day>",
		Short: "Move a selected product to another day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				if !p.Selection().Has(args[0]) {
					return fmt.Errorf("%s is not selected", args[0])
				}
				plan := p.SetSelectionDay(ctx(cmd), args[0], day)
				(&printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: true}).Day(plan, day)
				return nil
			})
		},
	}
}

func newSelectListCmd() *cobra.Command {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the selected products and the total",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withPlanner(cmd, func(p *planner.Planner) error {
				g := get.Get{Planner: p, Selection: true, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return g.Do(ctx(cmd))
			})
			return oo.HandleError(cmd.OutOrStdout(), err)
		},
	}
	options.AddOutputArg(cmd, oo)
	return cmd
}

func newSelectClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every selected product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				p.ClearSelection(ctx(cmd))
				(&printers.PrettyPrint{Out: cmd.OutOrStdout()}).Selection(p.Selection())
				return nil
			})
		},
	}
}

func parseDay(raw string) (int, error) {
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 {
		return 0, fmt.Errorf("invalid day %q, days start at 1", raw)
	}
	return day, nil
}
