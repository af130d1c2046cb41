package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/commands/options"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/printers"
	"tableflip.dev/tripbook/pkg/runner/add"
	"tableflip.dev/tripbook/pkg/runner/get"
	"tableflip.dev/tripbook/pkg/runner/strike"
)

func addPlan(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show and arrange the day-by-day itinerary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newPlanShowCmd(),
		newPlanAddCmd("add", "Add a manual entry", item.Manual),
		newPlanAddCmd("suggest", "Add a suggested entry", item.Suggested),
		newPlanRmCmd(),
		newPlanMoveCmd(),
		newPlanReorderCmd(),
		newPlanBulkCmd(),
		newPlanRepeatCmd(),
		newPlanMemoryCmd(),
		newPlanAddDayCmd(),
		newPlanSearchCmd(),
	)
	topLevel.AddCommand(cmd)
}

func newPlanShowCmd() *cobra.Command {
	oo := &options.OutputOptions{}
	ido := &options.IDOptions{}
	var day int
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the itinerary",
		Example: `
tripbook plan show
tripbook plan show --day 2 -k
tripbook plan show --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withPlanner(cmd, func(p *planner.Planner) error {
				g := get.Get{Planner: p, ShowID: ido.ShowID, JSON: oo.JSON, Day: day, Out: cmd.OutOrStdout()}
				return g.Do(ctx(cmd))
			})
			return oo.HandleError(cmd.OutOrStdout(), err)
		},
	}
	cmd.Flags().IntVarP(&day, "day", "d", 0, "Only show this day.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	return cmd
}

func newPlanSearchCmd() *cobra.Command {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Show only entries whose title, subtitle or day notes match",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				g := get.Get{Planner: p, ShowID: ido.ShowID, Query: strings.Join(args, " "), Out: cmd.OutOrStdout()}
				return g.Do(ctx(cmd))
			})
		},
	}
	options.AddShowIDArgs(cmd, ido)
	return cmd
}

func newPlanAddCmd(use, short string, prov item.Provenance) *cobra.Command {
	opts := &options.ItemOptions{}
	cmd := &cobra.Command{
		Use:   use + " <title>",
		Short: short,
		Example: fmt.Sprintf(`
tripbook plan %s Pick up the rental car --day 1 --time morning
`, use),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				a := add.Add{
					Item:       opts.Item(args),
					Provenance: prov,
					Planner:    p,
					Out:        cmd.OutOrStdout(),
				}
				return a.Do(ctx(cmd))
			})
		},
	}
	options.AddItemArgs(cmd, opts)
	return cmd
}

func newPlanRmCmd() *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an entry; a selected product also leaves the selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				s := strike.Strike{ID: args[0], Day: day, Planner: p, Out: cmd.OutOrStdout()}
				return s.Do(ctx(cmd))
			})
		},
	}
	cmd.Flags().IntVarP(&day, "day", "d", 0, "Day to remove it from when it is on several days.")
	return cmd
}

func newPlanMoveCmd() *cobra.Command {
	var from int
	cmd := &cobra.Command{
		Use:   "move <id> <day>",
		Short: "Move an entry to the end of another day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				for _, loc := range p.Plan().Find(args[0]) {
					if from > 0 && loc.Day != from {
						continue
					}
					plan := p.Move(ctx(cmd), loc.Day, loc.Index, to)
					pp := printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: true}
					pp.Day(plan, loc.Day)
					pp.Day(plan, to)
					return nil
				}
				return fmt.Errorf("%s is not in the plan", args[0])
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "Day to move it from when it is on several days.")
	return cmd
}

func newPlanReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <day> <from> <to>",
		Short: "Move the entry at position from to position to within a day",
		Long:  "Positions are the numbers printed by 'plan show', starting at 1.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			from, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[2])
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				n := len(p.Plan().Items(day))
				if from >= n || to >= n {
					return fmt.Errorf("day %d has %d entries", day, n)
				}
				plan := p.Reorder(ctx(cmd), day, from, to)
				(&printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: true}).Day(plan, day)
				return nil
			})
		},
	}
}

func newPlanBulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <from-day> <to-day> <id>...",
		Short: "Move several entries of one day to the end of another, keeping their order",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseDay(args[0])
			if err != nil {
				return err
			}
			dest, err := parseDay(args[1])
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				plan := p.BulkMove(ctx(cmd), source, dest, args[2:])
				pp := printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: true}
				pp.Day(plan, source)
				pp.Day(plan, dest)
				return nil
			})
		},
	}
}

func newPlanRepeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repeat <id> <days>",
		Short: "Copy a manual or suggested entry onto other days",
		Example: `
tripbook plan repeat 01J8ZK 2,4 5
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				locs := p.Plan().Find(args[0])
				if len(locs) == 0 {
					return fmt.Errorf("%s is not in the plan", args[0])
				}
				if it, _ := p.Plan().At(locs[0]); it.Sourced() {
					return fmt.Errorf("%s is a selected product; change its day with 'select day' instead", args[0])
				}
				plan, added := p.Repeat(ctx(cmd), locs[0], strings.Join(args[1:], " "))
				if len(added) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No new days.")
					return nil
				}
				pp := printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: true}
				for _, day := range added {
					pp.Day(plan, day)
				}
				return nil
			})
		},
	}
}

func newPlanMemoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "memory <day> [text]",
		Aliases: []string{"notes"},
		Short:   "Set the notes of a day; no text clears them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				plan := p.SetMemory(ctx(cmd), day, strings.Join(args[1:], " "))
				(&printers.PrettyPrint{Out: cmd.OutOrStdout()}).Day(plan, day)
				return nil
			})
		},
	}
}

func newPlanAddDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-day",
		Short: "Append an empty day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(cmd, func(p *planner.Planner) error {
				plan := p.AddDay(ctx(cmd))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added day %d.\n", plan.MaxDay())
				return nil
			})
		},
	}
}

func parsePosition(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q, positions start at 1", raw)
	}
	return n - 1, nil
}
