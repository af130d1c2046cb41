package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/tripbook/pkg/commands/options"
	"tableflip.dev/tripbook/pkg/export"
	"tableflip.dev/tripbook/pkg/planner"
)

func addExport(topLevel *cobra.Command) {
	so := &options.StartOptions{}
	var (
		html   bool
		render bool
		out    string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the itinerary as a shareable Markdown or HTML document",
		Example: `
tripbook export --start 2026-5-28 > trip.md
tripbook export --html --out trip.html --title "Paris weekend"
tripbook export --render
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			start, err := so.GetStart(now)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			return withPlanner(cmd, func(p *planner.Planner) error {
				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				if title == "" {
					title = "Trip itinerary: " + p.Trip()
				}
				opts := export.Options{Title: title, Start: start, Generated: now}
				switch {
				case html && render:
					return errors.New("--html and --render are exclusive")
				case html:
					return export.HTML(w, p.Plan(), opts)
				case render:
					style := "dark"
					if out != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
						style = "notty"
					}
					return export.Terminal(w, p.Plan(), opts, style, 80)
				}
				return export.Markdown(w, p.Plan(), opts)
			})
		},
	}
	options.AddStartArgs(cmd, so)
	cmd.Flags().BoolVar(&html, "html", false, "Render HTML instead of Markdown.")
	cmd.Flags().BoolVar(&render, "render", false, "Render the Markdown for reading in a terminal.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout.")
	cmd.Flags().StringVar(&title, "title", "", "Document title.")
	topLevel.AddCommand(cmd)
}
