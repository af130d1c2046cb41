// Package key provides CLI helpers to display the itinerary legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/printers"
)

// Key prints what the listing glyphs and slots mean.
type Key struct {
	Out io.Writer
}

// Do renders the provenance and time-of-day keys.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(out, "")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Meaning"))
	tbl.AddRow(printers.Glyph(item.SelectionSourced), "Selected product, follows the selection while auto-sync is on")
	tbl.AddRow(printers.Glyph(item.Suggested), "Suggested entry, yours to keep or remove")
	tbl.AddRow(printers.Glyph(item.Manual), "Manual entry")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Slot"), bold.Sprint("Meaning"))
	tbl.AddRow(string(item.Morning), "Before lunch")
	tbl.AddRow(string(item.Afternoon), "Lunch until early evening")
	tbl.AddRow(string(item.Evening), "Dinner and later")
	tbl.AddRow("-", "Flexible, any time that day")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
