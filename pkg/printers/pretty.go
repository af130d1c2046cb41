package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/history"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/selection"
)

// PrettyPrint renders plans for a terminal. Out defaults to color.Output.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// DayPlan prints every day with its items in order and the memory note last.
func (pp *PrettyPrint) DayPlan(plan dayplan.Plan) {
	days := plan.DayNumbers()
	if len(days) == 0 {
		pp.Title("Day plan")
		pp.none()
		return
	}
	for _, day := range days {
		pp.Day(plan, day)
	}
}

// Day prints a single day section.
func (pp *PrettyPrint) Day(plan dayplan.Plan, day int) {
	items := plan.Days[day]
	pp.TitleWithCount(fmt.Sprintf("Day %d", day), len(items))
	if len(items) == 0 {
		pp.none()
	} else {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		f := color.New(color.Faint)

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		for i, it := range items {
			row := []interface{}{fmt.Sprintf("%d.", i+1), Glyph(it.Provenance), slot(it.TimeOfDay), it.Title, f.Sprint(it.Subtitle)}
			if pp.ShowID {
				row = append([]interface{}{y.Sprint(it.ID)}, row...)
			}
			tbl.AddRow(row...)
		}
		tbl.RightAlign(boolToCol(pp.ShowID))
		_, _ = fmt.Fprintln(pp.out(), tbl)
	}
	if memo := strings.TrimSpace(plan.Memories[day]); memo != "" {
		m := color.New(color.Italic, color.FgCyan)
		_, _ = m.Fprintf(pp.out(), "  notes: %s\n", memo)
	}
	pp.NewLine()
}

// Selection prints the selection set with quantities and the quote total.
func (pp *PrettyPrint) Selection(sel selection.Set) {
	pp.TitleWithCount("Selection", sel.Len())
	if sel.Len() == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Category"), bold.Sprint("Day"), bold.Sprint("Qty"), bold.Sprint("Subtotal"))
	for _, it := range sel.Items() {
		tbl.AddRow(it.ID, it.Title, it.Category, it.Day, it.Quantity, money(it.Subtotal()))
	}
	tbl.AddRow("", "", "", "", bold.Sprint("Total"), bold.Sprint(money(sel.Total())))
	tbl.RightAlign(5)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Progress prints the milestone checklist.
func (pp *PrettyPrint) Progress(ms []dayplan.Milestone) {
	pp.Title("Progress")
	done := color.New(color.FgGreen)
	todo := color.New(color.Faint)
	for _, m := range ms {
		if m.Done {
			_, _ = done.Fprintf(pp.out(), " ✓ %s\n", m.Label)
		} else {
			_, _ = todo.Fprintf(pp.out(), " ○ %s\n", m.Label)
		}
	}
	pp.NewLine()
}

// History prints the undo entries oldest first with their jump index, then
// the pending redo entries.
func (pp *PrettyPrint) History(undo, redo []history.Entry) {
	pp.TitleWithCount("History", len(undo))
	if len(undo) == 0 {
		pp.none()
	} else {
		f := color.New(color.Faint)
		tbl := uitable.New()
		tbl.Separator = "  "
		for i, e := range undo {
			tbl.AddRow(i, e.Label, f.Sprint(e.At.Local().Format("2006-01-02 15:04:05")))
		}
		tbl.RightAlign(0)
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
	if len(redo) > 0 {
		r := color.New(color.Faint, color.Italic)
		for i := len(redo) - 1; i >= 0; i-- {
			_, _ = r.Fprintf(pp.out(), "  redo: %s\n", redo[i].Label)
		}
		pp.NewLine()
	}
}

// Glyph is the one-rune provenance marker used in listings.
func Glyph(p item.Provenance) string {
	switch p {
	case item.SelectionSourced:
		return "●"
	case item.Suggested:
		return "✧"
	default:
		return "○"
	}
}

func slot(t item.TimeOfDay) string {
	if t == "" || t == item.Flexible {
		return "-"
	}
	return string(t)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func boolToCol(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Unplanned lists selected product ids that have no entry on their day.
func (pp *PrettyPrint) Unplanned(ids []string) {
	w := color.New(color.FgYellow)
	_, _ = w.Fprintf(pp.out(), "Not on the plan: %s\n", strings.Join(ids, ", "))
	pp.NewLine()
}
