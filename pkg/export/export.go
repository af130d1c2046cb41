// Package export renders a day plan as a plain per-day document.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
)

// Options controls the document header.
type Options struct {
	Title string
	// Start dates each day section; day sections are dated consecutively in
	// plan order. The zero value leaves days undated.
	Start time.Time
	// Generated stamps the document; the zero value omits the line.
	Generated time.Time
}

const dateLayout = "02/01/2006"

// Markdown writes one section per day with a bullet per item and the day's
// memory note at the end of its section.
func Markdown(w io.Writer, plan dayplan.Plan, opts Options) error {
	var b strings.Builder
	title := opts.Title
	if title == "" {
		title = "Itinerary"
	}
	fmt.Fprintf(&b, "# %s\n", escape(title))
	if !opts.Generated.IsZero() {
		fmt.Fprintf(&b, "\n_Generated on %s_\n", opts.Generated.Format(dateLayout))
	}

	for i, day := range plan.DayNumbers() {
		b.WriteString("\n")
		if opts.Start.IsZero() {
			fmt.Fprintf(&b, "## Day %d\n", day)
		} else {
			fmt.Fprintf(&b, "## Day %d - %s\n", day, opts.Start.AddDate(0, 0, i).Format(dateLayout))
		}
		items := plan.Days[day]
		if len(items) > 0 {
			b.WriteString("\n")
		}
		for _, it := range items {
			fmt.Fprintf(&b, "- %s\n", bullet(it))
		}
		if memo := strings.TrimSpace(plan.Memories[day]); memo != "" {
			fmt.Fprintf(&b, "\n_Notes: %s_\n", escape(memo))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HTML renders the Markdown document to HTML.
func HTML(w io.Writer, plan dayplan.Plan, opts Options) error {
	var md bytes.Buffer
	if err := Markdown(&md, plan, opts); err != nil {
		return err
	}
	if err := goldmark.Convert(md.Bytes(), w); err != nil {
		return fmt.Errorf("export: render html: %w", err)
	}
	return nil
}

// Terminal renders the Markdown document styled for a terminal, wrapped at
// width columns. Style is a glamour standard style name; empty picks "dark".
func Terminal(w io.Writer, plan dayplan.Plan, opts Options, style string, width int) error {
	var md bytes.Buffer
	if err := Markdown(&md, plan, opts); err != nil {
		return err
	}
	if style == "" {
		style = "dark"
	}
	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("export: terminal renderer: %w", err)
	}
	out, err := r.Render(md.String())
	if err != nil {
		return fmt.Errorf("export: render terminal: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func bullet(it item.Item) string {
	var b strings.Builder
	if it.TimeOfDay != "" && it.TimeOfDay != item.Flexible {
		fmt.Fprintf(&b, "[%s] ", it.TimeOfDay)
	}
	b.WriteString(escape(it.Title))
	if it.Subtitle != "" {
		b.WriteString(" - ")
		b.WriteString(escape(it.Subtitle))
	}
	return b.String()
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"\n", " ",
)

// escape keeps user text from being read as markdown.
func escape(s string) string {
	return escaper.Replace(s)
}
