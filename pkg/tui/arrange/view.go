package arrange

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/item"
	"tableflip.dev/tripbook/pkg/printers"
)

const defaultWidth = 80

// View renders every day as a block, the active prompt if any, then the
// status and help lines.
func (m *Model) View() string {
	width := m.termWidth
	if width <= 0 {
		width = defaultWidth
	}
	if m.overlay != nil {
		return m.overlay.View()
	}

	var b strings.Builder
	if len(m.days) == 0 {
		b.WriteString(m.theme.Day.Empty.Render("No days planned yet. Press a to add one."))
		b.WriteString("\n")
	}
	for _, day := range m.days {
		b.WriteString(m.renderDay(day, width))
		b.WriteString("\n")
	}

	if m.mode != modeNormal {
		body := m.theme.Prompt.Title.Render(m.mode.prompt()) + "\n" + m.input.View()
		b.WriteString(m.theme.Prompt.Frame.Render(body))
		b.WriteString("\n")
	}

	b.WriteString(m.footer(width))
	return b.String()
}

func (m *Model) renderDay(day, width int) string {
	var b strings.Builder
	items := m.plan.Items(day)

	header := fmt.Sprintf("Day %d", day)
	if len(items) == 1 {
		header += " - 1 item"
	} else {
		header += fmt.Sprintf(" - %d items", len(items))
	}
	if m.bulk.Active() && m.bulk.Day() == day {
		header += fmt.Sprintf(" [%d picked]", len(m.bulk.IDs()))
	}
	style := m.theme.Day.Header
	if day == m.cursor.Day {
		style = m.theme.Day.ActiveHeader
	}
	b.WriteString(style.Render(header))
	b.WriteString("\n")

	if mem := m.plan.Memories[day]; mem != "" {
		wrapped := wordwrap.String(mem, max(width-4, 10))
		for _, line := range strings.Split(wrapped, "\n") {
			b.WriteString("  ")
			b.WriteString(m.theme.Day.Memory.Render(line))
			b.WriteString("\n")
		}
	}

	if len(items) == 0 && !m.targetsEnd(day, 0) {
		b.WriteString("  ")
		b.WriteString(m.theme.Day.Empty.Render("nothing planned"))
		b.WriteString("\n")
	}
	for i, it := range items {
		loc := dayplan.Location{Day: day, Index: i}
		b.WriteString(m.renderRow(loc, it, width))
		b.WriteString("\n")
	}
	if m.targetsEnd(day, len(items)) {
		b.WriteString(m.theme.Day.Target.Render("  ▸ drop here"))
		b.WriteString("\n")
	}
	return b.String()
}

// targetsEnd reports whether a cross-day drag is aimed at the end of day.
func (m *Model) targetsEnd(day, n int) bool {
	if !m.drag.Holding() {
		return false
	}
	t := m.drag.Target()
	return t.Day == day && t.Day != m.drag.Source().Day && t.Index == n
}

func (m *Model) renderRow(loc dayplan.Location, it item.Item, width int) string {
	marker := "  "
	if m.bulk.Active() && m.bulk.Day() == loc.Day {
		marker = "[ ]"
		if m.bulk.Picked(it.ID) {
			marker = "[x]"
		}
	}

	text := printers.Glyph(it.Provenance) + " " + it.Title
	if it.Subtitle != "" {
		text += " - " + it.Subtitle
	}
	if it.TimeOfDay != "" && it.TimeOfDay != item.Flexible {
		text = fmt.Sprintf("%s %s", m.theme.Day.Slot.Render("["+string(it.TimeOfDay)+"]"), text)
	}
	line := truncate.StringWithTail(marker+" "+text, uint(max(width-2, 10)), "…")

	holding := m.drag.Holding()
	switch {
	case holding && loc == m.drag.Source():
		return m.theme.Day.Held.Render("» " + line)
	case holding && loc == m.drag.Target():
		return m.theme.Day.Target.Render("▸ " + line)
	case m.bulk.Picked(it.ID) && m.bulk.Day() == loc.Day:
		if loc == m.cursor {
			return m.theme.Day.Cursor.Render("  " + line)
		}
		return m.theme.Day.Picked.Render("  " + line)
	case loc == m.cursor && !holding:
		return m.theme.Day.Cursor.Render("  " + line)
	default:
		return m.theme.Day.Item.Render("  " + line)
	}
}

func (m *Model) footer(width int) string {
	var parts []string
	if m.drag.Holding() {
		parts = append(parts, m.theme.Footer.Mode.Render(strings.ToUpper(m.drag.State().String())))
	} else if m.bulk.Active() {
		parts = append(parts, m.theme.Footer.Mode.Render("MULTI-SELECT"))
	}
	if !m.svc.AutoSync() {
		parts = append(parts, m.theme.Footer.Mode.Render("SYNC OFF"))
	}
	if m.svc.Degraded() {
		parts = append(parts, m.theme.Footer.Mode.Render("UNSAVED"))
	}
	if m.status != "" {
		parts = append(parts, m.theme.Footer.Status.Render(m.status))
	}
	status := truncate.StringWithTail(strings.Join(parts, " "), uint(width), "…")

	helpLine := m.theme.Footer.Help.Render(m.help.ShortHelpView(m.keys.short()))
	return lipgloss.JoinVertical(lipgloss.Left, status, helpLine)
}
