package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Day    DayTheme
	Prompt PromptTheme
}

// FooterTheme groups styles used by the bottom status and help lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Mode   lipgloss.Style
}

// DayTheme styles a day column and its rows.
type DayTheme struct {
	Header       lipgloss.Style
	ActiveHeader lipgloss.Style
	Item         lipgloss.Style
	Cursor       lipgloss.Style
	Held         lipgloss.Style
	Target       lipgloss.Style
	Picked       lipgloss.Style
	Slot         lipgloss.Style
	Memory       lipgloss.Style
	Empty        lipgloss.Style
}

// PromptTheme styles the framed text prompts (repeat days, memory notes).
type PromptTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	header := lipgloss.NewStyle().Bold(true).Underline(true)
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Day: DayTheme{
			Header:       header,
			ActiveHeader: header.Foreground(lipgloss.Color("212")),
			Item:         lipgloss.NewStyle(),
			Cursor:       lipgloss.NewStyle().Reverse(true),
			Held:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			Target:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Picked:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Slot:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Memory:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("109")),
			Empty:        lipgloss.NewStyle().Faint(true).Italic(true),
		},
		Prompt: PromptTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
		},
	}
}
