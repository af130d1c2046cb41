package arrange

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Grab     key.Binding
	Cancel   key.Binding
	Bulk     key.Binding
	Move     key.Binding
	Repeat   key.Binding
	Memory   key.Binding
	Remove   key.Binding
	AddDay   key.Binding
	Undo     key.Binding
	Redo     key.Binding
	AutoSync key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Grab:     key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "pick up/drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Bulk:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "multi-select")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move picks")),
		Repeat:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		Memory:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		AddDay:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add day")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:     key.NewBinding(key.WithKeys("ctrl+r", "U"), key.WithHelp("ctrl+r", "redo")),
		AutoSync: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "auto-sync")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Grab, k.Cancel, k.Bulk, k.Repeat, k.Memory, k.Undo, k.Redo, k.AutoSync, k.Help, k.Quit}
}

func (k keyMap) full() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevDay, k.NextDay},
		{k.Grab, k.Cancel, k.Bulk, k.Move},
		{k.Repeat, k.Memory, k.Remove, k.AddDay},
		{k.Undo, k.Redo, k.AutoSync, k.Quit},
	}
}
