// Package arrange is the keyboard-driven day plan organizer: pick items up,
// move them within or across days, multi-select a batch for a bulk transfer,
// repeat items and annotate days.
package arrange

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tripbook/pkg/bulk"
	"tableflip.dev/tripbook/pkg/dayplan"
	"tableflip.dev/tripbook/pkg/planner"
	"tableflip.dev/tripbook/pkg/reorder"
	"tableflip.dev/tripbook/pkg/store"
	helpoverlay "tableflip.dev/tripbook/pkg/tui/components/help"
	"tableflip.dev/tripbook/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeRepeat
	modeMemory
	modeBulkDest
)

func (m mode) prompt() string {
	switch m {
	case modeRepeat:
		return "Repeat on days (e.g. 2, 4 6)"
	case modeMemory:
		return "Notes for the day"
	case modeBulkDest:
		return "Move picked items to day"
	default:
		return ""
	}
}

// Model is the Bubble Tea model. It keeps a copy of the plan for rendering;
// every change goes through the planner.
type Model struct {
	svc *planner.Planner
	ctx context.Context

	plan   dayplan.Plan
	days   []int
	cursor dayplan.Location

	drag reorder.Session
	bulk bulk.Selection

	mode  mode
	input textinput.Model
	keys  keyMap
	help  help.Model
	theme theme.Theme

	overlay *helpoverlay.Model

	status     string
	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

type errMsg struct{ err error }

type planLoadedMsg struct{ plan dayplan.Plan }

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{ event store.Event }

type watchStoppedMsg struct{}

// New creates the model for svc.
func New(svc *planner.Planner) *Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "

	m := &Model{
		svc:    svc,
		ctx:    context.Background(),
		input:  ti,
		keys:   defaultKeys(),
		help:   help.New(),
		theme:  theme.Default(),
		status: "space picks up, arrows move, space drops, esc cancels",
	}
	m.setPlan(svc.Plan())
	return m
}

// Init starts watching the store for changes made elsewhere.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if m.overlay != nil {
			w, h, _ := m.overlaySize()
			m.overlay.SetSize(w, h)
		}
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case planLoadedMsg:
		if !msg.plan.Equal(m.plan) {
			m.drag.Cancel()
			m.bulk.Exit()
		}
		m.setPlan(msg.plan)
	case watchStartedMsg:
		if msg.err != nil {
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		if m.svc.Owns(msg.event.Key) {
			cmds = append(cmds, m.reload())
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if m.overlay != nil {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
				m.overlay = nil
				break
			}
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			cmds = append(cmds, cmd)
			break
		}
		if m.mode != modeNormal {
			cmds = append(cmds, m.handlePromptKey(msg))
			break
		}
		if key.Matches(msg, m.keys.Quit) && !m.drag.Holding() {
			m.stopWatch()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) && !m.drag.Holding() {
			m.overlay = helpoverlay.New(m.overlaySize())
			break
		}
		m.handleNormalKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) {
	ctx := m.ctx
	switch {
	case key.Matches(msg, m.keys.Up):
		m.step(-1)
	case key.Matches(msg, m.keys.Down):
		m.step(1)
	case key.Matches(msg, m.keys.PrevDay):
		m.switchDay(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.switchDay(1)

	case key.Matches(msg, m.keys.Grab):
		if m.bulk.Active() {
			if msg.String() == "enter" {
				if len(m.bulk.IDs()) > 0 {
					m.openPrompt(modeBulkDest, "")
				}
				return
			}
			if it, ok := m.plan.At(m.cursor); ok {
				m.bulk.Toggle(m.cursor.Day, it.ID)
				m.status = fmt.Sprintf("%d picked on day %d", len(m.bulk.IDs()), m.bulk.Day())
			}
			return
		}
		if !m.drag.Holding() {
			if m.drag.PickUp(m.plan, m.cursor) {
				m.status = "Holding: arrows choose a spot, space drops, esc cancels"
			}
			return
		}
		source, target := m.drag.Source(), m.drag.Target()
		plan, moved := m.svc.Drop(ctx, &m.drag)
		m.setPlan(plan)
		if moved {
			m.focus(source, target)
			m.status = "Moved"
		} else {
			m.status = "Nothing moved"
		}

	case key.Matches(msg, m.keys.Cancel):
		switch {
		case m.drag.Holding():
			m.cursor = m.drag.Source()
			m.drag.Cancel()
			m.status = "Move cancelled"
		case m.bulk.Active():
			m.bulk.Exit()
			m.status = "Multi-select off"
		}

	case m.drag.Holding():
		// Everything below edits the plan and waits until the held item lands.

	case key.Matches(msg, m.keys.Bulk):
		if m.bulk.Active() {
			m.bulk.Exit()
			m.status = "Multi-select off"
			return
		}
		m.bulk.Enter(m.cursor.Day)
		m.status = fmt.Sprintf("Multi-select on day %d: space picks, m moves", m.cursor.Day)
	case key.Matches(msg, m.keys.Move):
		if m.bulk.Active() && len(m.bulk.IDs()) > 0 {
			m.openPrompt(modeBulkDest, "")
		}
	case key.Matches(msg, m.keys.Repeat):
		if it, ok := m.plan.At(m.cursor); ok {
			if it.Sourced() {
				m.status = "Selected products follow the selection and cannot be repeated"
				return
			}
			m.openPrompt(modeRepeat, "")
		}
	case key.Matches(msg, m.keys.Memory):
		if m.cursor.Day > 0 {
			m.openPrompt(modeMemory, m.plan.Memories[m.cursor.Day])
		}
	case key.Matches(msg, m.keys.Remove):
		if _, ok := m.plan.At(m.cursor); ok {
			m.setPlan(m.svc.RemoveItem(ctx, m.cursor))
			m.status = "Removed"
		}
	case key.Matches(msg, m.keys.AddDay):
		m.setPlan(m.svc.AddDay(ctx))
		if n := len(m.days); n > 0 {
			m.cursor = dayplan.Location{Day: m.days[n-1]}
		}
	case key.Matches(msg, m.keys.Undo):
		plan, ok := m.svc.Undo(ctx)
		m.setPlan(plan)
		m.status = ternary(ok, "Undone", "Nothing to undo")
	case key.Matches(msg, m.keys.Redo):
		plan, ok := m.svc.Redo(ctx)
		m.setPlan(plan)
		m.status = ternary(ok, "Redone", "Nothing to redo")
	case key.Matches(msg, m.keys.AutoSync):
		on := !m.svc.AutoSync()
		m.setPlan(m.svc.SetAutoSync(ctx, on))
		m.status = ternary(on, "Auto-sync on", "Auto-sync off: selected items are now manual")
	}
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		m.status = "Cancelled"
		return nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeRepeat:
			plan, added := m.svc.Repeat(m.ctx, m.cursor, text)
			m.setPlan(plan)
			if len(added) == 0 {
				m.status = "No new days"
			} else {
				m.status = fmt.Sprintf("Repeated on days %s", joinInts(added))
			}
		case modeMemory:
			m.setPlan(m.svc.SetMemory(m.ctx, m.cursor.Day, text))
			m.status = "Notes saved"
		case modeBulkDest:
			dest, err := strconv.Atoi(text)
			if err != nil || dest < 1 {
				m.status = "Not a day number"
				return nil
			}
			n := len(m.bulk.IDs())
			m.setPlan(m.svc.ConfirmBulk(m.ctx, &m.bulk, dest))
			m.cursor = dayplan.Location{Day: dest}
			m.clampCursor()
			m.status = fmt.Sprintf("Moved %d to day %d", n, dest)
		}
		m.closePrompt()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) openPrompt(md mode, value string) {
	m.mode = md
	m.input.Reset()
	m.input.SetValue(value)
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
}

// step moves the cursor, or the drop target while holding.
func (m *Model) step(delta int) {
	if m.drag.Holding() {
		m.drag.Step(m.plan, delta)
		m.cursor = m.drag.Target()
		return
	}
	m.cursor.Index += delta
	m.clampCursor()
}

// switchDay moves the cursor to the neighbouring day. While holding, the
// neighbouring day becomes the drop target and the item would land at its end.
func (m *Model) switchDay(delta int) {
	i := indexOf(m.days, m.cursor.Day) + delta
	if i < 0 || i >= len(m.days) {
		return
	}
	day := m.days[i]
	if m.drag.Holding() {
		src := m.drag.Source()
		if day == src.Day {
			m.drag.Hover(m.plan, src)
			m.cursor = src
			return
		}
		target := dayplan.Location{Day: day, Index: len(m.plan.Days[day])}
		m.drag.Hover(m.plan, target)
		m.cursor = target
		return
	}
	m.cursor = dayplan.Location{Day: day, Index: m.cursor.Index}
	m.clampCursor()
}

// focus puts the cursor on a dropped item. Cross-day drops land at the end.
func (m *Model) focus(source, loc dayplan.Location) {
	if loc.Day != source.Day {
		loc.Index = len(m.plan.Days[loc.Day]) - 1
	}
	m.cursor = loc
	m.clampCursor()
}

func (m *Model) setPlan(plan dayplan.Plan) {
	m.plan = plan
	m.days = plan.DayNumbers()
	if len(m.days) > 0 && indexOf(m.days, m.cursor.Day) < 0 {
		m.cursor = dayplan.Location{Day: m.days[0]}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.plan.Days[m.cursor.Day])
	if m.cursor.Index >= n {
		m.cursor.Index = n - 1
	}
	if m.cursor.Index < 0 {
		m.cursor.Index = 0
	}
}

func (m *Model) reload() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		if err := svc.Load(ctx); err != nil {
			return errMsg{err}
		}
		return planLoadedMsg{plan: svc.Plan()}
	}
}

func startWatchCmd(parent context.Context, svc *planner.Planner) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Run launches the interactive TUI program.
func Run(ctx context.Context, svc *planner.Planner) error {
	m := New(svc)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func indexOf(days []int, day int) int {
	for i, d := range days {
		if d == day {
			return i
		}
	}
	return -1
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func (m *Model) overlaySize() (int, int, [][]key.Binding) {
	w, h := m.termWidth, m.termHeight
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = 24
	}
	return w, h - 2, m.keys.full()
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
