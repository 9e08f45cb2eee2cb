// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/app"
	"todo/internal/output"
	"todo/internal/task"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeTab    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

const placeholder = "What needs to be done?"

// Run starts the TUI over a and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model. All store mutations happen in Update; only
// the expansion request runs on a command goroutine.
type Model struct {
	ctx    context.Context
	app    *app.App
	input  textinput.Model
	spin   spinner.Model
	filter task.FilterMode
	cursor int
	status string
}

// expandedMsg carries the texts returned by the gateway back to Update.
type expandedMsg struct {
	texts []string
}

// New creates a model over a with an empty, focused input.
func New(ctx context.Context, a *app.App) *Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &Model{
		ctx:    ctx,
		app:    a,
		input:  ti,
		spin:   sp,
		filter: task.All,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case spinner.TickMsg:
		if !m.app.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case expandedMsg:
		if _, err := m.app.FinishGenerate(msg.texts); err != nil {
			m.status = "storage error: " + err.Error()
		}
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey applies list and submit keys. Keys it does not handle go to the
// input. Space and delete only act on the list while the input is empty.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	idle := m.input.Value() == ""

	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit, true
	case "enter":
		m.submit()
		return nil, true
	case "ctrl+g":
		return m.generate(), true
	case "tab":
		m.filter = m.filter.Next()
		m.cursor = 0
		return nil, true
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil, true
	case "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return nil, true
	case " ":
		if !idle {
			return nil, false
		}
		if t, ok := m.selected(); ok {
			m.report(m.app.Toggle(t.ID))
			m.clampCursor()
		}
		return nil, true
	case "ctrl+d", "delete":
		if !idle {
			return nil, false
		}
		if t, ok := m.selected(); ok {
			m.report(m.app.Remove(t.ID))
			m.clampCursor()
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) submit() {
	_, ok, err := m.app.Submit(m.input.Value())
	m.report(err)
	if ok {
		m.input.Reset()
		m.cursor = 0
	}
}

// generate claims the in-flight flag and starts the expansion. It is a no-op
// for a blank goal or while another generation is outstanding.
func (m *Model) generate() tea.Cmd {
	goal := strings.TrimSpace(m.input.Value())
	if goal == "" || !m.app.BeginGenerate() {
		return nil
	}
	m.input.Reset()
	m.status = ""
	return tea.Batch(m.spin.Tick, m.expandCmd(goal))
}

func (m *Model) expandCmd(goal string) tea.Cmd {
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		return expandedMsg{texts: a.Expand(ctx, goal)}
	}
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = "storage error: " + err.Error()
		return
	}
	m.status = ""
}

func (m *Model) visible() []task.Task {
	return m.app.View(m.filter)
}

func (m *Model) selected() (task.Task, bool) {
	view := m.visible()
	if m.cursor < 0 || m.cursor >= len(view) {
		return task.Task{}, false
	}
	return view[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo") + "  " + output.ActiveCountText(m.app.ActiveCount()) + "\n\n")
	writeTabs(&b, m.filter)

	b.WriteString(m.input.View() + "\n")
	if m.app.Generating() {
		b.WriteString(m.spin.View() + " Generating tasks...\n")
	}
	b.WriteString("\n")

	view := m.visible()
	if len(view) == 0 {
		b.WriteString("  " + output.EmptyText + "\n")
	}
	for i, t := range view {
		writeTask(&b, t, i == m.cursor)
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + footerStyle.Render("enter add | ctrl+g magic | space toggle | ctrl+d delete | tab filter | esc quit") + "\n")
	return b.String()
}

func writeTabs(b *strings.Builder, current task.FilterMode) {
	tabs := make([]string, len(task.Modes))
	for i, mode := range task.Modes {
		if mode == current {
			tabs[i] = activeTab.Render(mode.Label())
		} else {
			tabs[i] = tabStyle.Render(mode.Label())
		}
	}
	b.WriteString(strings.Join(tabs, " | ") + "\n\n")
}

func writeTask(b *strings.Builder, t task.Task, selected bool) {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}
	text := t.Text
	if t.IsCompleted {
		text = doneStyle.Render(text)
	}
	b.WriteString(marker + output.Checkbox(t.IsCompleted) + " " + text + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
