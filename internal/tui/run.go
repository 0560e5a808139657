// Package tui renders live progress for a research crew run.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status icons for task states.
const (
	iconRunning = "[●]"
	iconDone    = "[✓]"
	iconFailed  = "[✗]"
	iconSkipped = "[◌]"
	iconPending = "[○]"
)

// CrewEventMsg carries one crew event into the TUI.
type CrewEventMsg struct {
	Type    string
	Task    string
	Agent   string
	Message string
	Error   string
}

// RunDoneMsg signals that the run finished.
type RunDoneMsg struct {
	Success    bool
	Message    string
	ReportFile string
}

// UsageMsg refreshes the token/cost footer.
type UsageMsg struct {
	InputTokens  int64
	OutputTokens int64
	Cost         float64
}

// taskRow is one line of the task checklist.
type taskRow struct {
	name    string
	agent   string
	state   string
	message string
	started time.Time
	elapsed time.Duration
}

// RunModel is the bubbletea model for a crew run.
type RunModel struct {
	tasks   []taskRow
	index   map[string]int
	spin    spinner.Model
	started time.Time

	done       bool
	success    bool
	doneMsg    string
	reportFile string

	inputTokens  int64
	outputTokens int64
	cost         float64

	width  int
	height int

	titleStyle   lipgloss.Style
	agentStyle   lipgloss.Style
	doneStyle    lipgloss.Style
	failStyle    lipgloss.Style
	pendingStyle lipgloss.Style
	footerStyle  lipgloss.Style
}

// NewRunModel creates a run model for the given ordered task names.
func NewRunModel(taskNames []string) *RunModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &RunModel{
		index:   make(map[string]int, len(taskNames)),
		spin:    sp,
		started: time.Now(),

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")),
		agentStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		doneStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")), // Dark green
		failStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red
		pendingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray
		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
	for i, name := range taskNames {
		m.tasks = append(m.tasks, taskRow{name: name, state: "pending"})
		m.index[name] = i
	}
	return m
}

// Init implements tea.Model.
func (m *RunModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model.
func (m *RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case CrewEventMsg:
		m.applyEvent(msg)

	case UsageMsg:
		m.inputTokens = msg.InputTokens
		m.outputTokens = msg.OutputTokens
		m.cost = msg.Cost

	case RunDoneMsg:
		m.done = true
		m.success = msg.Success
		m.doneMsg = msg.Message
		m.reportFile = msg.ReportFile
	}

	return m, nil
}

// applyEvent updates the checklist from a crew event.
func (m *RunModel) applyEvent(ev CrewEventMsg) {
	i, ok := m.index[ev.Task]
	if !ok {
		return
	}
	row := &m.tasks[i]
	row.agent = ev.Agent

	switch ev.Type {
	case "task_started":
		row.state = "running"
		row.started = time.Now()
		row.message = ev.Message
	case "task_retry":
		row.message = ev.Message
	case "task_completed":
		row.state = "done"
		row.elapsed = time.Since(row.started)
		row.message = ""
	case "task_failed":
		row.state = "failed"
		row.elapsed = time.Since(row.started)
		row.message = ev.Error
	case "task_skipped":
		row.state = "skipped"
	}
}

// View implements tea.Model.
func (m *RunModel) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("hoopscout — basketball league research crew"))
	b.WriteString("\n\n")

	for i, row := range m.tasks {
		var icon, line string
		switch row.state {
		case "running":
			icon = m.spin.View() + " " + iconRunning
		case "done":
			icon = m.doneStyle.Render(iconDone)
		case "failed":
			icon = m.failStyle.Render(iconFailed)
		case "skipped":
			icon = m.pendingStyle.Render(iconSkipped)
		default:
			icon = m.pendingStyle.Render(iconPending)
		}

		line = fmt.Sprintf("%s %d. %s", icon, i+1, row.name)
		if row.agent != "" {
			line += " " + m.agentStyle.Render("("+row.agent+")")
		}
		if row.state == "done" && row.elapsed > 0 {
			line += " " + m.agentStyle.Render(row.elapsed.Round(time.Second).String())
		}
		if row.message != "" {
			line += " " + m.agentStyle.Render("— "+row.message)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footerStyle.Render(fmt.Sprintf(
		"elapsed %s · tokens in %d / out %d · est. cost $%.2f",
		time.Since(m.started).Round(time.Second),
		m.inputTokens, m.outputTokens, m.cost,
	)))
	b.WriteString("\n")

	if m.done {
		b.WriteString("\n")
		if m.success {
			b.WriteString(m.doneStyle.Render("✓ " + m.doneMsg))
			if m.reportFile != "" {
				b.WriteString("\n" + m.footerStyle.Render("report: "+m.reportFile))
			}
		} else {
			b.WriteString(m.failStyle.Render("✗ " + m.doneMsg))
		}
		b.WriteString("\n" + m.footerStyle.Render("press q to quit"))
	}

	return b.String()
}

// NewRunProgram wraps a RunModel in a tea.Program on the alt screen.
func NewRunProgram(taskNames []string) (*tea.Program, *RunModel) {
	model := NewRunModel(taskNames)
	program := tea.NewProgram(model, tea.WithAltScreen())
	return program, model
}
