// Package tui is the interactive terminal console. It only renders
// snapshots published by the coordinator and never touches session state.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/view"
	"github.com/rs/zerolog"
)

const (
	clockInterval = time.Second
	minLogHeight  = 5
)

type snapshotMsg dashboard.Snapshot

// closedMsg is sent once the coordinator has stopped publishing.
type closedMsg struct{}

type clockMsg time.Time

type copiedMsg struct {
	id  string
	err error
}

type Config struct {
	Renderer view.Renderer
	// Copy defaults to CopyToClipboard.
	Copy   func(text string) error
	Now    func() time.Time
	Logger *zerolog.Logger
}

type Model struct {
	updates  <-chan dashboard.Snapshot
	renderer view.Renderer
	copy     func(string) error
	now      func() time.Time
	logger   *zerolog.Logger

	snap dashboard.Snapshot
	tree view.Tree

	spinner spinner.Model
	logs    viewport.Model

	width  int
	height int
	ready  bool

	selected     int
	copiedID     string
	showTopology bool
	quitting     bool
}

func New(updates <-chan dashboard.Snapshot, cfg Config) Model {
	if cfg.Copy == nil {
		cfg.Copy = CopyToClipboard
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = brandStyle

	m := Model{
		updates:  updates,
		renderer: cfg.Renderer,
		copy:     cfg.Copy,
		now:      cfg.Now,
		logger:   cfg.Logger,
		spinner:  s,
		logs:     viewport.New(80, minLogHeight),
	}
	m.rerender()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.updates), tickClock())
}

func waitForSnapshot(updates <-chan dashboard.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func tickClock() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logs.Width = msg.Width
		m.logs.Height = max(msg.Height/3, minLogHeight)
		m.ready = true
		m.rerender()
		return m, nil

	case snapshotMsg:
		m.snap = dashboard.Snapshot(msg)
		m.rerender()
		return m, waitForSnapshot(m.updates)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit

	case clockMsg:
		// synthesized log lines carry the render time
		m.rerender()
		return m, tickClock()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.logger.Debug().Err(msg.err).Str("instance", msg.id).Msg("copy to clipboard failed")
			m.copiedID = ""
			return m, nil
		}
		m.copiedID = msg.id
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.moveSelection(-1)
		case "down", "j":
			m.moveSelection(1)
		case "c", "enter":
			return m, m.copySelected()
		case "t":
			m.showTopology = !m.showTopology
		default:
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) rerender() {
	atBottom := m.logs.AtBottom()
	m.tree = m.renderer.Render(m.snap, m.now())

	if m.tree.Dashboard == nil {
		m.logs.SetContent("")
		return
	}
	if n := len(m.tree.Dashboard.Anomalies); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	m.logs.SetContent(renderLogLines(m.tree.Dashboard.Logs.Lines))
	if atBottom {
		m.logs.GotoBottom()
	}
}

func (m *Model) moveSelection(delta int) {
	if m.tree.Dashboard == nil {
		return
	}
	n := len(m.tree.Dashboard.Anomalies)
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.copiedID = ""
}

func (m Model) copySelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || !row.CanCopy {
		return nil
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{id: row.ID, err: copyFn(row.IaCCommand)}
	}
}

func (m Model) selectedRow() (view.Row, bool) {
	if m.tree.Dashboard == nil || m.selected >= len(m.tree.Dashboard.Anomalies) {
		return view.Row{}, false
	}
	return m.tree.Dashboard.Anomalies[m.selected], true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.tree.Kind {
	case view.KindError:
		return errorBoxStyle.Render(m.tree.Error.Title+"\n\n"+m.tree.Error.Message) + "\n" + helpStyle.Render("q quit") + "\n"
	case view.KindDashboard:
		return m.viewDashboard()
	default:
		return m.spinner.View() + " " + view.LoadingMessage + "\n"
	}
}

func (m Model) viewDashboard() string {
	d := m.tree.Dashboard
	var b strings.Builder

	b.WriteString(renderHeader(d.Header))
	b.WriteString("\n\n")
	b.WriteString(renderSummary(d.Summary))
	b.WriteString("\n\n")
	b.WriteString(renderGauge(d.Gauge))
	b.WriteString("\n\n")

	if m.showTopology {
		b.WriteString(sectionStyle.Render("TOPOLOGY"))
		b.WriteString("\n")
		b.WriteString(d.Topology)
		b.WriteString("\n")
	} else {
		b.WriteString(renderAnomalies(d.Anomalies, m.selected, m.copiedID))
		b.WriteString("\n")
	}

	b.WriteString(panelStyle.Render(m.logs.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • c copy fix • t topology • pgup/pgdn scroll log • q quit"))
	b.WriteString("\n")
	return b.String()
}
