// Package tui is the interactive front end: it follows a background analysis
// run through its event channel and shows live progress and counts.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/convlog/internal/domain"
	"github.com/vburojevic/convlog/internal/output"
	"github.com/vburojevic/convlog/internal/runner"
)

const (
	activityCapacity = 500
	headerHeight     = 5
	footerHeight     = 1
)

var detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model represents the TUI state
type Model struct {
	title    string
	events   <-chan runner.Event
	cancel   func()
	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model
	activity *RingBuffer[string]
	width    int
	height   int
	ready    bool
	follow   bool
	stats    Stats
	current  string
	summary  *domain.Summary
	finished bool
	canceled bool
}

// Stats holds run progress as reported by events
type Stats struct {
	Files        int
	FilesDone    int
	FileErrors   int
	Entries      int
	Counts       map[domain.Level]int
	Reports      int
	ReportErrors int
}

// EventMsg carries one runner event
type EventMsg runner.Event

// DoneMsg signals that the event channel was closed
type DoneMsg struct{}

// New creates a TUI model reading events until the channel is closed. cancel
// is called when the user quits before the run has finished.
func New(title string, events <-chan runner.Event, cancel func()) Model {
	if cancel == nil {
		cancel = func() {}
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = output.Styles.Title

	return Model{
		title:    title,
		events:   events,
		cancel:   cancel,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
		activity: NewRingBuffer[string](activityCapacity),
		follow:   true,
		stats:    Stats{Counts: make(map[domain.Level]int)},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		m.spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished {
				m.canceled = true
				m.cancel()
			}
			return m, tea.Quit
		case "f":
			m.follow = !m.follow
			if m.follow && m.ready {
				m.viewport.GotoBottom()
			}
		case "c":
			m.activity.Clear()
			m.updateViewport()
		case "g", "home":
			m.viewport.GotoTop()
		case "G", "end":
			m.viewport.GotoBottom()
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-4, 10)

		viewportHeight := max(m.height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateViewport()

	case EventMsg:
		m.apply(runner.Event(msg))
		m.updateViewport()
		cmds = append(cmds, waitForEvent(m.events))

	case DoneMsg:
		m.finished = true
		if m.summary == nil && !m.canceled {
			m.activity.Push(detailStyle.Render("run stopped before completion"))
			m.updateViewport()
		}

	case spinner.TickMsg:
		if !m.finished {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// apply folds one event into the model
func (m *Model) apply(ev runner.Event) {
	switch ev.Type {
	case runner.EventFilesFound:
		m.stats.Files = ev.FileCount
		m.activity.Push(fmt.Sprintf("found %d log file(s)", ev.FileCount))
	case runner.EventFileStarted:
		m.current = ev.Path
	case runner.EventProgress:
		m.updateCounts(ev)
	case runner.EventFileDone:
		m.stats.FilesDone++
		m.updateCounts(ev)
		m.activity.Push(fmt.Sprintf("%s %s %s",
			output.Styles.Success.Render("✓"), filepath.Base(ev.Path), detailStyle.Render(fmt.Sprintf("(%d lines)", ev.Lines))))
	case runner.EventFileFailed:
		m.stats.FilesDone++
		m.stats.FileErrors++
		m.activity.Push(fmt.Sprintf("%s %s: %v", output.Styles.Danger.Render("✗"), ev.Path, ev.Err))
	case runner.EventReportWritten:
		m.stats.Reports++
		m.activity.Push(fmt.Sprintf("%s %s %s report: %s",
			output.Styles.Success.Render("→"), ev.Format, ev.Kind, output.Styles.Path.Render(ev.Path)))
	case runner.EventReportFailed:
		m.stats.ReportErrors++
		m.activity.Push(fmt.Sprintf("%s %v", output.Styles.Danger.Render("✗"), ev.Err))
	case runner.EventCompleted:
		m.summary = ev.Summary
		m.current = ""
		if ev.Summary != nil {
			m.stats.Entries = ev.Summary.TotalEntries
			for _, level := range domain.Levels {
				m.stats.Counts[level] = ev.Summary.Count(level)
			}
			m.activity.Push(output.StatusStyle(*ev.Summary).Render(output.StatusText(*ev.Summary)))
		}
	}
}

func (m *Model) updateCounts(ev runner.Event) {
	m.stats.Entries = ev.Entries
	for level, n := range ev.Counts {
		m.stats.Counts[level] = n
	}
}

func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.activity.GetAll(), "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m Model) renderHeader() string {
	titleStyle := output.Styles.StatusBar.Bold(true).Width(m.width)
	header := titleStyle.Render("convlog: " + m.title)

	var status string
	switch {
	case m.canceled:
		status = output.Styles.Caution.Render("cancelling...")
	case m.finished:
		status = output.Styles.Success.Render("done")
	case m.current != "":
		status = fmt.Sprintf("%s scanning %d/%d %s", m.spinner.View(),
			min(m.stats.FilesDone+1, m.stats.Files), m.stats.Files, filepath.Base(m.current))
	default:
		status = m.spinner.View() + " starting"
	}

	ratio := 0.0
	if m.stats.Files > 0 {
		ratio = float64(m.stats.FilesDone) / float64(m.stats.Files)
	}

	counts := []string{fmt.Sprintf("Entries: %d", m.stats.Entries)}
	for _, level := range domain.Levels {
		counts = append(counts, fmt.Sprintf("%s %d", output.LevelIndicator(level), m.stats.Counts[level]))
	}
	if m.stats.FileErrors > 0 {
		counts = append(counts, output.Styles.Danger.Render(fmt.Sprintf("Skipped: %d", m.stats.FileErrors)))
	}

	return header + "\n" + status + "\n" + m.progress.ViewAs(ratio) + "\n" + strings.Join(counts, " | ") + "\n"
}

func (m Model) renderFooter() string {
	help := "q:quit f:follow c:clear g/G:top/bottom j/k:scroll"
	if !m.finished {
		help = "q:cancel " + help[len("q:quit "):]
	}
	// newest activity stays visible while follow is off
	if latest := m.activity.GetLast(1); !m.follow && len(latest) == 1 {
		help = "latest: " + latest[0] + "  " + help
	}
	return output.Styles.Help.Width(m.width).MaxHeight(footerHeight).Render(help)
}

// Stats returns the progress seen so far
func (m Model) Stats() Stats { return m.stats }

// Finished reports whether the event channel has been closed
func (m Model) Finished() bool { return m.finished }

// Canceled reports whether the user quit before the run finished
func (m Model) Canceled() bool { return m.canceled }

// waitForEvent creates a command that waits for the next runner event
func waitForEvent(ch <-chan runner.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return DoneMsg{}
		}
		return EventMsg(ev)
	}
}
