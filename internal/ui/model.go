// ABOUTME: Bubbletea model for the streamer TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Sink
	streaming bool
	sinkDesc  string

	// Stream format
	width  int
	height int
	fps    float64

	// Scheduler stats
	submitted int64
	emitted   int64
	repeated  int64
	dropped   int64
	pending   int

	// Ingest
	producers int

	// Debug
	showDebug bool

	control *Control

	// Dimensions
	termWidth  int
	termHeight int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.termWidth == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders sink status
func (m Model) renderHeader() string {
	status := "Sink stopped"
	if m.streaming {
		status = fmt.Sprintf("Streaming to %s", m.sinkDesc)
	}

	return fmt.Sprintf(`┌─ Framecast ──────────────────────────────────────────┐
│ Status: %-44s │
├──────────────────────────────────────────────────────┤
`, truncate(status, 44))
}

// renderStreamInfo renders the output format
func (m Model) renderStreamInfo() string {
	if m.width == 0 {
		return "│ No stream                                            │\n"
	}

	format := fmt.Sprintf("%dx%d rgb24 @ %g fps", m.width, m.height, m.fps)
	return fmt.Sprintf("│ Format: %-44s │\n", format)
}

// renderStats renders scheduler statistics
func (m Model) renderStats() string {
	counters := fmt.Sprintf("in %d  out %d  repeat %d  drop %d",
		m.submitted, m.emitted, m.repeated, m.dropped)
	depth := fmt.Sprintf("pending %d  producers %d", m.pending, m.producers)

	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Frames: %-44s │
│ Queue:  %-44s │
`, counters, depth)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	term := fmt.Sprintf("terminal %dx%d", m.termWidth, m.termHeight)
	return fmt.Sprintf("│ DEBUG:  %-44s │\n", term)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.control != nil {
			select {
			case m.control.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Streaming != nil {
		m.streaming = *msg.Streaming
	}
	if msg.SinkDesc != "" {
		m.sinkDesc = msg.SinkDesc
	}
	if msg.Width != 0 {
		m.width = msg.Width
		m.height = msg.Height
		m.fps = msg.FPS
	}
	if msg.Submitted != 0 || msg.Emitted != 0 || msg.Repeated != 0 {
		m.submitted = msg.Submitted
		m.emitted = msg.Emitted
		m.repeated = msg.Repeated
		m.dropped = msg.Dropped
		m.pending = msg.Pending
	}
	if msg.Producers != 0 {
		m.producers = msg.Producers
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Streaming *bool
	SinkDesc  string
	Width     int
	Height    int
	FPS       float64
	Submitted int64
	Emitted   int64
	Repeated  int64
	Dropped   int64
	Pending   int
	Producers int
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
