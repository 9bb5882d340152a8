// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, message handling, and state transitions
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // Control is optional for testing

	if model.streaming {
		t.Error("expected streaming to be false initially")
	}
	if model.showDebug {
		t.Error("expected showDebug to be false initially")
	}
}

func TestStatusMsgStreaming(t *testing.T) {
	model := NewModel(nil)

	streaming := true
	model.applyStatus(StatusMsg{
		Streaming: &streaming,
		SinkDesc:  "rtmp://example.test/app/",
	})

	if !model.streaming {
		t.Error("expected streaming to be true after status update")
	}
	if model.sinkDesc != "rtmp://example.test/app/" {
		t.Errorf("unexpected sink description %q", model.sinkDesc)
	}
}

func TestStatusMsgFormat(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Width: 640, Height: 480, FPS: 30})

	if model.width != 640 || model.height != 480 || model.fps != 30 {
		t.Errorf("format not applied: %dx%d @ %g", model.width, model.height, model.fps)
	}
}

func TestStatusMsgStats(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		Submitted: 10,
		Emitted:   8,
		Repeated:  3,
		Dropped:   1,
		Pending:   2,
	})

	if model.emitted != 8 || model.repeated != 3 || model.dropped != 1 {
		t.Error("stats not applied")
	}
	if model.pending != 2 {
		t.Errorf("pending = %d, want 2", model.pending)
	}
}

func TestViewBeforeResize(t *testing.T) {
	model := NewModel(nil)
	if model.View() != "Loading..." {
		t.Error("expected loading placeholder before first WindowSizeMsg")
	}
}

func TestViewAfterResize(t *testing.T) {
	model := NewModel(nil)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := updated.(Model)

	streaming := true
	m.applyStatus(StatusMsg{
		Streaming: &streaming,
		SinkDesc:  "rtmp://x/",
		Width:     640, Height: 480, FPS: 30,
	})

	view := m.View()
	if !strings.Contains(view, "Framecast") {
		t.Error("view missing header")
	}
	if !strings.Contains(view, "640x480") {
		t.Error("view missing format")
	}
}

func TestDebugToggle(t *testing.T) {
	model := NewModel(nil)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m := updated.(Model)

	if !m.showDebug {
		t.Error("expected d to toggle debug on")
	}
}

func TestQuitSignalsControl(t *testing.T) {
	control := NewControl()
	model := NewModel(control)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-control.Quit:
	default:
		t.Error("expected quit signal on control channel")
	}
}
