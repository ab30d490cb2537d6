package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sable/internal/driver"
)

func newTestModel(files ...string) (*progressModel, chan driver.Event) {
	ch := make(chan driver.Event, 8)
	return NewProgressModel("sable diag", files, ch).(*progressModel), ch
}

func TestProgressModel_AppliesEvents(t *testing.T) {
	m, _ := newTestModel("a.sb", "b.sb")

	m.Update(eventMsg{File: "a.sb", Stage: driver.StageLex, Status: driver.StatusWorking})
	if m.rows[0].status != "lexing" {
		t.Errorf("a.sb status = %q", m.rows[0].status)
	}
	m.Update(eventMsg{File: "a.sb", Stage: driver.StageLex, Status: driver.StatusDone})
	m.Update(eventMsg{File: "b.sb", Stage: driver.StageLex, Status: driver.StatusError})
	m.Update(eventMsg{File: "unknown.sb", Stage: driver.StageLex, Status: driver.StatusDone})

	if m.rows[0].status != "done" || m.rows[1].status != "error" {
		t.Errorf("statuses = %q, %q", m.rows[0].status, m.rows[1].status)
	}
	if p := m.percent(); p != 1.0 {
		t.Errorf("percent = %v, want 1", p)
	}

	m.Update(eventMsg{Stage: driver.StageLex, Status: driver.StatusDone})
	if m.stageLabel != "done" {
		t.Errorf("stage label = %q", m.stageLabel)
	}
}

func TestProgressModel_Percent(t *testing.T) {
	m, _ := newTestModel("a.sb", "b.sb")
	m.apply(driver.Event{File: "a.sb", Stage: driver.StageLex, Status: driver.StatusWorking})
	if p := m.percent(); p != 0.25 {
		t.Errorf("percent = %v, want 0.25", p)
	}
	m.apply(driver.Event{File: "b.sb", Stage: driver.StageLex, Status: driver.StatusCached})
	if p := m.percent(); p != 0.75 {
		t.Errorf("percent = %v, want 0.75", p)
	}
}

func TestProgressModel_DoneQuits(t *testing.T) {
	m, ch := newTestModel("a.sb")
	close(ch)
	msg := m.next()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel must yield doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("done must return quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "done: sable diag") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestProgressModel_View(t *testing.T) {
	m, _ := newTestModel("src/main.sb")
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	view := m.View()
	for _, want := range []string{"sable diag", "queued", "src/main.sb"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	empty, _ := newTestModel()
	if empty.View() != "" {
		t.Error("empty model must render nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 3, "abc"},
		{"日本語テキスト", 9, "日本語..."},
		{"any", 0, "any"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
