// Package ui renders live progress of directory runs in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sable/internal/driver"
)

const statusWidth = 12

// ход работы над файлом, пока стадия не завершена
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:   0.1,
	driver.StageLex:    0.5,
	driver.StageCoerce: 0.8,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:   "loading",
	driver.StageLex:    "lexing",
	driver.StageCoerce: "coercing",
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

type row struct {
	path   string
	status string
	stage  driver.Stage
}

// finished reports whether the row no longer moves.
func (r row) finished() bool {
	switch r.status {
	case "done", "cached", "error":
		return true
	}
	return false
}

func (r row) weight() float64 {
	if r.finished() {
		return 1
	}
	return stageWeight[r.stage]
}

func (r row) style() lipgloss.Style {
	switch {
	case r.status == "error":
		return errStyle
	case r.finished():
		return okStyle
	case r.status == "queued":
		return idleStyle
	}
	return busyStyle
}

type progressModel struct {
	title      string
	events     <-chan driver.Event
	spinner    spinner.Model
	bar        progress.Model
	rows       []row
	byPath     map[string]int
	stageLabel string
	width      int
	done       bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows one row per file
// and an overall bar, fed by events until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]row, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = row{path: f, status: "queued"}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next blocks on the event channel; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	}
	return m, cmd
}

func label(ev driver.Event) string {
	if ev.Status == driver.StatusWorking {
		return stageVerb[ev.Stage]
	}
	return string(ev.Status)
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	l := label(ev)
	if l == "" {
		return nil
	}
	if ev.File == "" {
		m.stageLabel = l
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	m.rows[i].status, m.rows[i].stage = l, ev.Stage
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	head := m.title
	if m.stageLabel != "" {
		head += " (" + m.stageLabel + ")"
	}
	if m.done {
		head = "done: " + head
	} else {
		head = m.spinner.View() + " " + head
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(head) + "\n\n")
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, r := range m.rows {
		status := r.style().Render(fmt.Sprintf("%*s", statusWidth, r.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(r.path, nameWidth))
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate cuts value to width display cells, with "..." when there is room.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= 3 {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
