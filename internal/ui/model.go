// ABOUTME: Bubbletea model for the metronome TUI
// ABOUTME: Tempo field and start/stop button bound to the engine
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/tick/pkg/metronome"
	"github.com/harperreed/tick/pkg/tempo"
)

const (
	statsInterval = 500 * time.Millisecond
	fieldWidth    = 7
	volumeStep    = 5
)

// Controller is the part of the engine the TUI drives
type Controller interface {
	Toggle() (metronome.PlaybackState, error)
	Retune(input string) tempo.BPM
	CommitDisplayTempo() string
	State() metronome.PlaybackState
	Stats() metronome.Stats
	SetVolume(volume int)
}

// Model represents the TUI state
type Model struct {
	engine Controller

	// Tempo field
	field string
	tempo tempo.BPM

	// Toggle button
	state metronome.PlaybackState
	err   error

	// Output
	volume int

	// Stats
	stats metronome.Stats

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int
}

// commitTempoMsg rewrites the field after a change event has been handled
type commitTempoMsg struct{}

// statsMsg refreshes the loop statistics
type statsMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	startStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 3)

	stopStyle = startStyle.
			Background(lipgloss.Color("203"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return statsTick()
}

func statsTick() tea.Cmd {
	return tea.Tick(statsInterval, func(t time.Time) tea.Msg {
		return statsMsg(t)
	})
}

// commitTempo defers the field rewrite until after the current update
func commitTempo() tea.Cmd {
	return func() tea.Msg {
		return commitTempoMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case commitTempoMsg:
		m.field = m.engine.CommitDisplayTempo()
	case statsMsg:
		m.stats = m.engine.Stats()
		m.state = m.stats.State
		return m, statsTick()
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "space", "s":
		m.toggle()
	case "enter", "tab":
		return m, commitTempo()
	case "up":
		return m.step(tempo.Step)
	case "down":
		return m.step(-tempo.Step)
	case "pgup":
		return m.step(1)
	case "pgdown":
		return m.step(-1)
	case "backspace":
		if len(m.field) > 0 {
			m.setField(m.field[:len(m.field)-1])
		}
	case "ctrl+u":
		m.setField("")
	case "+", "=":
		m.setVolume(m.volume + volumeStep)
	case "-", "_":
		m.setVolume(m.volume - volumeStep)
	case "d":
		m.showDebug = !m.showDebug
	default:
		if isTempoRune(key) && len(m.field) < fieldWidth {
			m.setField(m.field + key)
		}
	}

	return m, nil
}

// setField edits the tempo field and retunes live
func (m *Model) setField(value string) {
	m.field = value
	m.tempo = m.engine.Retune(value)
}

// step nudges the tempo, then commits like a change event
func (m Model) step(delta tempo.BPM) (tea.Model, tea.Cmd) {
	m.setField(tempo.Format(tempo.Clamp(float64(m.tempo + delta))))
	return m, commitTempo()
}

func (m *Model) toggle() {
	state, err := m.engine.Toggle()
	m.state = state
	m.err = err
}

func (m *Model) setVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	m.volume = volume
	m.engine.SetVolume(volume)
}

func isTempoRune(key string) bool {
	if len(key) != 1 {
		return false
	}
	c := key[0]
	return (c >= '0' && c <= '9') || c == '.'
}

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tick"))
	b.WriteString("\n")

	b.WriteString(m.renderField())
	b.WriteString("\n")
	b.WriteString(m.renderButton())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())

	if m.showDebug {
		b.WriteString(m.renderDebug())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("0-9 .:Tempo  ↑/↓:±0.1  PgUp/PgDn:±1  enter:Apply  space:Start/Stop  +/-:Volume  d:Debug  q:Quit"))

	return b.String()
}

func (m Model) renderField() string {
	field := fmt.Sprintf("%-*s", fieldWidth, m.field+"_")
	return lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render("Tempo "),
		fieldStyle.Render(field),
		valueStyle.Render(fmt.Sprintf(" BPM (%s-%s)", tempo.Min, tempo.Max)),
	)
}

func (m Model) renderButton() string {
	label := m.state.ButtonLabel()
	if m.state == metronome.Running {
		return stopStyle.Render(label)
	}
	return startStyle.Render(label)
}

func (m Model) renderStatus() string {
	s := labelStyle.Render("Playing: ") + valueStyle.Render(fmt.Sprintf("%s at %s BPM", m.state, m.tempo)) + "\n"
	s += labelStyle.Render("Volume:  ") + valueStyle.Render(fmt.Sprintf("[%s] %d%%", renderBar(m.volume, 100, 10), m.volume)) + "\n"
	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("Audio unavailable (%v), press space to retry", m.err)) + "\n"
	}
	return s
}

func (m Model) renderDebug() string {
	return valueStyle.Render(fmt.Sprintf("Session: %s\nLoop end: %.4fs  Cycles: %d  Frames: %d\n",
		m.stats.SessionID, m.stats.LoopEnd, m.stats.Cycles, m.stats.FramesRead))
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
