// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the metronome UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel creates a new TUI model showing the engine's current tempo
func NewModel(engine Controller, volume int) Model {
	return Model{
		engine: engine,
		field:  engine.CommitDisplayTempo(),
		tempo:  engine.Stats().Tempo,
		state:  engine.State(),
		volume: volume,
	}
}

// Run starts the TUI and blocks until the user quits
func Run(engine Controller, volume int) error {
	p := tea.NewProgram(NewModel(engine, volume), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
