// ABOUTME: Playback state of the metronome output
// ABOUTME: Suspended or Running, with the toggle button label for each
package metronome

// PlaybackState describes whether the click is audible
type PlaybackState int

const (
	// Suspended means output is silenced
	Suspended PlaybackState = iota
	// Running means output is audible
	Running
)

func (s PlaybackState) String() string {
	if s == Running {
		return "running"
	}
	return "suspended"
}

// ButtonLabel is the action the toggle button offers in this state
func (s PlaybackState) ButtonLabel() string {
	if s == Running {
		return "stop"
	}
	return "start"
}

// Flip returns the opposite state
func (s PlaybackState) Flip() PlaybackState {
	if s == Running {
		return Suspended
	}
	return Running
}

func stateOf(running bool) PlaybackState {
	if running {
		return Running
	}
	return Suspended
}
