// ABOUTME: Metronome engine owning the loop session and playback state
// ABOUTME: Handles initialize, toggle, live retune and display commit
package metronome

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/tick/pkg/audio/output"
	"github.com/harperreed/tick/pkg/audio/synth"
	"github.com/harperreed/tick/pkg/tempo"
)

var (
	// ErrNotInitialized is returned when the engine is used before Initialize
	ErrNotInitialized = errors.New("metronome not initialized")

	// ErrAlreadyInitialized is returned by a second Initialize
	ErrAlreadyInitialized = errors.New("metronome already initialized")
)

// EngineConfig holds engine configuration
type EngineConfig struct {
	// Device is the audio output (required)
	Device output.Device

	// Store holds the tempo field value (default: tempo.Default)
	Store *tempo.Store

	// OnStateChange is called after a successful toggle
	OnStateChange func(PlaybackState)

	// OnTempoChange is called after every retune with the applied tempo
	OnTempoChange func(tempo.BPM)

	// OnError is called when the device fails a toggle
	OnError func(error)
}

// Stats contains loop statistics
type Stats struct {
	SessionID  uuid.UUID
	State      PlaybackState
	Tempo      tempo.BPM
	LoopEnd    float64
	Cycles     uint64
	FramesRead uint64
}

// Engine is the loop controller
type Engine struct {
	config EngineConfig
	device output.Device
	store  *tempo.Store

	mu      sync.Mutex
	session *LoopSession
	state   PlaybackState
}

// NewEngine creates an engine; nothing touches the device until Initialize
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Device == nil {
		return nil, fmt.Errorf("engine requires an output device")
	}
	if config.Store == nil {
		config.Store = tempo.NewStore(tempo.Default)
	}

	return &Engine{
		config: config,
		device: config.Device,
		store:  config.Store,
		state:  Suspended,
	}, nil
}

// Initialize synthesizes the click, binds the loop session to it and
// starts the device streaming it. The session is started unconditionally;
// audibility follows the device's initial state.
func (e *Engine) Initialize(sampleRate int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrAlreadyInitialized
	}

	buf, err := synth.SynthesizeChecked(sampleRate)
	if err != nil {
		return fmt.Errorf("failed to synthesize click: %w", err)
	}

	session := NewLoopSession(buf, e.store.Tempo().Period())
	format := session.Format()

	if err := e.device.Open(format.SampleRate, format.Channels); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if err := e.device.Start(session); err != nil {
		return fmt.Errorf("failed to start loop: %w", err)
	}

	e.session = session
	e.state = stateOf(e.device.Running())

	log.Printf("Loop session %s started: %dHz, tempo %s BPM, loop end %.4fs, state %s",
		session.ID, sampleRate, e.store.Tempo(), session.LoopEnd(), e.state)

	return nil
}

// Toggle suspends output when running and resumes it otherwise. If the
// device refuses, the state is left unchanged and the call may be retried.
func (e *Engine) Toggle() (PlaybackState, error) {
	e.mu.Lock()

	if e.session == nil {
		e.mu.Unlock()
		return Suspended, ErrNotInitialized
	}

	var err error
	if e.state == Running {
		err = e.device.Suspend()
	} else {
		err = e.device.Resume()
	}

	if err != nil {
		state := e.state
		e.mu.Unlock()
		log.Printf("Toggle failed, staying %s: %v", state, err)
		if e.config.OnError != nil {
			e.config.OnError(err)
		}
		return state, err
	}

	e.state = e.state.Flip()
	state := e.state
	e.mu.Unlock()

	log.Printf("Playback %s", state)
	if e.config.OnStateChange != nil {
		e.config.OnStateChange(state)
	}
	return state, nil
}

// Retune writes raw field input to the store and applies the resulting
// tempo to the loop. Non-numeric input keeps the previous tempo.
func (e *Engine) Retune(input string) tempo.BPM {
	if !e.store.Set(input) {
		log.Printf("Ignoring non-numeric tempo %q", input)
	}
	return e.apply()
}

// RetuneValue is Retune for numeric input. NaN keeps the previous tempo.
func (e *Engine) RetuneValue(v float64) tempo.BPM {
	if !e.store.SetValue(v) {
		log.Printf("Ignoring non-numeric tempo %v", v)
	}
	return e.apply()
}

func (e *Engine) apply() tempo.BPM {
	t := e.store.Tempo()

	e.mu.Lock()
	if e.session != nil {
		e.session.SetLoopEnd(t.Period())
	}
	e.mu.Unlock()

	if e.config.OnTempoChange != nil {
		e.config.OnTempoChange(t)
	}
	return t
}

// CommitDisplayTempo returns the clamped tempo formatted for the field.
// Callers run it after the change event that triggered it has been handled.
func (e *Engine) CommitDisplayTempo() string {
	return tempo.Format(e.store.Tempo())
}

// State returns the current playback state
func (e *Engine) State() PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Tempo returns the tempo currently applied
func (e *Engine) Tempo() tempo.BPM {
	return e.store.Tempo()
}

// Store returns the tempo store the engine reads from
func (e *Engine) Store() *tempo.Store {
	return e.store
}

// LoopEnd returns the live loop end in seconds, or 0 before Initialize
func (e *Engine) LoopEnd() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return 0
	}
	return e.session.LoopEnd()
}

// Session returns the loop session, or nil before Initialize
func (e *Engine) Session() *LoopSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// SetVolume forwards a volume (0-100) to the device
func (e *Engine) SetVolume(volume int) {
	e.device.SetVolume(volume)
}

// Stats returns a snapshot of the loop
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := Stats{
		State: e.state,
		Tempo: e.store.Tempo(),
	}
	if e.session != nil {
		stats.SessionID = e.session.ID
		stats.LoopEnd = e.session.LoopEnd()
		stats.Cycles = e.session.Cycles()
		stats.FramesRead = e.session.FramesRead()
	}
	return stats
}

// Close releases the output device
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Suspended
	if err := e.device.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
