// ABOUTME: Tests for the metronome engine
// ABOUTME: Covers initialize, toggle, retune clamping and invalid input
package metronome

import (
	"errors"
	"math"
	"testing"

	"github.com/harperreed/tick/pkg/audio/output/outputtest"
	"github.com/harperreed/tick/pkg/tempo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, running bool) (*Engine, *outputtest.Fake) {
	t.Helper()
	dev := outputtest.NewFake(running)
	e, err := NewEngine(EngineConfig{Device: dev})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(48000))
	return e, dev
}

func TestNewEngineRequiresDevice(t *testing.T) {
	_, err := NewEngine(EngineConfig{})
	assert.Error(t, err)
}

func TestInitialize(t *testing.T) {
	e, dev := newTestEngine(t, false)

	assert.Equal(t, 48000, dev.SampleRate)
	assert.Equal(t, 1, dev.Channels)
	assert.Same(t, e.Session(), dev.Source)
	assert.Equal(t, Suspended, e.State())
	assert.Equal(t, tempo.Default, e.Tempo())
	assert.Equal(t, 96000, e.Session().Buffer().Len())
}

func TestInitializeFollowsDeviceState(t *testing.T) {
	e, _ := newTestEngine(t, true)
	assert.Equal(t, Running, e.State())
}

func TestInitializeTwice(t *testing.T) {
	e, _ := newTestEngine(t, false)
	session := e.Session()

	assert.ErrorIs(t, e.Initialize(48000), ErrAlreadyInitialized)
	assert.Same(t, session, e.Session())
}

func TestInitializeErrors(t *testing.T) {
	dev := outputtest.NewFake(false)
	e, err := NewEngine(EngineConfig{Device: dev})
	require.NoError(t, err)
	assert.Error(t, e.Initialize(0))
	assert.Nil(t, e.Session())

	openErr := errors.New("no audio device")
	dev.OpenErr = openErr
	err = e.Initialize(48000)
	assert.ErrorIs(t, err, openErr)
	assert.Nil(t, e.Session())
}

func TestDefaultTempoLoopEnd(t *testing.T) {
	e, _ := newTestEngine(t, false)

	assert.InDelta(t, 0.4511, tempo.Default.Period(), 1e-4)
	assert.InDelta(t, tempo.Default.Period(), e.LoopEnd(), 1e-9)

	e.Retune("133")
	assert.InDelta(t, 60.0/133.0, e.LoopEnd(), 1e-9)
}

func TestToggle(t *testing.T) {
	e, dev := newTestEngine(t, false)

	state, err := e.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Running, state)
	assert.True(t, dev.Running())

	state, err = e.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Suspended, state)
	assert.False(t, dev.Running())

	assert.Equal(t, 1, dev.Resumes)
	assert.Equal(t, 1, dev.Suspends)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	for _, running := range []bool{false, true} {
		e, _ := newTestEngine(t, running)
		original := e.State()

		_, err := e.Toggle()
		require.NoError(t, err)
		assert.Equal(t, original.Flip(), e.State())

		_, err = e.Toggle()
		require.NoError(t, err)
		assert.Equal(t, original, e.State())
	}
}

func TestToggleFailureIsRetryable(t *testing.T) {
	var errs []error
	dev := outputtest.NewFake(false)
	e, err := NewEngine(EngineConfig{
		Device:  dev,
		OnError: func(err error) { errs = append(errs, err) },
	})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(48000))

	dev.FailNext(nil)
	state, err := e.Toggle()
	assert.ErrorIs(t, err, outputtest.ErrInjected)
	assert.Equal(t, Suspended, state)
	assert.Equal(t, Suspended, e.State())
	assert.Len(t, errs, 1)

	state, err = e.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Running, state)
}

func TestToggleBeforeInitialize(t *testing.T) {
	e, err := NewEngine(EngineConfig{Device: outputtest.NewFake(false)})
	require.NoError(t, err)

	_, err = e.Toggle()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRetuneClamps(t *testing.T) {
	e, _ := newTestEngine(t, false)

	e.Retune("300")
	at300 := e.LoopEnd()
	e.Retune("400")
	assert.Equal(t, at300, e.LoopEnd())
	assert.InDelta(t, 0.2, e.LoopEnd(), 1e-12)

	e.Retune("30")
	at30 := e.LoopEnd()
	e.Retune("0")
	assert.Equal(t, at30, e.LoopEnd())
	assert.InDelta(t, 2.0, e.LoopEnd(), 1e-12)

	assert.Equal(t, tempo.Max, e.RetuneValue(1000))
	assert.Equal(t, tempo.Min, e.RetuneValue(-5))
}

func TestRetuneInvalidKeepsPeriod(t *testing.T) {
	e, _ := newTestEngine(t, false)
	e.Retune("90")
	before := e.LoopEnd()

	assert.Equal(t, tempo.BPM(90), e.Retune("abc"))
	assert.Equal(t, before, e.LoopEnd())

	assert.Equal(t, tempo.BPM(90), e.RetuneValue(math.NaN()))
	assert.Equal(t, before, e.LoopEnd())

	e.Retune("")
	assert.Equal(t, before, e.LoopEnd())
	assert.False(t, math.IsNaN(e.LoopEnd()))
}

func TestRetuneDoesNotChangePlaybackState(t *testing.T) {
	e, dev := newTestEngine(t, false)

	e.Retune("200")
	assert.Equal(t, Suspended, e.State())
	assert.Equal(t, 0, dev.Resumes+dev.Suspends)

	_, err := e.Toggle()
	require.NoError(t, err)
	e.Retune("60")
	assert.Equal(t, Running, e.State())
	assert.InDelta(t, 1.0, e.LoopEnd(), 1e-12)
}

func TestRetuneWhileSuspendedAppliesOnResume(t *testing.T) {
	e, dev := newTestEngine(t, false)

	_, err := dev.Pull(4 * 100)
	require.NoError(t, err)

	e.Retune("300")
	_, err = e.Toggle()
	require.NoError(t, err)

	assert.Equal(t, 9600, e.Session().LoopFrames())
}

func TestRetuneBeforeInitialize(t *testing.T) {
	store := tempo.NewStore(tempo.Default)
	e, err := NewEngine(EngineConfig{Device: outputtest.NewFake(false), Store: store})
	require.NoError(t, err)

	e.Retune("60")
	assert.Equal(t, 0.0, e.LoopEnd())

	require.NoError(t, e.Initialize(48000))
	assert.InDelta(t, 1.0, e.LoopEnd(), 1e-12)
}

func TestRetuneOrderAndCallbacks(t *testing.T) {
	var seen []tempo.BPM
	dev := outputtest.NewFake(false)
	e, err := NewEngine(EngineConfig{
		Device:        dev,
		OnTempoChange: func(b tempo.BPM) { seen = append(seen, b) },
	})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(48000))

	for _, in := range []string{"100", "101", "1000", "x", "50"} {
		e.Retune(in)
	}

	assert.Equal(t, []tempo.BPM{100, 101, 300, 300, 50}, seen)
	assert.InDelta(t, 1.2, e.LoopEnd(), 1e-12)
}

func TestCommitDisplayTempo(t *testing.T) {
	e, _ := newTestEngine(t, false)

	e.Retune("450")
	assert.Equal(t, "300", e.CommitDisplayTempo())

	e.Retune("12")
	assert.Equal(t, "30", e.CommitDisplayTempo())

	e.Retune("88.8")
	e.Retune("junk")
	assert.Equal(t, "88.8", e.CommitDisplayTempo())
}

func TestOnStateChange(t *testing.T) {
	var states []PlaybackState
	dev := outputtest.NewFake(false)
	e, err := NewEngine(EngineConfig{
		Device:        dev,
		OnStateChange: func(s PlaybackState) { states = append(states, s) },
	})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(48000))

	_, _ = e.Toggle()
	_, _ = e.Toggle()
	assert.Equal(t, []PlaybackState{Running, Suspended}, states)
}

func TestStatsAndClose(t *testing.T) {
	e, dev := newTestEngine(t, false)

	_, err := dev.Pull(4 * 48000)
	require.NoError(t, err)

	stats := e.Stats()
	assert.Equal(t, e.Session().ID, stats.SessionID)
	assert.Equal(t, uint64(48000), stats.FramesRead)
	assert.Equal(t, uint64(2), stats.Cycles)
	assert.Equal(t, tempo.Default, stats.Tempo)

	e.SetVolume(40)
	assert.Equal(t, 40, dev.Volume)

	require.NoError(t, e.Close())
	assert.True(t, dev.Closed())
}

func TestPlaybackStateLabels(t *testing.T) {
	assert.Equal(t, "start", Suspended.ButtonLabel())
	assert.Equal(t, "stop", Running.ButtonLabel())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "suspended", Suspended.String())
}
