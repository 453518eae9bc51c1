// ABOUTME: Metronome engine package
// ABOUTME: Loops the synthesized click at a tempo and retunes it live
// Package metronome turns a tempo into a looping click.
//
// An Engine owns exactly one LoopSession, created by Initialize and kept
// for the engine's lifetime. The session streams the click buffer to the
// output device and wraps at its loop end, which is the only thing a tempo
// change touches. A retune never restarts the loop: the cycle in progress
// finishes at its old length and the next cycle uses the new one.
//
// Start and stop suspend and resume the output device. The loop keeps its
// position and loop end while suspended, so a tempo chosen while stopped is
// simply in effect when playback resumes.
//
// Example:
//
//	store := tempo.NewStore(tempo.Default)
//	engine, err := metronome.NewEngine(metronome.EngineConfig{
//	    Device: output.NewOto(),
//	    Store:  store,
//	})
//	err = engine.Initialize(48000)
//	state, err := engine.Toggle() // Running
//	engine.Retune("140")
package metronome
