// ABOUTME: Click synthesizer package
// ABOUTME: Produces the decaying sine tick used as the metronome beat
// Package synth generates the metronome click procedurally.
//
// The click is a 330Hz sine with a linear decay lasting 1/50th of a second,
// written at the start of a buffer that holds two seconds of audio. The
// silent tail is what lets one buffer serve every loop period from 0.2s
// (300 BPM) to 2s (30 BPM).
//
// Example:
//
//	buf := synth.Synthesize(48000)
//	buf.Len()         // 96000
//	buf.ClickFrames() // 960
package synth
