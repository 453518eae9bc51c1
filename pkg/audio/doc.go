// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and float32 sample encoding helpers
// Package audio provides fundamental audio types shared by the synthesizer,
// the loop session and the output device.
//
// Samples are carried as float64 in [-1, 1] and encoded as float32
// little-endian on the wire, which is what the oto device is opened with.
//
// Example:
//
//	format := audio.Mono(48000)
//	frames := format.FramesFor(0.5) // 24000
//	audio.PutFloat32(buf[0:4], 0.25)
package audio
