// ABOUTME: Audio type definitions
// ABOUTME: Defines the output format and float sample encoding
package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	// DefaultSampleRate is used when no rate is configured
	DefaultSampleRate = 48000

	// BytesPerSample is the size of one float32 sample on the wire
	BytesPerSample = 4
)

// Format describes the stream handed to the output device
type Format struct {
	SampleRate int
	Channels   int
}

// Mono returns a single-channel format at the given rate
func Mono(sampleRate int) Format {
	return Format{SampleRate: sampleRate, Channels: 1}
}

// FrameSize returns the number of bytes per frame
func (f Format) FrameSize() int {
	return f.Channels * BytesPerSample
}

// FramesFor converts a duration in seconds to a whole number of frames
func (f Format) FramesFor(seconds float64) int {
	return int(math.Round(seconds * float64(f.SampleRate)))
}

// Duration converts a frame count to wall-clock time
func (f Format) Duration(frames int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// PutFloat32 writes a sample as float32 little-endian, clipping to [-1, 1]
func PutFloat32(dst []byte, sample float64) {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(sample)))
}

// Float32At reads back a float32 little-endian sample
func Float32At(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}
