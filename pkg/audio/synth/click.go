// ABOUTME: Decaying sine click generator
// ABOUTME: Deterministic, allocates a fresh buffer on every call
package synth

import (
	"errors"
	"math"
	"time"
)

const (
	// ToneFrequency is the pitch of the click in Hz
	ToneFrequency = 330.0

	// ClickDivisor sets the click length to sampleRate/ClickDivisor frames (20ms)
	ClickDivisor = 50

	// CapacitySeconds is the buffer length, the longest loop period
	CapacitySeconds = 2
)

// ErrInvalidSampleRate is returned for non-positive sample rates
var ErrInvalidSampleRate = errors.New("sample rate must be positive")

// ClickBuffer is an immutable mono buffer holding one click followed by silence
type ClickBuffer struct {
	samples     []float64
	sampleRate  int
	clickFrames int
}

// Synthesize renders the click at the given sample rate. A non-positive rate
// yields an empty buffer; use SynthesizeChecked to get an error instead.
func Synthesize(sampleRate int) *ClickBuffer {
	if sampleRate <= 0 {
		return &ClickBuffer{}
	}

	samples := make([]float64, CapacitySeconds*sampleRate)
	clickFrames := sampleRate / ClickDivisor

	phase := 0.0
	amp := 1.0
	step := 2 * math.Pi * ToneFrequency / float64(sampleRate)
	decay := 1.0 / float64(clickFrames)

	for i := 0; i < clickFrames; i++ {
		samples[i] = math.Sin(phase) * amp
		phase += step
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}
		amp -= decay
	}

	return &ClickBuffer{
		samples:     samples,
		sampleRate:  sampleRate,
		clickFrames: clickFrames,
	}
}

// SynthesizeChecked is Synthesize with sample rate validation
func SynthesizeChecked(sampleRate int) (*ClickBuffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	return Synthesize(sampleRate), nil
}

// Len returns the buffer length in frames
func (b *ClickBuffer) Len() int { return len(b.samples) }

// At returns the sample at frame i
func (b *ClickBuffer) At(i int) float64 { return b.samples[i] }

// SampleRate returns the rate the buffer was rendered at
func (b *ClickBuffer) SampleRate() int { return b.sampleRate }

// ClickFrames returns the number of frames holding the audible click
func (b *ClickBuffer) ClickFrames() int { return b.clickFrames }

// Duration returns the buffer capacity as time
func (b *ClickBuffer) Duration() time.Duration {
	if b.sampleRate == 0 {
		return 0
	}
	return time.Duration(len(b.samples)) * time.Second / time.Duration(b.sampleRate)
}

// Samples returns a copy of the buffer contents
func (b *ClickBuffer) Samples() []float64 {
	out := make([]float64, len(b.samples))
	copy(out, b.samples)
	return out
}
