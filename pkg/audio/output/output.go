// ABOUTME: Audio output interface definition
// ABOUTME: A realtime sink that streams a reader and can be suspended
package output

import (
	"errors"
	"io"
)

// ErrNotOpen is returned when the device is used before Open
var ErrNotOpen = errors.New("output not initialized")

// Device represents a realtime audio output. Once started it pulls from its
// source continuously; Suspend and Resume gate what reaches the speakers
// without stopping the source.
type Device interface {
	// Open initializes the output device for float32 samples
	Open(sampleRate, channels int) error

	// Start begins streaming src until Close
	Start(src io.Reader) error

	// Suspend silences output
	Suspend() error

	// Resume restores output
	Resume() error

	// Running reports whether output is audible
	Running() bool

	// SetVolume sets the volume (0-100)
	SetVolume(volume int)

	// Close releases output resources
	Close() error
}

// ClampVolume limits a volume to 0-100
func ClampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int) float64 {
	return float64(ClampVolume(volume)) / 100.0
}
