// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams float32 PCM and gates audibility with context suspend/resume
package output

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultBufferSize keeps latency between a toggle and the speakers low
const DefaultBufferSize = 40 * time.Millisecond

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	player     *oto.Player
	sampleRate int
	channels   int
	volume     int
	running    bool
	autostart  bool
	bufferSize time.Duration
}

// OtoOption configures an Oto output
type OtoOption func(*Oto)

// WithAutostart leaves the context running after Open instead of suspending
// it until the first Resume
func WithAutostart(autostart bool) OtoOption {
	return func(o *Oto) { o.autostart = autostart }
}

// WithBufferSize sets the device buffer length
func WithBufferSize(d time.Duration) OtoOption {
	return func(o *Oto) { o.bufferSize = d }
}

// NewOto creates a new Oto output
func NewOto(opts ...OtoOption) *Oto {
	o := &Oto{
		volume:     100,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	// oto only allows one context per process
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Printf("Warning: format change detected (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   o.bufferSize,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.running = true

	if !o.autostart {
		if err := ctx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend new context: %w", err)
		}
		o.running = false
	}

	log.Printf("Audio output initialized: %dHz, %d channels, running=%v", sampleRate, channels, o.running)

	return nil
}

// Start creates the persistent player reading from src
func (o *Oto) Start(src io.Reader) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		return ErrNotOpen
	}
	if o.player != nil {
		return fmt.Errorf("output already started")
	}

	o.player = o.otoCtx.NewPlayer(src)
	o.player.SetVolume(getVolumeMultiplier(o.volume))
	o.player.Play()

	return nil
}

// Suspend silences output by suspending the context
func (o *Oto) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		return ErrNotOpen
	}
	if err := o.otoCtx.Suspend(); err != nil {
		return fmt.Errorf("suspend failed: %w", err)
	}
	o.running = false
	return nil
}

// Resume restores output
func (o *Oto) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		return ErrNotOpen
	}
	if err := o.otoCtx.Err(); err != nil {
		return fmt.Errorf("audio context failed: %w", err)
	}
	if err := o.otoCtx.Resume(); err != nil {
		return fmt.Errorf("resume failed: %w", err)
	}
	o.running = true
	return nil
}

// Running reports whether the context is producing sound
func (o *Oto) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.volume = ClampVolume(volume)
	if o.player != nil {
		o.player.SetVolume(getVolumeMultiplier(o.volume))
	}
	log.Printf("Volume set to %d", o.volume)
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var err error
	if o.player != nil {
		err = o.player.Close()
		o.player = nil
	}
	if o.otoCtx != nil {
		if serr := o.otoCtx.Suspend(); serr != nil && err == nil {
			err = serr
		}
		o.running = false
	}
	return err
}
