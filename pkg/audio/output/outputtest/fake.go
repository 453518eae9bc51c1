// ABOUTME: In-memory output device for tests
// ABOUTME: Records calls and lets tests pull audio from the started source
package outputtest

import (
	"errors"
	"io"
	"sync"

	"github.com/harperreed/tick/pkg/audio/output"
)

// ErrInjected is the default failure returned when FailNext is set
var ErrInjected = errors.New("injected device failure")

// Fake is a Device that never touches hardware
type Fake struct {
	mu         sync.Mutex
	SampleRate int
	Channels   int
	Source     io.Reader
	Volume     int
	running    bool
	opened     bool
	closed     bool
	failNext   error
	OpenErr    error
	Suspends   int
	Resumes    int
}

// NewFake returns a fake device whose initial state after Open is running
func NewFake(running bool) *Fake {
	return &Fake{running: running, Volume: 100}
}

// FailNext makes the next Suspend or Resume return err
func (f *Fake) FailNext(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	f.failNext = err
}

func (f *Fake) Open(sampleRate, channels int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.SampleRate = sampleRate
	f.Channels = channels
	f.opened = true
	return nil
}

func (f *Fake) Start(src io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.opened {
		return output.ErrNotOpen
	}
	f.Source = src
	return nil
}

func (f *Fake) Suspend() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	f.Suspends++
	f.running = false
	return nil
}

func (f *Fake) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	f.Resumes++
	f.running = true
	return nil
}

func (f *Fake) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *Fake) SetVolume(volume int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Volume = output.ClampVolume(volume)
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.running = false
	return nil
}

// Closed reports whether Close was called
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Pull reads n bytes from the started source
func (f *Fake) Pull(n int) ([]byte, error) {
	f.mu.Lock()
	src := f.Source
	f.mu.Unlock()
	if src == nil {
		return nil, output.ErrNotOpen
	}
	buf := make([]byte, n)
	_, err := io.ReadFull(src, buf)
	return buf, err
}

func (f *Fake) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

var _ output.Device = (*Fake)(nil)
