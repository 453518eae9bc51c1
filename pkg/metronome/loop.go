// ABOUTME: Looping playback session over the click buffer
// ABOUTME: Streams float32 frames and latches the loop end once per cycle
package metronome

import (
	"math"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/harperreed/tick/pkg/audio"
	"github.com/harperreed/tick/pkg/audio/synth"
)

// LoopSession plays a click buffer from frame 0 to its loop end, repeating
// forever. Read is driven by the output device's goroutine; SetLoopEnd may
// be called from any goroutine.
type LoopSession struct {
	ID uuid.UUID

	buf    *synth.ClickBuffer
	format audio.Format

	// loop end requested by the controller
	loopEndSeconds atomic.Uint64
	loopEndFrames  atomic.Int64

	// playback position, owned by the reader
	pos      int
	cycleEnd int

	cycles     atomic.Uint64
	framesRead atomic.Uint64
}

// NewLoopSession binds a session to buf with the given loop end in seconds
func NewLoopSession(buf *synth.ClickBuffer, loopEnd float64) *LoopSession {
	s := &LoopSession{
		ID:     uuid.New(),
		buf:    buf,
		format: audio.Mono(buf.SampleRate()),
	}
	s.SetLoopEnd(loopEnd)
	s.cycleEnd = int(s.loopEndFrames.Load())
	return s
}

// SetLoopEnd changes where the loop wraps. It takes effect at the next
// cycle boundary. Values that are non-positive, NaN or past the buffer
// loop the whole buffer.
func (s *LoopSession) SetLoopEnd(seconds float64) {
	frames := s.buf.Len()
	if !math.IsNaN(seconds) && seconds > 0 {
		if f := s.format.FramesFor(seconds); f >= 1 && f < frames {
			frames = f
		}
	}
	s.loopEndSeconds.Store(math.Float64bits(seconds))
	s.loopEndFrames.Store(int64(frames))
}

// LoopEnd returns the loop end in seconds as last set
func (s *LoopSession) LoopEnd() float64 {
	return math.Float64frombits(s.loopEndSeconds.Load())
}

// LoopFrames returns the loop length in frames the next cycle will use
func (s *LoopSession) LoopFrames() int {
	return int(s.loopEndFrames.Load())
}

// Format returns the stream format produced by Read
func (s *LoopSession) Format() audio.Format {
	return s.format
}

// Buffer returns the click buffer the session is bound to
func (s *LoopSession) Buffer() *synth.ClickBuffer {
	return s.buf
}

// Cycles returns how many times the loop has wrapped
func (s *LoopSession) Cycles() uint64 {
	return s.cycles.Load()
}

// FramesRead returns the number of frames streamed so far
func (s *LoopSession) FramesRead() uint64 {
	return s.framesRead.Load()
}

// Read fills p with whole float32 frames. It never returns an error; the
// loop has no end.
func (s *LoopSession) Read(p []byte) (int, error) {
	if s.buf.Len() == 0 {
		return 0, nil
	}

	frameSize := s.format.FrameSize()
	frames := len(p) / frameSize

	for i := 0; i < frames; i++ {
		if s.pos >= s.cycleEnd {
			s.pos = 0
			s.cycleEnd = int(s.loopEndFrames.Load())
			s.cycles.Add(1)
		}
		audio.PutFloat32(p[i*frameSize:], s.buf.At(s.pos))
		s.pos++
	}

	s.framesRead.Add(uint64(frames))
	return frames * frameSize, nil
}
