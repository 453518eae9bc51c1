// ABOUTME: Tempo store holding the raw field text and last valid tempo
// ABOUTME: Read by the engine on every retune and commit
package tempo

import "sync"

// Store holds the tempo field value. Reads never fail: when the raw text is
// not a number the last valid tempo is returned.
type Store struct {
	mu    sync.RWMutex
	raw   string
	valid BPM
}

// NewStore creates a store showing the given tempo
func NewStore(initial BPM) *Store {
	t, err := FromFloat(float64(initial))
	if err != nil {
		t = Default
	}
	return &Store{raw: Format(t), valid: t}
}

// Set replaces the raw field text. It reports whether the text held a
// number; the last valid tempo is updated only when it did.
func (s *Store) Set(raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = raw
	t, err := Parse(raw)
	if err != nil {
		return false
	}
	s.valid = t
	return true
}

// SetValue stores a numeric tempo as if it had been typed
func (s *Store) SetValue(v float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := FromFloat(v)
	if err != nil {
		return false
	}
	s.raw = Format(BPM(v))
	s.valid = t
	return true
}

// Raw returns the field text as last set
func (s *Store) Raw() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Tempo returns the clamped tempo for the current field value
func (s *Store) Tempo() BPM {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.valid
}
