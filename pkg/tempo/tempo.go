// ABOUTME: BPM type with clamping and period derivation
// ABOUTME: Shared by retune and display commit
package tempo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// Min is the slowest supported tempo
	Min BPM = 30
	// Max is the fastest supported tempo
	Max BPM = 300
	// Default is the tempo shown when the field is first displayed
	Default BPM = 133
	// Step is the field increment
	Step BPM = 0.1
)

// ErrNotANumber is returned for input that has no numeric tempo
var ErrNotANumber = errors.New("tempo is not a number")

// BPM is a tempo in beats per minute
type BPM float64

// Clamp saturates v to [Min, Max]. NaN is returned unchanged and must be
// rejected by the caller.
func Clamp(v float64) BPM {
	return BPM(math.Min(float64(Max), math.Max(float64(Min), v)))
}

// Period returns the loop period in seconds
func (b BPM) Period() float64 {
	return 60 / float64(b)
}

// Interval returns the loop period as a duration
func (b BPM) Interval() time.Duration {
	return time.Duration(b.Period() * float64(time.Second))
}

// String formats the tempo the way the field displays it
func (b BPM) String() string {
	return Format(b)
}

// Format renders a tempo with at most one decimal, dropping a trailing ".0"
func Format(b BPM) string {
	return strconv.FormatFloat(math.Round(float64(b)*10)/10, 'f', -1, 64)
}

// Parse reads a tempo from user input and clamps it. Leading and trailing
// space is ignored. Empty, non-numeric and NaN input yields ErrNotANumber.
func Parse(s string) (BPM, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotANumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Infinity overflows ParseFloat with a range error but is still numeric
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
		}
	}
	return FromFloat(v)
}

// FromFloat clamps a numeric tempo, rejecting NaN
func FromFloat(v float64) (BPM, error) {
	if math.IsNaN(v) {
		return 0, ErrNotANumber
	}
	return Clamp(v), nil
}
