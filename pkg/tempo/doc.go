// ABOUTME: Tempo package for BPM values and the clamp policy
// ABOUTME: Converts tempo to loop period and parses user input fail-safe
// Package tempo models the metronome tempo.
//
// A BPM is always kept inside [Min, Max]. Out-of-range values saturate to
// the nearest bound and non-numeric input is rejected so that callers keep
// the previous tempo instead of propagating NaN.
//
// Example:
//
//	store := tempo.NewStore(tempo.Default)
//	store.Set("400")
//	store.Tempo()          // 300
//	store.Tempo().Period() // 0.2
package tempo
