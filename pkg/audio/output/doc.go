// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Device interface and its oto implementation
// Package output provides audio playback devices.
//
// A Device pulls from one io.Reader for its whole lifetime. Audibility is
// controlled with Suspend and Resume, which act on the whole output rather
// than on the source, so the source keeps its position and settings while
// silent.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 1)
//	err = out.Start(src)
//	err = out.Resume()
package output
