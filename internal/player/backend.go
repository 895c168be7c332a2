// Package player implements per-clip playback: an Idle/Playing/Paused state
// machine with trim-aware seeking on top of a replaceable audio backend.
package player

import "soundeck/internal/types"

// Backend is the underlying audio resource for one clip. Exactly one
// controller owns a backend at a time; Close releases the resource.
type Backend interface {
	Play()
	Pause()
	Seek(seconds float64) error
	Position() float64
	Duration() float64
	SetGain(gain float64)
	Close() error
}

// BackendFactory prepares a backend for a clip's current source. It is
// called again whenever the source or trim window changes, after the prior
// backend has been closed.
type BackendFactory func(clip types.Clip) (Backend, error)
