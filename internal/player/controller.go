package player

import (
	"soundeck/internal/analytics"
	"soundeck/internal/logger"
	"soundeck/internal/types"
)

// Controller is the playback state machine for one clip. All methods run on
// the event loop; the only outside actor is the progress tick, which the UI
// drives at a fixed rate while anything is playing.
type Controller struct {
	clip     types.Clip
	backend  Backend
	recorder analytics.Recorder

	state        types.PlayState
	current      float64
	masterVolume float64

	// previewEnd overrides the trim boundary during a one-shot audition of
	// a provisional selection. Cleared whenever playback stops or restarts.
	previewEnd *float64
}

// NewController wires a controller to its prepared backend. A nil backend
// leaves the controller in a permanently disabled state: the clip's audio
// failed to load and every operation is a no-op.
func NewController(clip types.Clip, backend Backend, masterVolume float64, recorder analytics.Recorder) *Controller {
	c := &Controller{
		clip:         clip,
		backend:      backend,
		recorder:     recorder,
		state:        types.Idle,
		current:      clip.StartTime(),
		masterVolume: masterVolume,
	}
	if backend != nil {
		c.applyGain()
	}
	return c
}

func (c *Controller) State() types.PlayState {
	return c.state
}

// Position is the last sampled playback time in seconds.
func (c *Controller) Position() float64 {
	return c.current
}

func (c *Controller) Clip() types.Clip {
	return c.clip
}

// Disabled reports that the clip's audio never became playable.
func (c *Controller) Disabled() bool {
	return c.backend == nil
}

// Duration prefers the decoded duration over the stored one.
func (c *Controller) Duration() float64 {
	if c.backend != nil {
		if d := c.backend.Duration(); d > 0 {
			return d
		}
	}
	return c.clip.DurationSeconds
}

// PlayFromStart seeks to the trim start (or zero) and plays, regardless of
// current state. Safe to call repeatedly mid-playback.
func (c *Controller) PlayFromStart(trigger types.PlayTrigger) {
	if c.backend == nil {
		return
	}
	start := c.clip.StartTime()
	if err := c.backend.Seek(start); err != nil {
		logger.Warn("seek failed", logger.String("clip", c.clip.ID), logger.ErrorField(err))
		return
	}
	c.previewEnd = nil
	c.current = start
	c.applyGain()
	c.backend.Play()
	c.state = types.Playing

	if c.recorder != nil {
		c.recorder.Record(analytics.PlaySound(trigger, c.clip.IsBuiltIn))
	}
}

// PreviewRange auditions [start, end) once, ignoring the persisted trim
// window. Used by the trim editor right after a selection is made.
func (c *Controller) PreviewRange(start, end float64) {
	if c.backend == nil || end <= start {
		return
	}
	if err := c.backend.Seek(start); err != nil {
		logger.Warn("seek failed", logger.String("clip", c.clip.ID), logger.ErrorField(err))
		return
	}
	c.previewEnd = &end
	c.current = start
	c.applyGain()
	c.backend.Play()
	c.state = types.Playing
}

// TogglePlayPause pauses in place while playing, otherwise resumes. A resume
// from rest (time zero or before the trim start) seeks to the start first.
func (c *Controller) TogglePlayPause() {
	if c.backend == nil {
		return
	}
	if c.state == types.Playing {
		c.backend.Pause()
		c.current = c.backend.Position()
		c.state = types.Paused
		return
	}

	// a suspended preview resumes in place even before the trim start
	start := c.clip.StartTime()
	if c.previewEnd == nil && (c.state == types.Idle || c.current == 0 || c.current < start) {
		if err := c.backend.Seek(start); err != nil {
			logger.Warn("seek failed", logger.String("clip", c.clip.ID), logger.ErrorField(err))
			return
		}
		c.current = start
	}
	c.applyGain()
	c.backend.Play()
	c.state = types.Playing
}

// TogglePlayStop stops while playing and plays from the start otherwise.
func (c *Controller) TogglePlayStop(trigger types.PlayTrigger) {
	if c.state == types.Playing {
		c.Stop()
		return
	}
	c.PlayFromStart(trigger)
}

// Stop pauses and parks the playhead at the trim start. Idempotent.
func (c *Controller) Stop() {
	if c.backend == nil {
		return
	}
	start := c.clip.StartTime()
	c.backend.Pause()
	if err := c.backend.Seek(start); err != nil {
		logger.Warn("seek failed", logger.String("clip", c.clip.ID), logger.ErrorField(err))
	}
	c.previewEnd = nil
	c.current = start
	c.state = types.Idle
}

// Tick samples playback progress and enforces the trim boundary. The clock
// advances independently of application control flow, so the boundary is
// checked continuously while playing, not once at start.
func (c *Controller) Tick() {
	if c.state != types.Playing || c.backend == nil {
		return
	}

	pos := c.backend.Position()
	start := c.clip.StartTime()

	if c.previewEnd != nil {
		if pos >= *c.previewEnd {
			c.Stop()
			return
		}
		c.current = pos
		return
	}

	if c.clip.TrimEnd != nil && pos >= *c.clip.TrimEnd {
		c.backend.Pause()
		if err := c.backend.Seek(start); err == nil {
			c.current = start
		}
		c.state = types.Idle
		return
	}

	if d := c.Duration(); d > 0 && pos >= d {
		c.backend.Pause()
		if err := c.backend.Seek(start); err == nil {
			c.current = start
		}
		c.state = types.Idle
		return
	}

	c.current = pos
}

// SetMasterVolume reapplies effective gain without touching playback position.
func (c *Controller) SetMasterVolume(v float64) {
	c.masterVolume = v
	if c.backend != nil {
		c.applyGain()
	}
}

// SetClipVolume updates the per-clip gain input.
func (c *Controller) SetClipVolume(v float64) {
	c.clip.Volume = v
	if c.backend != nil {
		c.applyGain()
	}
}

// Gain is the effective playback gain: clip volume times master volume.
func (c *Controller) Gain() float64 {
	return c.clip.Volume * c.masterVolume
}

func (c *Controller) applyGain() {
	c.backend.SetGain(c.Gain())
}

// Close releases the underlying audio resource.
func (c *Controller) Close() error {
	if c.backend == nil {
		return nil
	}
	c.backend.Pause()
	err := c.backend.Close()
	c.backend = nil
	c.state = types.Idle
	return err
}
