package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundeck/internal/analytics"
	"soundeck/internal/types"
)

// fakeBackend stands in for the audio device with a clock the test drives.
type fakeBackend struct {
	pos      float64
	duration float64
	playing  bool
	gain     float64
	closed   bool
}

func (f *fakeBackend) Play()                 { f.playing = true }
func (f *fakeBackend) Pause()                { f.playing = false }
func (f *fakeBackend) Seek(s float64) error  { f.pos = s; return nil }
func (f *fakeBackend) Position() float64     { return f.pos }
func (f *fakeBackend) Duration() float64     { return f.duration }
func (f *fakeBackend) SetGain(gain float64)  { f.gain = gain }
func (f *fakeBackend) Close() error          { f.closed = true; return nil }

// advance moves the playback clock forward while playing, like the real
// device does between progress ticks.
func (f *fakeBackend) advance(dt float64) {
	if f.playing {
		f.pos += dt
	}
}

type captureRecorder struct {
	events []analytics.Event
}

func (r *captureRecorder) Record(e analytics.Event) {
	r.events = append(r.events, e)
}

func trimmedClip() types.Clip {
	return types.Clip{
		ID:              "a",
		Title:           "Airhorn",
		DurationSeconds: 10,
		Volume:          0.8,
		TrimStart:       types.Float(2),
		TrimEnd:         types.Float(5),
	}
}

func TestPlayFromStart(t *testing.T) {
	t.Run("SeeksToTrimStart", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 2.0, backend.pos)
	})

	t.Run("RestartsMidPlayback", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(1.5)
		c.Tick()
		require.Equal(t, 3.5, c.Position())

		c.PlayFromStart(types.TriggerHotkey)
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 2.0, backend.pos)
	})

	t.Run("NoTrimSeeksToZero", func(t *testing.T) {
		backend := &fakeBackend{pos: 4, duration: 10}
		clip := types.Clip{ID: "b", DurationSeconds: 10, Volume: 1}
		c := NewController(clip, backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		assert.Equal(t, 0.0, backend.pos)
	})

	t.Run("RecordsAnalytics", func(t *testing.T) {
		rec := &captureRecorder{}
		clip := trimmedClip()
		clip.IsBuiltIn = true
		c := NewController(clip, &fakeBackend{duration: 10}, 1.0, rec)

		c.PlayFromStart(types.TriggerHotkey)
		require.Len(t, rec.events, 1)
		assert.Equal(t, "event_play_sound", rec.events[0].Name)
		assert.Equal(t, "hotkey", rec.events[0].Params["method"])
		assert.Equal(t, "demo", rec.events[0].Params["source_type"])
	})
}

func TestTogglePlayPause(t *testing.T) {
	t.Run("PausesInPlace", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(1.0)
		c.TogglePlayPause()
		assert.Equal(t, types.Paused, c.State())
		assert.Equal(t, 3.0, c.Position())
	})

	t.Run("ResumesWithoutSeekWhenPastStart", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(1.0)
		c.TogglePlayPause()
		c.TogglePlayPause()
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 3.0, backend.pos)
	})

	t.Run("PlayFromIdleSeeksStart", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.TogglePlayPause()
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 2.0, backend.pos)
	})

	t.Run("ResumeBeforeTrimStartSeeksStart", func(t *testing.T) {
		backend := &fakeBackend{pos: 0.5, duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)
		c.state = types.Paused
		c.current = 0.5

		c.TogglePlayPause()
		assert.Equal(t, 2.0, backend.pos)
	})
}

func TestStop(t *testing.T) {
	t.Run("ParksAtTrimStart", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(1.0)
		c.Stop()
		assert.Equal(t, types.Idle, c.State())
		assert.Equal(t, 2.0, c.Position())
		assert.False(t, backend.playing)
	})

	t.Run("Idempotent", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.Stop()
		c.Stop()
		assert.Equal(t, types.Idle, c.State())
		assert.Equal(t, 2.0, c.Position())
	})
}

func TestTogglePlayStop(t *testing.T) {
	backend := &fakeBackend{duration: 10}
	c := NewController(trimmedClip(), backend, 1.0, nil)

	c.TogglePlayStop(types.TriggerClick)
	assert.Equal(t, types.Playing, c.State())

	c.TogglePlayStop(types.TriggerClick)
	assert.Equal(t, types.Idle, c.State())
	assert.Equal(t, 2.0, c.Position())
}

func TestTrimBoundary(t *testing.T) {
	t.Run("StopsAtTrimEnd", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(3.0) // playhead reaches t=5.0, the trim end
		c.Tick()

		assert.Equal(t, types.Idle, c.State())
		assert.Equal(t, 2.0, c.Position())
		assert.False(t, backend.playing)
	})

	t.Run("KeepsPlayingInsideWindow", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(2.0)
		c.Tick()
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 4.0, c.Position())
	})

	t.Run("NaturalEndResetsToStart", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		clip := types.Clip{ID: "b", DurationSeconds: 10, Volume: 1}
		c := NewController(clip, backend, 1.0, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(10.0)
		c.Tick()
		assert.Equal(t, types.Idle, c.State())
		assert.Equal(t, 0.0, c.Position())
	})
}

func TestPreviewRange(t *testing.T) {
	t.Run("PlaysTheSelectedWindow", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PreviewRange(6.0, 8.0)
		require.Equal(t, types.Playing, c.State())
		assert.Equal(t, 6.0, backend.pos)

		backend.advance(1.0)
		c.Tick()
		assert.Equal(t, types.Playing, c.State(), "inside the window, past the stored trim end")
		assert.Equal(t, 7.0, c.Position())
	})

	t.Run("StopsAtTheWindowEnd", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PreviewRange(6.0, 8.0)
		backend.advance(2.0)
		c.Tick()
		assert.Equal(t, types.Idle, c.State())
		assert.Equal(t, 2.0, c.Position(), "parks at the trim start after the preview")
		assert.False(t, backend.playing)
	})

	t.Run("PausedPreviewResumesInPlace", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		// selection entirely before the trim start
		c.PreviewRange(0.5, 1.5)
		backend.advance(0.5)
		c.Tick()
		c.TogglePlayPause()
		require.Equal(t, types.Paused, c.State())
		require.Equal(t, 1.0, c.Position())

		c.TogglePlayPause()
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 1.0, backend.pos, "no seek to the trim start mid preview")

		backend.advance(0.5)
		c.Tick()
		assert.Equal(t, types.Idle, c.State(), "window end still enforced after resume")
	})

	t.Run("RestartClearsThePreviewWindow", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PreviewRange(2.5, 3.0)
		c.PlayFromStart(types.TriggerClick)
		backend.advance(1.5) // t=3.5, past the abandoned preview end
		c.Tick()
		assert.Equal(t, types.Playing, c.State())
		assert.Equal(t, 3.5, c.Position())
	})

	t.Run("RejectsEmptyWindow", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 1.0, nil)

		c.PreviewRange(4.0, 4.0)
		assert.Equal(t, types.Idle, c.State())
		assert.False(t, backend.playing)
	})
}

func TestVolume(t *testing.T) {
	t.Run("EffectiveGainIsProduct", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 0.5, nil)
		assert.InDelta(t, 0.4, c.Gain(), 1e-9)
		assert.InDelta(t, 0.4, backend.gain, 1e-9)
	})

	t.Run("MasterChangeReappliesWithoutSeeking", func(t *testing.T) {
		backend := &fakeBackend{duration: 10}
		c := NewController(trimmedClip(), backend, 0.5, nil)

		c.PlayFromStart(types.TriggerClick)
		backend.advance(1.0)
		c.Tick()
		posBefore := backend.pos

		c.SetMasterVolume(1.0)
		assert.InDelta(t, 0.8, backend.gain, 1e-9)
		assert.Equal(t, posBefore, backend.pos, "gain change must not move the playhead")
		assert.Equal(t, types.Playing, c.State())
	})
}

func TestDisabledController(t *testing.T) {
	c := NewController(trimmedClip(), nil, 1.0, nil)
	assert.True(t, c.Disabled())

	c.PlayFromStart(types.TriggerClick)
	c.TogglePlayPause()
	c.Tick()
	c.Stop()
	assert.Equal(t, types.Idle, c.State())
	assert.NoError(t, c.Close())
}
