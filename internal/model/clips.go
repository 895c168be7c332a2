package model

import (
	"strings"

	"soundeck/internal/analytics"
	"soundeck/internal/registry"
	"soundeck/internal/types"
)

// applyBoard runs a board mutation, reconciles the playback pool, and
// schedules the debounced save. Every local clip mutation funnels through
// here so the three stay consistent.
func (m *Model) applyBoard(op func(clips []types.Clip) []types.Clip) {
	m.Board.Apply(op)
	m.Pool.Sync(m.Board.Clips())
	m.syncClips()
}

func (m *Model) syncClips() {
	if m.Sync != nil {
		m.Sync.ClipsChanged(m.Board.Clips(), m.Board.Revision())
	}
}

func (m *Model) syncSettings() {
	if m.Sync != nil {
		m.Sync.SettingsChanged(m.Settings)
	}
}

// ApplyLoad installs a freshly loaded remote snapshot: board, pool, settings,
// and the sync engine's clean state, all from the same load.
func (m *Model) ApplyLoad(settings types.Settings, clips []types.Clip) {
	rev := m.Board.Load(clips)
	m.Pool.Sync(clips)
	m.Settings = settings
	m.Pool.SetMasterVolume(settings.MasterVolume)
	if m.Sync != nil {
		m.Sync.MarkLoaded(settings, rev)
	}
	m.Loaded = true
	m.ClampCursor()
}

// MoveCard reorders the board after a drag crosses the swap threshold.
func (m *Model) MoveCard(from, to int) {
	if from == to || from < 0 || to < 0 || from >= m.Board.Len() || to >= m.Board.Len() {
		return
	}
	var movedID string
	m.applyBoard(func(clips []types.Clip) []types.Clip {
		movedID = clips[from].ID
		return registry.Reorder(clips, from, to)
	})
	m.Cursor = to
	m.Recorder.Record(analytics.ReorderSound(movedID))
}

// SetMasterVolume clamps and applies the global volume, then schedules the
// settings save.
func (m *Model) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.Settings.MasterVolume = v
	m.Pool.SetMasterVolume(v)
	m.syncSettings()
}

func (m *Model) AdjustMasterVolume(delta float64) {
	m.SetMasterVolume(m.Settings.MasterVolume + delta)
}

func (m *Model) ToggleDarkMode() {
	m.Settings.DarkMode = !m.Settings.DarkMode
	m.syncSettings()
}

// AdjustSelectedVolume nudges the per-clip volume of the card under the
// cursor. The pool picks the change up in place, without a rebuild.
func (m *Model) AdjustSelectedVolume(delta float64) {
	clip, ok := m.SelectedClip()
	if !ok {
		return
	}
	m.applyBoard(func(clips []types.Clip) []types.Clip {
		return registry.SetVolume(clips, clip.ID, clip.Volume+delta)
	})
}

// CommitHotkey binds a captured key code to a clip. The conflict check
// already passed in the router, but the board stays authoritative.
func (m *Model) CommitHotkey(clipID, code string) error {
	var opErr error
	m.Board.Apply(func(clips []types.Clip) []types.Clip {
		next, err := registry.AssignHotkey(clips, clipID, code)
		if err != nil {
			opErr = err
			return clips
		}
		return next
	})
	if opErr != nil {
		return opErr
	}
	m.Pool.Sync(m.Board.Clips())
	m.syncClips()
	m.Recorder.Record(analytics.SetHotkey(clipID, code))
	return nil
}

// RenameSelected applies the edited title to the card under the cursor.
// An empty or unchanged title is a no-op.
func (m *Model) RenameSelected() {
	clip, ok := m.SelectedClip()
	title := strings.TrimSpace(m.RenameInput.Value())
	m.Renaming = false
	m.RenameInput.Blur()
	if !ok || title == "" || title == clip.Title {
		return
	}
	m.applyBoard(func(clips []types.Clip) []types.Clip {
		return registry.Update(clips, clip.ID, func(c *types.Clip) {
			c.Title = title
		})
	})
	m.Recorder.Record(analytics.EditSound(clip.ID))
}

// RemoveClip takes a clip off the board. The remote file deletion, if any,
// happens before this is called; this is the local half.
func (m *Model) RemoveClip(id string) {
	if c, ok := m.Pool.Get(id); ok {
		c.Stop()
	}
	m.applyBoard(func(clips []types.Clip) []types.Clip {
		return registry.Remove(clips, id)
	})
	m.DropEnvelope(id)
	m.ClampCursor()
	m.Recorder.Record(analytics.DeleteSound(id))
}

// AppendClip adds a freshly uploaded clip at the end of the board.
func (m *Model) AppendClip(clip types.Clip) {
	m.applyBoard(func(clips []types.Clip) []types.Clip {
		return registry.Append(clips, clip)
	})
	m.Cursor = m.Board.Len() - 1
}

// ToggleSelected is the click/enter action on the card under the cursor.
func (m *Model) ToggleSelected() {
	clip, ok := m.SelectedClip()
	if !ok {
		return
	}
	if c, ok := m.Pool.Get(clip.ID); ok {
		wasIdle := c.State() == types.Idle
		c.TogglePlayPause()
		if wasIdle && c.State() == types.Playing {
			m.Recorder.Record(analytics.PlaySound(types.TriggerClick, clip.IsBuiltIn))
		}
	}
}

// StopSelected parks the card under the cursor.
func (m *Model) StopSelected() {
	if clip, ok := m.SelectedClip(); ok {
		if c, ok := m.Pool.Get(clip.ID); ok {
			c.Stop()
		}
	}
}
