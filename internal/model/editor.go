package model

import (
	"soundeck/internal/analytics"
	"soundeck/internal/defaults"
	"soundeck/internal/registry"
	"soundeck/internal/trim"
	"soundeck/internal/types"
)

// OpenEditor enters the trim view for a clip. The editor itself is built
// asynchronously (the audio has to be fetched and decoded first); the view
// shows a loading state until it lands.
func (m *Model) OpenEditor(clipID string) {
	m.EditorClipID = clipID
	m.Editor = nil
	m.Router.EditorOpen = true
	m.SwitchView(types.TrimView)
}

// InstallEditor attaches the decoded editor, unless the user already left
// the trim view or moved on to another clip.
func (m *Model) InstallEditor(clipID string, ed *trim.Editor) {
	if m.ViewMode != types.TrimView || m.EditorClipID != clipID {
		return
	}
	m.Editor = ed
}

// CloseEditor leaves the trim view. With save set, a changed selection is
// persisted to the clip; the pool rebuilds that clip's backend around the
// new window.
func (m *Model) CloseEditor(save bool) {
	if save && m.Editor != nil && m.Editor.HasChanges() {
		start, end := m.Editor.Save()
		id := m.EditorClipID
		m.applyBoard(func(clips []types.Clip) []types.Clip {
			return registry.SetTrim(clips, id, start, end)
		})
		m.Recorder.Record(analytics.TrimSound(id))
	}
	if c, ok := m.Pool.Get(m.EditorClipID); ok {
		c.Stop()
	}
	m.Editor = nil
	m.EditorClipID = ""
	m.Router.EditorOpen = false
	m.SwitchView(types.GridView)
}

// PreviewSelection auditions a just-released selection once.
func (m *Model) PreviewSelection(sel trim.Selection) {
	if c, ok := m.Pool.Get(m.EditorClipID); ok {
		c.PreviewRange(sel.Start, sel.End)
	}
}

// LoadGuestDefaults seeds the board with the built-in clips. Guest mode
// never loads or saves remotely.
func (m *Model) LoadGuestDefaults() {
	clips := defaults.Clips(m.Lang)
	m.Board.Load(clips)
	m.Pool.Sync(clips)
	m.Settings = types.DefaultSettings()
	m.Pool.SetMasterVolume(m.Settings.MasterVolume)
	m.Loaded = true
}

// ApplyReset installs the post-reset board: the built-in clips for the
// current language, default settings, and a clean sync snapshot.
func (m *Model) ApplyReset() {
	clips := defaults.Clips(m.Lang)
	rev := m.Board.Load(clips)
	m.Pool.Sync(clips)
	m.Settings = types.DefaultSettings()
	m.Pool.SetMasterVolume(m.Settings.MasterVolume)
	if m.Sync != nil {
		m.Sync.MarkLoaded(m.Settings, rev)
	}
	m.envelopes = make(map[string][]float64)
	m.Cursor = 0
	m.ClampCursor()
	if m.Sessions != nil {
		if s, ok := m.Sessions.Current(); ok {
			m.Recorder.Record(analytics.ResetDefaults(s.UserID))
		}
	}
}
