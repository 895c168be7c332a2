// Package model holds the whole application state: the clip board, playback
// pool, hotkey router, remote sync wiring, and the per-view UI state the
// input handlers mutate and the views render.
package model

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"soundeck/internal/analytics"
	"soundeck/internal/api"
	"soundeck/internal/audio"
	"soundeck/internal/hotkeys"
	"soundeck/internal/player"
	"soundeck/internal/registry"
	"soundeck/internal/session"
	syncengine "soundeck/internal/sync"
	"soundeck/internal/trim"
	"soundeck/internal/types"
)

// statusTTL is how long a footer status message stays up.
const statusTTL = 3 * time.Second

// Options carries the wiring a Model needs. Client and Sync are nil in
// guest mode; every remote path checks.
type Options struct {
	Board    *registry.Board
	Pool     *player.Pool
	Router   *hotkeys.Router
	Client   *api.Client
	Sync     *syncengine.Engine
	Sessions session.Source
	Recorder analytics.Recorder
	Guest    bool
	Lang     string
	DataDir  string
}

type Model struct {
	Board    *registry.Board
	Pool     *player.Pool
	Router   *hotkeys.Router
	Client   *api.Client
	Sync     *syncengine.Engine
	Sessions session.Source
	Recorder analytics.Recorder
	Guest    bool
	Lang     string
	DataDir  string

	ViewMode     types.ViewMode
	PreviousView types.ViewMode
	TermWidth    int
	TermHeight   int

	Settings types.Settings
	Usage    *types.StorageUsage
	Loaded   bool

	// Grid view state. DragIndex is -1 outside a drag; DragMoved records
	// that the drag actually reordered, so release does not also toggle.
	Cursor      int
	DragIndex   int
	DragMoved   bool
	Renaming    bool
	RenameInput textinput.Model

	// Per-clip card envelopes, keyed by clip ID.
	envelopes map[string][]float64

	// Trim editor state. EditorCols is the waveform width at last render,
	// used to map pointer columns back to seconds.
	Editor       *trim.Editor
	EditorClipID string
	EditorCols   int
	EditorLeft   int
	EditorTop    int

	// Settings view cursor. ConfirmAction holds a destructive action armed
	// by a first keypress and fired by the second.
	SettingsCursor int
	ConfirmAction  string

	// Upload picker state.
	UploadFiles  []string
	UploadCursor int

	StatusMsg    string
	statusExpiry time.Time

	SessionExpired bool
}

func New(opts Options) *Model {
	return &Model{
		Board:     opts.Board,
		Pool:      opts.Pool,
		Router:    opts.Router,
		Client:    opts.Client,
		Sync:      opts.Sync,
		Sessions:  opts.Sessions,
		Recorder:  opts.Recorder,
		Guest:     opts.Guest,
		Lang:      opts.Lang,
		DataDir:   opts.DataDir,
		ViewMode:  types.GridView,
		Settings:  types.DefaultSettings(),
		DragIndex: -1,
		envelopes: make(map[string][]float64),
	}
}

// Clips is the board's current clip sequence.
func (m *Model) Clips() []types.Clip {
	return m.Board.Clips()
}

// SelectedClip is the clip under the grid cursor.
func (m *Model) SelectedClip() (types.Clip, bool) {
	clips := m.Board.Clips()
	if m.Cursor < 0 || m.Cursor >= len(clips) {
		return types.Clip{}, false
	}
	return clips[m.Cursor], true
}

// ClampCursor keeps the grid cursor on a real card after removals.
func (m *Model) ClampCursor() {
	if n := m.Board.Len(); m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// BeginRename opens the inline title editor over the card under the cursor.
// While it is open the hotkey router stands down.
func (m *Model) BeginRename() {
	clip, ok := m.SelectedClip()
	if !ok {
		return
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = CardWidth - 10
	ti.SetValue(clip.Title)
	ti.Focus()
	ti.CursorEnd()
	m.RenameInput = ti
	m.Renaming = true
	m.Router.InputFocused = true
}

// CancelRename discards the title edit.
func (m *Model) CancelRename() {
	m.Renaming = false
	m.RenameInput.Blur()
	m.Router.InputFocused = false
}

// SetStatus puts a transient message in the footer.
func (m *Model) SetStatus(msg string) {
	m.StatusMsg = msg
	m.statusExpiry = time.Now().Add(statusTTL)
}

// Status returns the footer message, empty once expired.
func (m *Model) Status() string {
	if m.StatusMsg != "" && time.Now().After(m.statusExpiry) {
		m.StatusMsg = ""
	}
	return m.StatusMsg
}

// SwitchView changes the top-level screen, remembering where we came from.
func (m *Model) SwitchView(v types.ViewMode) {
	if v == m.ViewMode {
		return
	}
	m.PreviousView = m.ViewMode
	m.ViewMode = v
}

// CardEnvelope returns the cached envelope for a clip's card. Before the
// decoded envelope arrives (or when decoding failed) the card shows a
// stable random one.
func (m *Model) CardEnvelope(id string) []float64 {
	if env, ok := m.envelopes[id]; ok {
		return env
	}
	env := audio.RandomEnvelope(audio.CardBars)
	m.envelopes[id] = env
	return env
}

// SetEnvelope stores a decoded card envelope.
func (m *Model) SetEnvelope(id string, env []float64) {
	if len(env) > 0 {
		m.envelopes[id] = env
	}
}

// DropEnvelope forgets a clip's envelope, e.g. after deletion.
func (m *Model) DropEnvelope(id string) {
	delete(m.envelopes, id)
}
