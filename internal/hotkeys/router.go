// Package hotkeys maps physical keys to clips. A single router owns
// dispatch: normal-mode keys resolve to at most one clip to play, and
// capture mode interprets the next qualifying key as a hotkey candidate for
// the clip being edited.
package hotkeys

import (
	tea "github.com/charmbracelet/bubbletea"

	"soundeck/internal/keycode"
	"soundeck/internal/registry"
	"soundeck/internal/types"
)

// Kind classifies the outcome of a key event.
type Kind int

const (
	// None means the key was ignored.
	None Kind = iota
	// Play means a clip's hotkey matched and it should play.
	Play
	// Captured means a valid candidate was committed and capture exited.
	Captured
	// Invalid means the candidate key is reserved; capture stays active.
	Invalid
	// Conflict means another clip holds the candidate; capture stays active.
	Conflict
	// Cancelled means capture was dismissed without assigning.
	Cancelled
)

// Outcome is the router's decision for one key event.
type Outcome struct {
	Kind   Kind
	ClipID string
	Code   string
	Err    error
}

// Router dispatches global key events. EditorOpen and InputFocused gate
// normal-mode dispatch: clip hotkeys never fire while the trim editor is
// open or a text field has focus.
type Router struct {
	EditorOpen   bool
	InputFocused bool

	captureClipID string
	capturing     bool
}

func NewRouter() *Router {
	return &Router{}
}

// BeginCapture arms capture mode for one clip. Only one clip captures at a
// time; a second call replaces the first.
func (r *Router) BeginCapture(clipID string) {
	r.captureClipID = clipID
	r.capturing = true
}

// CancelCapture disarms capture mode, e.g. on an outside click.
func (r *Router) CancelCapture() {
	r.capturing = false
	r.captureClipID = ""
}

// Capturing reports the clip currently capturing a hotkey, if any.
func (r *Router) Capturing() (string, bool) {
	return r.captureClipID, r.capturing
}

// HandleKey routes one key event against the current clip sequence.
// Committing a Captured outcome is the caller's job, through
// registry.AssignHotkey on its board.
func (r *Router) HandleKey(msg tea.KeyMsg, clips []types.Clip) Outcome {
	if r.InputFocused {
		return Outcome{Kind: None}
	}

	if r.capturing {
		return r.handleCapture(msg, clips)
	}

	if r.EditorOpen {
		return Outcome{Kind: None}
	}

	code := keycode.FromKeyMsg(msg)
	if code == "" {
		return Outcome{Kind: None}
	}
	if clip, ok := registry.FindByHotkey(clips, code); ok {
		return Outcome{Kind: Play, ClipID: clip.ID, Code: code}
	}
	return Outcome{Kind: None}
}

func (r *Router) handleCapture(msg tea.KeyMsg, clips []types.Clip) Outcome {
	if msg.Type == tea.KeyEsc {
		clipID := r.captureClipID
		r.CancelCapture()
		return Outcome{Kind: Cancelled, ClipID: clipID}
	}

	code := keycode.FromKeyMsg(msg)
	if !keycode.IsValid(code) {
		return Outcome{Kind: Invalid, ClipID: r.captureClipID, Code: code}
	}

	if holder, ok := registry.FindByHotkey(clips, code); ok && holder.ID != r.captureClipID {
		return Outcome{
			Kind:   Conflict,
			ClipID: r.captureClipID,
			Code:   code,
			Err:    &registry.HotkeyConflictError{Code: code, ClipID: holder.ID, ClipTitle: holder.Title},
		}
	}

	clipID := r.captureClipID
	r.CancelCapture()
	return Outcome{Kind: Captured, ClipID: clipID, Code: code}
}
