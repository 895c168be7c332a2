// Package trim implements the waveform trim editor: envelope display data,
// pointer-drag range selection, and the save normalization that keeps
// "no trim" and "trim = full clip" indistinguishable in storage.
package trim

import (
	"soundeck/internal/types"
)

// Selection is a candidate trim window in seconds.
type Selection struct {
	Start, End float64
}

// Editor holds the trim editing session for one clip. Pointer coordinates
// arrive already converted to clip time by the view layer.
type Editor struct {
	clip     types.Clip
	duration float64
	envelope []float64
	envErr   error

	selection *Selection
	dragging  bool
	anchor    float64
}

// NewEditor starts an editing session. duration is the decoded duration,
// envelope the display data (nil when decoding failed, with envErr holding
// the failure; the editor stays usable but reports the error distinctly).
func NewEditor(clip types.Clip, duration float64, envelope []float64, envErr error) *Editor {
	e := &Editor{
		clip:     clip,
		duration: duration,
		envelope: envelope,
		envErr:   envErr,
	}
	if clip.HasTrim() {
		e.selection = &Selection{Start: *clip.TrimStart, End: *clip.TrimEnd}
	}
	return e
}

func (e *Editor) Clip() types.Clip {
	return e.clip
}

func (e *Editor) Duration() float64 {
	return e.duration
}

// Envelope returns the display data and any decode failure. Unlike the grid
// cards, the editor surfaces the failure instead of substituting noise.
func (e *Editor) Envelope() ([]float64, error) {
	return e.envelope, e.envErr
}

// Selection returns the current candidate window, or nil for no trim.
func (e *Editor) Selection() *Selection {
	return e.selection
}

func (e *Editor) Dragging() bool {
	return e.dragging
}

// PointerDown starts a drag with a provisional zero-width selection at t.
func (e *Editor) PointerDown(t float64) {
	t = e.clamp(t)
	e.dragging = true
	e.anchor = t
	e.selection = &Selection{Start: t, End: t}
}

// PointerMove grows the selection between the drag anchor and t.
func (e *Editor) PointerMove(t float64) {
	if !e.dragging {
		return
	}
	t = e.clamp(t)
	sel := Selection{Start: e.anchor, End: t}
	if sel.Start > sel.End {
		sel.Start, sel.End = sel.End, sel.Start
	}
	e.selection = &sel
}

// PointerUp finalizes the drag. A non-empty selection is returned for a
// one-shot preview; a zero-width selection (a plain click) clears instead.
func (e *Editor) PointerUp() (Selection, bool) {
	if !e.dragging {
		return Selection{}, false
	}
	e.dragging = false
	if e.selection != nil && e.selection.Start == e.selection.End {
		e.selection = nil
		return Selection{}, false
	}
	if e.selection == nil {
		return Selection{}, false
	}
	return *e.selection, true
}

// Clear removes the selection entirely.
func (e *Editor) Clear() {
	e.selection = nil
	e.dragging = false
}

// HasChanges reports whether the current selection differs by value from
// the clip's persisted trim pair. Both absent counts as equal.
func (e *Editor) HasChanges() bool {
	persisted := e.persistedSelection()
	switch {
	case persisted == nil && e.selection == nil:
		return false
	case persisted == nil || e.selection == nil:
		return true
	default:
		return persisted.Start != e.selection.Start || persisted.End != e.selection.End
	}
}

// Save commits the selection as a trim pair. A full-range selection
// normalizes to absence: "explicit full selection" and "never trimmed" are
// deliberately indistinguishable after save.
func (e *Editor) Save() (start, end *float64) {
	if e.selection == nil {
		return nil, nil
	}
	if e.selection.Start <= 0 && e.selection.End >= e.duration {
		return nil, nil
	}
	return types.Float(e.selection.Start), types.Float(e.selection.End)
}

func (e *Editor) persistedSelection() *Selection {
	if !e.clip.HasTrim() {
		return nil
	}
	return &Selection{Start: *e.clip.TrimStart, End: *e.clip.TrimEnd}
}

func (e *Editor) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > e.duration {
		return e.duration
	}
	return t
}
