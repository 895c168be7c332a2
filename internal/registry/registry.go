// Package registry owns the ordered clip sequence and all mutations over it.
// Every operation returns a fresh slice so that a loaded snapshot and a
// subsequent edit are always distinguishable, even when the edit produces
// equal values.
package registry

import (
	"fmt"

	"soundeck/internal/types"
)

// Reorder removes the clip at from and reinserts it at to. Equal indices
// return the input unchanged. Out-of-range indices are a caller bug since
// indices come from the currently rendered list.
func Reorder(clips []types.Clip, from, to int) []types.Clip {
	if from == to {
		return clips
	}
	if from < 0 || from >= len(clips) || to < 0 || to >= len(clips) {
		panic(fmt.Sprintf("registry: reorder index out of range: from=%d to=%d len=%d", from, to, len(clips)))
	}
	out := make([]types.Clip, 0, len(clips))
	out = append(out, clips[:from]...)
	out = append(out, clips[from+1:]...)
	moved := clips[from]
	out = append(out[:to], append([]types.Clip{moved}, out[to:]...)...)
	return out
}

// Update applies fn to the clip matching id and returns a fresh sequence.
// Unknown ids leave the contents unchanged but still return a new slice.
func Update(clips []types.Clip, id string, fn func(*types.Clip)) []types.Clip {
	out := make([]types.Clip, len(clips))
	copy(out, clips)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			break
		}
	}
	return out
}

// SetVolume stores the given per-clip volume, clamped to [0,1].
func SetVolume(clips []types.Clip, id string, volume float64) []types.Clip {
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	return Update(clips, id, func(c *types.Clip) {
		c.Volume = volume
	})
}

// SetTrim stores a trim window on the clip. Passing nil for both removes
// the trim. Callers normalize full-range selections to nil before saving.
func SetTrim(clips []types.Clip, id string, start, end *float64) []types.Clip {
	return Update(clips, id, func(c *types.Clip) {
		c.TrimStart = start
		c.TrimEnd = end
	})
}

// Remove deletes the clip matching id; no-op on unknown ids.
func Remove(clips []types.Clip, id string) []types.Clip {
	out := make([]types.Clip, 0, len(clips))
	for _, c := range clips {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// Append adds a clip to the end of the sequence.
func Append(clips []types.Clip, clip types.Clip) []types.Clip {
	out := make([]types.Clip, len(clips), len(clips)+1)
	copy(out, clips)
	return append(out, clip)
}

// Find returns the clip matching id.
func Find(clips []types.Clip, id string) (types.Clip, bool) {
	for _, c := range clips {
		if c.ID == id {
			return c, true
		}
	}
	return types.Clip{}, false
}

// FindByHotkey returns the clip holding the given physical key code.
func FindByHotkey(clips []types.Clip, code string) (types.Clip, bool) {
	if code == "" {
		return types.Clip{}, false
	}
	for _, c := range clips {
		if c.Hotkey == code {
			return c, true
		}
	}
	return types.Clip{}, false
}

// HotkeyConflictError reports that a hotkey is already held by another clip.
type HotkeyConflictError struct {
	Code      string
	ClipID    string
	ClipTitle string
}

func (e *HotkeyConflictError) Error() string {
	return fmt.Sprintf("hotkey %q is already used by %q", e.Code, e.ClipTitle)
}

// AssignHotkey binds code to the clip matching id. At most one clip may hold
// a given code; a conflict with a different clip returns a
// HotkeyConflictError naming the holder and leaves the sequence untouched.
func AssignHotkey(clips []types.Clip, id, code string) ([]types.Clip, error) {
	if holder, ok := FindByHotkey(clips, code); ok && holder.ID != id {
		return clips, &HotkeyConflictError{Code: code, ClipID: holder.ID, ClipTitle: holder.Title}
	}
	return Update(clips, id, func(c *types.Clip) {
		c.Hotkey = code
	}), nil
}

// RelocalizeDefaults retitles clips still flagged built-in from the given
// default set, matching by id. Used in guest mode when the display language
// changes; user-modified (no longer built-in) clips keep their titles.
func RelocalizeDefaults(clips, defaults []types.Clip) []types.Clip {
	titles := make(map[string]string, len(defaults))
	for _, d := range defaults {
		titles[d.ID] = d.Title
	}
	out := make([]types.Clip, len(clips))
	copy(out, clips)
	for i := range out {
		if !out[i].IsBuiltIn {
			continue
		}
		if title, ok := titles[out[i].ID]; ok {
			out[i].Title = title
		}
	}
	return out
}
