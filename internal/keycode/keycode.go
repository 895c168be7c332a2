// Package keycode translates terminal key events into the layout-independent
// physical key identifiers ("KeyA", "Digit1", "Space", ...) that clips store
// as hotkeys, and formats those identifiers for display.
package keycode

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Codes for keys that are never acceptable as hotkeys: modifiers, lock keys,
// and Escape (reserved for cancelling capture).
var reservedCodes = map[string]bool{
	"ShiftLeft":    true,
	"ShiftRight":   true,
	"ControlLeft":  true,
	"ControlRight": true,
	"AltLeft":      true,
	"AltRight":     true,
	"MetaLeft":     true,
	"MetaRight":    true,
	"CapsLock":     true,
	"NumLock":      true,
	"ScrollLock":   true,
	"ContextMenu":  true,
	"Escape":       true,
}

// Punctuation keys on a US physical layout.
var punctCodes = map[rune]string{
	'-':  "Minus",
	'=':  "Equal",
	'[':  "BracketLeft",
	']':  "BracketRight",
	'\\': "Backslash",
	';':  "Semicolon",
	'\'': "Quote",
	',':  "Comma",
	'.':  "Period",
	'/':  "Slash",
	'`':  "Backquote",
}

var punctDisplay = map[string]string{
	"Minus":        "-",
	"Equal":        "=",
	"BracketLeft":  "[",
	"BracketRight": "]",
	"Backslash":    "\\",
	"Semicolon":    ";",
	"Quote":        "'",
	"Comma":        ",",
	"Period":       ".",
	"Slash":        "/",
	"Backquote":    "`",
	"ArrowUp":      "↑",
	"ArrowDown":    "↓",
	"ArrowLeft":    "←",
	"ArrowRight":   "→",
}

// FromKeyMsg maps a bubbletea key event to a physical key code. It returns
// the empty string for keys that have no code equivalent (control chords,
// function keys, alt-modified keys).
func FromKeyMsg(msg tea.KeyMsg) string {
	if msg.Alt {
		return ""
	}

	switch msg.Type {
	case tea.KeySpace:
		return "Space"
	case tea.KeyEnter:
		return "Enter"
	case tea.KeyTab:
		return "Tab"
	case tea.KeyBackspace:
		return "Backspace"
	case tea.KeyEsc:
		return "Escape"
	case tea.KeyUp:
		return "ArrowUp"
	case tea.KeyDown:
		return "ArrowDown"
	case tea.KeyLeft:
		return "ArrowLeft"
	case tea.KeyRight:
		return "ArrowRight"
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return ""
		}
		return fromRune(msg.Runes[0])
	}
	return ""
}

func fromRune(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	}
	if code, ok := punctCodes[r]; ok {
		return code
	}
	return ""
}

// IsValid reports whether code is acceptable as a clip hotkey.
func IsValid(code string) bool {
	return code != "" && !reservedCodes[code]
}

// Format renders a physical key code for display: "KeyW" -> "W",
// "Digit1" -> "1", "Numpad1" -> "Num1". Unknown codes pass through as is.
func Format(code string) string {
	if code == "" {
		return ""
	}
	if strings.HasPrefix(code, "Key") {
		return strings.TrimPrefix(code, "Key")
	}
	if strings.HasPrefix(code, "Digit") {
		return strings.TrimPrefix(code, "Digit")
	}
	if strings.HasPrefix(code, "Numpad") {
		return "Num" + strings.TrimPrefix(code, "Numpad")
	}
	if display, ok := punctDisplay[code]; ok {
		return display
	}
	return code
}
