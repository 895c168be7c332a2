package keycode

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestFromKeyMsg(t *testing.T) {
	t.Run("Letters", func(t *testing.T) {
		assert.Equal(t, "KeyA", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}))
		assert.Equal(t, "KeyZ", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Z'}}))
	})

	t.Run("Digits", func(t *testing.T) {
		assert.Equal(t, "Digit1", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}}))
		assert.Equal(t, "Digit0", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}}))
	})

	t.Run("Punctuation", func(t *testing.T) {
		assert.Equal(t, "Semicolon", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{';'}}))
		assert.Equal(t, "Slash", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}))
		assert.Equal(t, "Backquote", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}}))
	})

	t.Run("SpecialKeys", func(t *testing.T) {
		assert.Equal(t, "Space", FromKeyMsg(tea.KeyMsg{Type: tea.KeySpace}))
		assert.Equal(t, "Enter", FromKeyMsg(tea.KeyMsg{Type: tea.KeyEnter}))
		assert.Equal(t, "Escape", FromKeyMsg(tea.KeyMsg{Type: tea.KeyEsc}))
		assert.Equal(t, "ArrowUp", FromKeyMsg(tea.KeyMsg{Type: tea.KeyUp}))
	})

	t.Run("AltModifiedKeysHaveNoCode", func(t *testing.T) {
		assert.Equal(t, "", FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}))
	})

	t.Run("ControlChordsHaveNoCode", func(t *testing.T) {
		assert.Equal(t, "", FromKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlC}))
	})
}

func TestIsValid(t *testing.T) {
	t.Run("NormalKeys", func(t *testing.T) {
		assert.True(t, IsValid("KeyA"))
		assert.True(t, IsValid("Digit5"))
		assert.True(t, IsValid("Space"))
	})

	t.Run("ReservedKeys", func(t *testing.T) {
		for _, code := range []string{
			"ShiftLeft", "ShiftRight", "ControlLeft", "ControlRight",
			"AltLeft", "AltRight", "MetaLeft", "MetaRight",
			"CapsLock", "NumLock", "ScrollLock", "ContextMenu", "Escape",
		} {
			assert.False(t, IsValid(code), "%s should be rejected", code)
		}
	})

	t.Run("EmptyCode", func(t *testing.T) {
		assert.False(t, IsValid(""))
	})
}

func TestFormat(t *testing.T) {
	t.Run("Prefixes", func(t *testing.T) {
		assert.Equal(t, "W", Format("KeyW"))
		assert.Equal(t, "1", Format("Digit1"))
		assert.Equal(t, "Num1", Format("Numpad1"))
	})

	t.Run("SpecialKeys", func(t *testing.T) {
		assert.Equal(t, "Space", Format("Space"))
		assert.Equal(t, "↑", Format("ArrowUp"))
		assert.Equal(t, ";", Format("Semicolon"))
	})

	t.Run("UnknownPassesThrough", func(t *testing.T) {
		assert.Equal(t, "F13", Format("F13"))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", Format(""))
	})
}
