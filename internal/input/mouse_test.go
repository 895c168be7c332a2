package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundeck/internal/types"
)

func mouse(x, y int, button tea.MouseButton, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: button, Action: action}
}

func TestClickTogglesCard(t *testing.T) {
	m := testModel(t)
	r := m.CardRect(1)
	x, y := int(r.Left)+2, int(r.Top)+1

	HandleMouse(m, mouse(x, y, tea.MouseButtonLeft, tea.MouseActionPress))
	cmd := HandleMouse(m, mouse(x, y, tea.MouseButtonLeft, tea.MouseActionRelease))

	assert.Equal(t, 1, m.Cursor)
	assert.NotNil(t, cmd)
	c, _ := m.Pool.Get("b")
	assert.Equal(t, types.Playing, c.State())
}

func TestClickOutsideGridDoesNothing(t *testing.T) {
	m := testModel(t)
	HandleMouse(m, mouse(0, 0, tea.MouseButtonLeft, tea.MouseActionPress))
	HandleMouse(m, mouse(0, 0, tea.MouseButtonLeft, tea.MouseActionRelease))
	assert.Equal(t, -1, m.DragIndex)
	assert.Equal(t, 0, m.Cursor)
}

func TestDragReorders(t *testing.T) {
	m := testModel(t)
	r0 := m.CardRect(0)
	r1 := m.CardRect(1)

	HandleMouse(m, mouse(int(r0.Left)+2, int(r0.Top)+1, tea.MouseButtonLeft, tea.MouseActionPress))
	require.Equal(t, 0, m.DragIndex)

	// hovering just inside the next card is within the dead zone
	HandleMouse(m, mouse(int(r1.Left)+1, int(r1.Top)+1, tea.MouseButtonLeft, tea.MouseActionMotion))
	assert.Equal(t, "a", m.Clips()[0].ID)

	// past the midpoint threshold the cards swap
	HandleMouse(m, mouse(int(r1.Right)-2, int(r1.Top)+1, tea.MouseButtonLeft, tea.MouseActionMotion))
	assert.Equal(t, []string{"b", "a"}, []string{m.Clips()[0].ID, m.Clips()[1].ID})
	assert.Equal(t, 1, m.DragIndex, "drag follows the moved card")

	// releasing after a reorder does not also toggle playback
	cmd := HandleMouse(m, mouse(int(r1.Right)-2, int(r1.Top)+1, tea.MouseButtonLeft, tea.MouseActionRelease))
	assert.Nil(t, cmd)
	c, _ := m.Pool.Get("a")
	assert.Equal(t, types.Idle, c.State())
	assert.Equal(t, -1, m.DragIndex)
}

func TestWheelAdjustsCardVolume(t *testing.T) {
	m := testModel(t)
	r := m.CardRect(2)
	x, y := int(r.Left)+2, int(r.Top)+1

	HandleMouse(m, mouse(x, y, tea.MouseButtonWheelUp, tea.MouseActionPress))
	assert.InDelta(t, 0.55, m.Clips()[2].Volume, 1e-9)

	HandleMouse(m, mouse(x, y, tea.MouseButtonWheelDown, tea.MouseActionPress))
	HandleMouse(m, mouse(x, y, tea.MouseButtonWheelDown, tea.MouseActionPress))
	assert.InDelta(t, 0.45, m.Clips()[2].Volume, 1e-9)
}
