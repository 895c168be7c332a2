package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"soundeck/internal/model"
	"soundeck/internal/registry"
	"soundeck/internal/types"
)

// HandleMouse routes pointer events. The grid supports click-to-toggle and
// drag-to-reorder; the trim view maps the pointer straight onto the
// waveform timeline.
func HandleMouse(m *model.Model, msg tea.MouseMsg) tea.Cmd {
	if m.ViewMode == types.TrimView {
		return handleTrimMouse(m, msg)
	}
	if m.ViewMode != types.GridView {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if i := m.CardAt(msg.X, msg.Y); i >= 0 {
			m.Cursor = i
			m.AdjustSelectedVolume(volumeStep)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if i := m.CardAt(msg.X, msg.Y); i >= 0 {
			m.Cursor = i
			m.AdjustSelectedVolume(-volumeStep)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		i := m.CardAt(msg.X, msg.Y)
		if id, ok := m.Router.Capturing(); ok {
			// clicking anywhere but the capturing card calls it off
			if i < 0 || m.Clips()[i].ID != id {
				m.Router.CancelCapture()
				m.SetStatus("Hotkey capture cancelled")
			}
		}
		if i >= 0 {
			m.Cursor = i
			m.DragIndex = i
			m.DragMoved = false
		}
		return nil

	case tea.MouseActionMotion:
		if m.DragIndex < 0 {
			return nil
		}
		hover := m.CardAt(msg.X, msg.Y)
		if hover < 0 || hover == m.DragIndex {
			return nil
		}
		pointer := registry.Point{X: float64(msg.X), Y: float64(msg.Y)}
		if registry.ShouldSwap(m.DragIndex, hover, m.CardRect(hover), pointer) {
			m.MoveCard(m.DragIndex, hover)
			m.DragIndex = hover
			m.DragMoved = true
		}
		return nil

	case tea.MouseActionRelease:
		wasDrag := m.DragMoved
		pressIndex := m.DragIndex
		m.DragIndex = -1
		m.DragMoved = false
		if !wasDrag && pressIndex >= 0 && m.CardAt(msg.X, msg.Y) == pressIndex {
			m.ToggleSelected()
			return Tick()
		}
		return nil
	}
	return nil
}

// handleTrimMouse drives the editor's selection: press anchors, motion
// widens, release commits and auditions.
func handleTrimMouse(m *model.Model, msg tea.MouseMsg) tea.Cmd {
	if m.Editor == nil || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if t, ok := m.EditorTimeAt(msg.X); ok {
			m.Editor.PointerDown(t)
		}
	case tea.MouseActionMotion:
		if t, ok := m.EditorTimeAt(msg.X); ok {
			m.Editor.PointerMove(t)
		}
	case tea.MouseActionRelease:
		if sel, ok := m.Editor.PointerUp(); ok {
			m.PreviewSelection(sel)
			return Tick()
		}
	}
	return nil
}
