package model

import "soundeck/internal/registry"

// Grid layout constants, shared by the renderer and the mouse hit tests so
// the two can never disagree about where a card is.
const (
	CardWidth  = 24
	CardHeight = 5

	gridLeft = 2
	gridTop  = 3
)

// GridColumns is how many cards fit per row at the current terminal width.
func (m *Model) GridColumns() int {
	cols := (m.TermWidth - 2*gridLeft) / CardWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// CardRect is the screen rectangle of card i, in terminal cells.
func (m *Model) CardRect(i int) registry.Rect {
	cols := m.GridColumns()
	row := i / cols
	col := i % cols
	left := gridLeft + col*CardWidth
	top := gridTop + row*CardHeight
	return registry.Rect{
		Left:   float64(left),
		Top:    float64(top),
		Right:  float64(left + CardWidth - 1),
		Bottom: float64(top + CardHeight - 1),
	}
}

// CardAt maps a terminal cell to the card index under it, or -1.
func (m *Model) CardAt(x, y int) int {
	if x < gridLeft || y < gridTop {
		return -1
	}
	col := (x - gridLeft) / CardWidth
	row := (y - gridTop) / CardHeight
	if col >= m.GridColumns() {
		return -1
	}
	i := row*m.GridColumns() + col
	if i >= m.Board.Len() {
		return -1
	}
	return i
}

// EditorTimeAt maps a terminal column inside the waveform to a time in
// seconds. The renderer records the waveform's left edge and width.
func (m *Model) EditorTimeAt(x int) (float64, bool) {
	if m.Editor == nil || m.EditorCols <= 0 {
		return 0, false
	}
	frac := float64(x-m.EditorLeft) / float64(m.EditorCols)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac * m.Editor.Duration(), true
}
