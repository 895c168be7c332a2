package views

import (
	"fmt"
	"strings"

	"soundeck/internal/model"
	"soundeck/internal/types"
)

const (
	// trimWaveRows is the waveform height in character cells. Each cell is
	// subdivided into eighths for smoother rendering.
	trimWaveRows    = 8
	segmentsPerCell = 8
)

// RenderTrimView renders the trim editor: the clip's waveform, the current
// selection, and a timestamp ruler.
func RenderTrimView(m *model.Model) string {
	styles := getCommonStyles(m.Settings.DarkMode)
	var content strings.Builder

	clip, title := trimClip(m)
	content.WriteString(RenderHeader(m, "Trim: "+title, headerRight(m)))
	content.WriteString("\n")
	contentLines := 2

	if m.Editor == nil {
		content.WriteString(styles.Label.Render("Loading audio..."))
		content.WriteString("\n")
		content.WriteString(RenderFooter(m, contentLines+1, "esc: back"))
		return styles.Container.Render(content.String())
	}

	waveWidth := m.TermWidth - 4
	if waveWidth < 40 {
		waveWidth = 40
	}
	// record geometry so pointer events can be mapped back to seconds
	m.EditorCols = waveWidth
	m.EditorLeft = 2
	m.EditorTop = 3

	duration := m.Editor.Duration()
	env, envErr := m.Editor.Envelope()
	if envErr != nil {
		content.WriteString(styles.Warn.Render("Waveform unavailable: " + envErr.Error()))
		content.WriteString("\n")
		contentLines++
	} else {
		content.WriteString(renderEnvelopeWave(m, styles, env, waveWidth, trimWaveRows, duration))
		content.WriteString(timestampRuler(waveWidth, 0, duration))
		contentLines += trimWaveRows + 2
	}

	content.WriteString("\n")
	contentLines++
	content.WriteString(styles.Normal.Render(trimInfo(m, clip, duration)))
	content.WriteString("\n")
	contentLines++

	help := "drag: select | space: preview | enter/s: save | c: clear | esc: cancel"
	content.WriteString(RenderFooter(m, contentLines, help))

	return styles.Container.Render(content.String())
}

func trimClip(m *model.Model) (types.Clip, string) {
	clips := m.Clips()
	for _, c := range clips {
		if c.ID == m.EditorClipID {
			return c, c.Title
		}
	}
	return types.Clip{}, "?"
}

func trimInfo(m *model.Model, clip types.Clip, duration float64) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Duration: %.2fs", duration))
	if sel := m.Editor.Selection(); sel != nil {
		parts = append(parts, fmt.Sprintf("Selection: %.2fs - %.2fs (%.2fs)", sel.Start, sel.End, sel.End-sel.Start))
	} else {
		parts = append(parts, "Selection: full clip")
	}
	if c, ok := m.Pool.Get(clip.ID); ok && c.State() != types.Idle {
		parts = append(parts, fmt.Sprintf("Playhead: %.2fs", c.Position()))
	}
	return strings.Join(parts, " | ")
}

// renderEnvelopeWave draws a symmetric amplitude envelope using eighth
// block characters, with the selection and playhead picked out by color.
func renderEnvelopeWave(m *model.Model, styles *ViewStyles, env []float64, width, height int, duration float64) string {
	virtualHeight := height * segmentsPerCell
	grid := make([][]bool, virtualHeight)
	for i := range grid {
		grid[i] = make([]bool, width)
	}

	center := virtualHeight / 2
	for x := 0; x < width; x++ {
		var v float64
		if len(env) > 0 {
			v = env[x*len(env)/width]
		}
		extent := int(v * float64(center))
		if v > 0 && extent == 0 {
			extent = 1
		}
		for y := center - extent; y <= center+extent-1; y++ {
			if y >= 0 && y < virtualHeight {
				grid[y][x] = true
			}
		}
	}

	selFrom, selTo := -1, -1
	if sel := m.Editor.Selection(); sel != nil && duration > 0 {
		selFrom = int(sel.Start / duration * float64(width))
		selTo = int(sel.End / duration * float64(width))
	}
	playCol := -1
	if c, ok := m.Pool.Get(m.EditorClipID); ok && c.State() == types.Playing && duration > 0 {
		playCol = int(c.Position() / duration * float64(width))
	}

	var sb strings.Builder
	centerRow := height / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var ch string
			if y < centerRow {
				ch = upperBlockChar(grid, x, y)
			} else {
				ch = lowerBlockChar(grid, x, y)
			}
			switch {
			case x == playCol:
				sb.WriteString(styles.Playing.Render(blockOrBar(ch)))
			case selFrom >= 0 && x >= selFrom && x < selTo:
				sb.WriteString(styles.Wave.Render(ch))
			default:
				sb.WriteString(styles.WaveDim.Render(ch))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// blockOrBar makes the playhead visible even over silence.
func blockOrBar(ch string) string {
	if ch == " " {
		return "│"
	}
	return ch
}

// upperBlockChar returns the block character for a cell in the upper half:
// blocks hang down from the top of the cell.
func upperBlockChar(grid [][]bool, x, y int) string {
	baseY := y * segmentsPerCell

	lowestFilled := -1
	for i := segmentsPerCell - 1; i >= 0; i-- {
		segY := baseY + i
		if segY < len(grid) && grid[segY][x] {
			lowestFilled = i
			break
		}
	}
	if lowestFilled == -1 {
		return " "
	}

	switch lowestFilled + 1 {
	case 1:
		return "▔"
	case 2:
		return "🮂"
	case 3:
		return "🮃"
	case 4:
		return "▀"
	case 5:
		return "🮄"
	case 6:
		return "🮅"
	case 7:
		return "🮆"
	default:
		return "█"
	}
}

// lowerBlockChar returns the block character for a cell in the lower half:
// blocks grow up from the bottom of the cell.
func lowerBlockChar(grid [][]bool, x, y int) string {
	baseY := y * segmentsPerCell

	highestFilled := -1
	for i := 0; i < segmentsPerCell; i++ {
		segY := baseY + i
		if segY < len(grid) && grid[segY][x] {
			highestFilled = i
			break
		}
	}
	if highestFilled == -1 {
		return " "
	}

	switch segmentsPerCell - highestFilled {
	case 1:
		return "▁"
	case 2:
		return "▂"
	case 3:
		return "▃"
	case 4:
		return "▄"
	case 5:
		return "▅"
	case 6:
		return "▆"
	case 7:
		return "▇"
	default:
		return "█"
	}
}

// timestampRuler creates tick marks and time labels under the waveform.
func timestampRuler(width int, start, end float64) string {
	duration := end - start
	if duration <= 0 || width < 2 {
		return ""
	}

	var precision int
	var interval float64
	switch {
	case duration < 1.0:
		precision = 3
		interval = 0.05
	case duration < 10.0:
		precision = 2
		interval = 0.5
	case duration < 60.0:
		precision = 1
		interval = 2.0
	default:
		precision = 0
		interval = 10.0
	}

	numTimestamps := int(duration / interval)
	if numTimestamps < 5 {
		numTimestamps = 5
		interval = duration / float64(numTimestamps)
	} else if numTimestamps > 15 {
		numTimestamps = 12
		interval = duration / float64(numTimestamps)
	}

	tickLine := make([]rune, width)
	for i := range tickLine {
		tickLine[i] = ' '
	}
	labels := make(map[int]string)

	for i := 0; i <= numTimestamps; i++ {
		t := start + float64(i)*interval
		if t > end {
			t = end
		}
		pos := int(float64(width-1) * (t - start) / duration)
		if pos >= 0 && pos < width {
			tickLine[pos] = '|'
			labels[pos] = fmt.Sprintf("%.*f", precision, t)
		}
	}

	labelLine := make([]rune, width)
	for i := range labelLine {
		labelLine[i] = ' '
	}
	for pos, label := range labels {
		startPos := pos - len(label)/2
		if startPos < 0 {
			startPos = 0
		}
		if startPos+len(label) > width {
			startPos = width - len(label)
		}
		for i, ch := range label {
			if startPos+i >= 0 && startPos+i < width {
				labelLine[startPos+i] = ch
			}
		}
	}

	return string(tickLine) + "\n" + string(labelLine) + "\n"
}
