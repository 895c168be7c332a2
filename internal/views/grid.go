package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"soundeck/internal/keycode"
	"soundeck/internal/model"
	"soundeck/internal/types"
)

var barRunes = []rune(" ▁▂▃▄▅▆▇█")

// cardInner is the visible width of one card; the rest of model.CardWidth
// is the gap between columns.
const cardInner = model.CardWidth - 2

// RenderGridView renders the soundboard: one card per clip, in rows.
func RenderGridView(m *model.Model) string {
	styles := getCommonStyles(m.Settings.DarkMode)
	var content strings.Builder

	content.WriteString(RenderHeader(m, "Soundeck", headerRight(m)))
	content.WriteString("\n")

	clips := m.Clips()
	contentLines := 2
	if !m.Loaded {
		content.WriteString(styles.Label.Render("Loading sounds..."))
		content.WriteString("\n")
		contentLines++
	} else if len(clips) == 0 {
		content.WriteString(styles.Label.Render("No sounds yet. Press u to add one."))
		content.WriteString("\n")
		contentLines++
	} else {
		cols := m.GridColumns()
		for rowStart := 0; rowStart < len(clips); rowStart += cols {
			rowEnd := rowStart + cols
			if rowEnd > len(clips) {
				rowEnd = len(clips)
			}
			lines := make([]string, 4)
			for i := rowStart; i < rowEnd; i++ {
				card := renderCard(m, styles, clips[i], i)
				for l := 0; l < 4; l++ {
					lines[l] += card[l]
				}
			}
			for _, line := range lines {
				content.WriteString(line)
				content.WriteString("\n")
			}
			content.WriteString("\n")
			contentLines += model.CardHeight
		}
	}

	help := "enter/click: play | h: hotkey | t: trim | r: rename | d: delete | u: upload | s: settings | ?: help"
	content.WriteString(RenderFooter(m, contentLines, help))

	return styles.Container.Render(content.String())
}

// renderCard builds the four content lines of one card, each exactly
// model.CardWidth columns wide.
func renderCard(m *model.Model, styles *ViewStyles, clip types.Clip, index int) [4]string {
	selected := index == m.Cursor

	marker := "  "
	if selected {
		marker = "▸ "
	}
	title := clip.Title
	if selected && m.Renaming {
		title = m.RenameInput.View()
	}
	head := marker
	if clip.Emoji != "" {
		head += clip.Emoji + " "
	}
	head += title
	headLine := padCell(head, cardInner)
	if selected && !m.Renaming {
		headLine = styles.Selected.Render(headLine)
	} else {
		headLine = styles.Normal.Render(headLine)
	}

	waveLine := renderCardWave(m, styles, clip)

	stateLine := styles.Label.Render(padCell(cardStatus(m, clip), cardInner))

	hotkey := "h: bind key"
	hkStyle := styles.Label
	if clip.Hotkey != "" {
		hotkey = "key: " + keycode.Format(clip.Hotkey)
		hkStyle = styles.Hotkey
	}
	if id, ok := m.Router.Capturing(); ok && id == clip.ID {
		hotkey = "press a key..."
		hkStyle = styles.Warn
	}
	hotkeyLine := hkStyle.Render(padCell("  "+hotkey, cardInner))

	gap := "  "
	return [4]string{
		headLine + gap,
		waveLine + gap,
		stateLine + gap,
		hotkeyLine + gap,
	}
}

// renderCardWave draws the card's envelope, shading the trim window and the
// already-played portion.
func renderCardWave(m *model.Model, styles *ViewStyles, clip types.Clip) string {
	env := m.CardEnvelope(clip.ID)
	bars := cardInner - 4
	if bars < 1 {
		bars = 1
	}

	var progress float64
	duration := clip.DurationSeconds
	if c, ok := m.Pool.Get(clip.ID); ok {
		if d := c.Duration(); d > 0 {
			duration = d
		}
		if c.State() != types.Idle && duration > 0 {
			progress = c.Position() / duration
		}
	}

	trimFrom, trimTo := 0.0, 1.0
	if clip.HasTrim() && duration > 0 {
		trimFrom = clip.StartTime() / duration
		trimTo = clip.EndTime() / duration
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for i := 0; i < bars; i++ {
		v := env[i*len(env)/bars]
		idx := int(v*float64(len(barRunes)-1) + 0.5)
		if idx <= 0 && v > 0 {
			idx = 1
		}
		ch := string(barRunes[idx])

		frac := float64(i) / float64(bars)
		switch {
		case frac < trimFrom || frac >= trimTo:
			sb.WriteString(styles.WaveDim.Render(ch))
		case progress > 0 && frac <= progress:
			sb.WriteString(styles.WaveDone.Render(ch))
		default:
			sb.WriteString(styles.Wave.Render(ch))
		}
	}
	line := sb.String()
	pad := cardInner - 2 - bars
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

func cardStatus(m *model.Model, clip types.Clip) string {
	icon := "·"
	pos := clip.StartTime()
	duration := clip.DurationSeconds
	if c, ok := m.Pool.Get(clip.ID); ok {
		if c.Disabled() {
			return "  ! audio unavailable"
		}
		if d := c.Duration(); d > 0 {
			duration = d
		}
		switch c.State() {
		case types.Playing:
			icon = "▶"
			pos = c.Position()
		case types.Paused:
			icon = "❚❚"
			pos = c.Position()
		}
	}
	return fmt.Sprintf("  %s %.1f/%.1fs  vol %d%%", icon, pos, duration, int(clip.Volume*100+0.5))
}

// padCell pads or truncates s to exactly w terminal columns, emoji included.
func padCell(s string, w int) string {
	width := lipgloss.Width(s)
	if width > w {
		runes := []rune(s)
		for width > w-1 && len(runes) > 0 {
			runes = runes[:len(runes)-1]
			width = lipgloss.Width(string(runes))
		}
		s = string(runes) + "…"
		width = lipgloss.Width(s)
	}
	if width < w {
		s += strings.Repeat(" ", w-width)
	}
	return s
}
