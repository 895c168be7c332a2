package views

import (
	"fmt"
	"strings"

	"soundeck/internal/model"
)

// RenderHelpView renders the key reference.
func RenderHelpView(m *model.Model) string {
	styles := getCommonStyles(m.Settings.DarkMode)
	var content strings.Builder

	content.WriteString(RenderHeader(m, "Help", ""))
	content.WriteString("\n")

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Board", [][2]string{
			{"arrows", "move between cards"},
			{"enter / space / click", "play or pause the selected sound"},
			{"x", "stop the selected sound"},
			{"esc", "stop every sound"},
			{"drag", "reorder cards"},
			{"wheel / [ ]", "per-sound volume"},
			{"+ -", "master volume"},
		}},
		{"Sounds", [][2]string{
			{"h", "bind a hotkey (esc cancels)"},
			{"t", "trim the selected sound"},
			{"r", "rename the selected sound"},
			{"d", "delete the selected sound"},
			{"u", "add a sound from the data directory"},
		}},
		{"Trim editor", [][2]string{
			{"drag", "select the region to keep"},
			{"space", "play / pause the selection preview"},
			{"enter / s", "save"},
			{"c", "clear the selection"},
			{"esc", "cancel"},
		}},
		{"Everywhere", [][2]string{
			{"bound hotkeys", "play their sound from any view"},
			{"s", "settings"},
			{"q / ctrl+c", "quit"},
		}},
	}

	contentLines := 2
	for _, section := range sections {
		content.WriteString(styles.Normal.Render(section.title))
		content.WriteString("\n")
		contentLines++
		for _, kv := range section.keys {
			content.WriteString(fmt.Sprintf("  %s %s", styles.Hotkey.Render(fmt.Sprintf("%-22s", kv[0])), styles.Label.Render(kv[1])))
			content.WriteString("\n")
			contentLines++
		}
		content.WriteString("\n")
		contentLines++
	}

	content.WriteString(RenderFooter(m, contentLines, "any key: back"))
	return styles.Container.Render(content.String())
}
