package views

import (
	"fmt"
	"strings"

	"soundeck/internal/model"
)

// RenderSettingsView renders the preferences screen.
func RenderSettingsView(m *model.Model) string {
	styles := getCommonStyles(m.Settings.DarkMode)
	var content strings.Builder

	content.WriteString(RenderHeader(m, "Settings", headerRight(m)))
	content.WriteString("\n")

	theme := "Light"
	if m.Settings.DarkMode {
		theme = "Dark"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Master volume:", volumeMeter(m.Settings.MasterVolume)},
		{"Theme:", theme},
		{"Restore defaults", ""},
		{"Delete account", ""},
	}

	for i, row := range rows {
		arrow := " "
		if m.SettingsCursor == i {
			arrow = "▶"
		}
		var valueCell string
		if row.value != "" {
			if m.SettingsCursor == i {
				valueCell = styles.Selected.Render(row.value)
			} else {
				valueCell = styles.Normal.Render(row.value)
			}
		}
		label := styles.Label.Render(fmt.Sprintf("%-18s", row.label))
		if row.value == "" {
			if m.SettingsCursor == i {
				label = styles.Selected.Render(fmt.Sprintf("%-18s", row.label))
			}
			if i == 3 && m.Guest {
				label = styles.Label.Render(fmt.Sprintf("%-18s", row.label+" (sign in first)"))
			}
		}
		content.WriteString(fmt.Sprintf("%s %s %s", arrow, label, valueCell))
		content.WriteString("\n")
	}

	if m.ConfirmAction != "" {
		content.WriteString("\n")
		content.WriteString(styles.Warn.Render("Press enter again to confirm"))
		content.WriteString("\n")
	}

	contentLines := 2 + len(rows)
	help := "arrows: navigate/adjust | enter: toggle/run | esc: back"
	content.WriteString(RenderFooter(m, contentLines, help))

	return styles.Container.Render(content.String())
}

func volumeMeter(v float64) string {
	const cells = 20
	filled := int(v*cells + 0.5)
	if filled > cells {
		filled = cells
	}
	return fmt.Sprintf("%s%s %3.0f%%", strings.Repeat("█", filled), strings.Repeat("░", cells-filled), v*100)
}
