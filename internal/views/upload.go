package views

import (
	"fmt"
	"strings"

	"soundeck/internal/model"
)

// RenderUploadView renders the file picker over the data directory.
func RenderUploadView(m *model.Model) string {
	styles := getCommonStyles(m.Settings.DarkMode)
	var content strings.Builder

	content.WriteString(RenderHeader(m, fmt.Sprintf("Add sound: %s", m.DataDir), headerRight(m)))
	content.WriteString("\n")
	contentLines := 2

	if len(m.UploadFiles) == 0 {
		content.WriteString(styles.Label.Render("No audio files found. Drop .wav/.mp3/.ogg/.flac files into the data directory."))
		content.WriteString("\n")
		contentLines++
	}

	for i, name := range m.UploadFiles {
		arrow := " "
		cell := styles.Normal.Render(name)
		if i == m.UploadCursor {
			arrow = "▶"
			cell = styles.Selected.Render(name)
		}
		content.WriteString(fmt.Sprintf("%s %s", arrow, cell))
		content.WriteString("\n")
		contentLines++
	}

	help := "enter: add | esc: back"
	content.WriteString(RenderFooter(m, contentLines, help))

	return styles.Container.Render(content.String())
}
