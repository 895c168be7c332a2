// Package views renders the application screens. Layout geometry for the
// grid comes from the model so mouse hit tests and rendering agree.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"soundeck/internal/model"
)

// Common styles used across all views
type ViewStyles struct {
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Label     lipgloss.Style
	Container lipgloss.Style
	Playing   lipgloss.Style
	Hotkey    lipgloss.Style
	Warn      lipgloss.Style
	Wave      lipgloss.Style
	WaveDone  lipgloss.Style
	WaveDim   lipgloss.Style
}

// getCommonStyles returns the standard style definitions used across views.
// Light mode swaps the text colors; the terminal supplies the background.
func getCommonStyles(dark bool) *ViewStyles {
	normal := lipgloss.Color("15")
	label := lipgloss.Color("8")
	if !dark {
		normal = lipgloss.Color("0")
		label = lipgloss.Color("7")
	}
	return &ViewStyles{
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("7")).Foreground(lipgloss.Color("0")),
		Normal:    lipgloss.NewStyle().Foreground(normal),
		Label:     lipgloss.NewStyle().Foreground(label),
		Container: lipgloss.NewStyle().Padding(1, 2),
		Playing:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Hotkey:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Wave:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		WaveDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		WaveDim:   lipgloss.NewStyle().Foreground(label),
	}
}

// RenderHeader renders the one-line header with left and right content
// separated by padding.
func RenderHeader(m *model.Model, leftContent, rightContent string) string {
	availableWidth := m.TermWidth - 4 // container padding
	leftLen := lipgloss.Width(leftContent)
	rightLen := lipgloss.Width(rightContent)

	paddingSize := availableWidth - leftLen - rightLen
	if paddingSize < 1 {
		paddingSize = 1
	}

	fullHeader := leftContent
	if rightContent != "" {
		fullHeader += strings.Repeat(" ", paddingSize) + rightContent
	}
	return fullHeader + "\n"
}

// RenderFooter fills the remaining vertical space, then renders the help
// line and any transient status message.
func RenderFooter(m *model.Model, contentLines int, helpText string) string {
	styles := getCommonStyles(m.Settings.DarkMode)
	var content strings.Builder

	status := m.Status()
	footerLines := 1
	if status != "" {
		footerLines++
	}

	// header takes 2 lines, container padding 2
	maxContentLines := m.TermHeight - 4 - footerLines
	if m.TermHeight > 0 && contentLines < maxContentLines {
		content.WriteString(strings.Repeat("\n", maxContentLines-contentLines))
	}

	content.WriteString(styles.Label.Render(helpText))
	if status != "" {
		content.WriteString("\n")
		content.WriteString(styles.Normal.Render(status))
	}
	return content.String()
}

// headerRight summarizes session and storage for the header's right side.
func headerRight(m *model.Model) string {
	if m.Guest {
		return "guest"
	}
	if m.SessionExpired {
		return "session expired"
	}
	if m.Usage != nil {
		return fmt.Sprintf("storage %.0f%% (%s / %s)",
			m.Usage.UsagePercent, formatBytes(m.Usage.CurrentBytes), formatBytes(m.Usage.MaxBytes))
	}
	return ""
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.0f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
