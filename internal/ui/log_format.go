package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foreman/internal/logtail"
)

// formatLogEntries renders parsed log lines with level colors.
func formatLogEntries(entries []logtail.Entry, styles Styles) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, levelStyle(e.Level, styles).Render(logtail.Format(e, time.Local)))
	}
	return lines
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error", "fatal", "panic":
		return styles.DangerText
	case "warn", "warning":
		return styles.WarningText
	case "debug", "trace":
		return styles.FaintText
	default:
		return styles.Text
	}
}
