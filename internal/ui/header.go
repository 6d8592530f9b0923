package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: month, branch, selection and remote state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("foreman", styles.Logo),
		bg.Render(m.config.CompanyID, styles.MutedText),
		bg.Render(m.sheet.Month().Label(), styles.Text.Bold(true)),
	}
	if m.sheet.IsFuture() {
		parts = append(parts, bg.Render("FUTURE (read only)", styles.WarningText.Bold(true)))
	}
	parts = append(parts, bg.Render("branch", styles.FaintText)+bg.Space()+bg.Render(m.branchLabel(), styles.AccentText))

	if n := len(m.sheet.Selection()); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d selected", n), styles.WarningText))
	}

	switch {
	case m.bulkCancel != nil:
		parts = append(parts, bg.Render("Marking present...", styles.InfoText.Bold(true)))
	case m.saving:
		parts = append(parts, bg.Render("Saving...", styles.InfoText.Bold(true)))
	case m.loading:
		parts = append(parts, bg.Render("Loading...", styles.MutedText))
	}

	parts = append(parts, m.directoryStatus(styles, bg))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  ")+sep)
}

// directoryStatus reports the employee directory poll state.
func (m Model) directoryStatus(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case snap.IsOffline():
		return bg.Render("OFFLINE", styles.DangerText) + bg.Space() + bg.Render("retrying...", styles.WarningText)
	case snap.LastError != nil:
		return bg.Render("directory poll failed", styles.WarningText)
	case !snap.HasDirectory:
		return bg.Render("connecting...", styles.MutedText)
	default:
		return bg.Render(fmt.Sprintf("%d employees", len(m.sheet.Visible())), styles.MutedText) +
			bg.Space() + bg.Render(snap.LastUpdated.Format("15:04:05"), styles.FaintText)
	}
}

// branchLabel names the active branch filter.
func (m Model) branchLabel() string {
	id := m.sheet.BranchFilter()
	if id == "" {
		return "All"
	}
	for _, b := range m.sheet.Branches() {
		if b.ID == id && b.Name != "" {
			return b.Name
		}
	}
	return id
}

// renderCommandBar renders the key hint line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	hints := []struct{ key, desc string }{
		{"[ ]", "month"},
		{"space", "toggle"},
		{"v", "paint"},
		{"f", "fill"},
		{"x", "select"},
		{"a", "all"},
		{"s", "save"},
		{"M", "mark all"},
		{"b", "branch"},
		{"r", "remark"},
		{"L", "logs"},
		{"?", "help"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, bg.Render("<"+h.key+">", styles.AccentText)+bg.Space()+bg.Render(h.desc, styles.MutedText))
	}
	line := strings.Join(parts, bg.Spaces(2))
	return bg.FillLine(line, m.width)
}
