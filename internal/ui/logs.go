package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foreman/internal/logtail"
)

// logView holds the log overlay state.
type logView struct {
	open     bool
	follow   bool
	ready    bool
	viewport viewport.Model
	count    int
	err      error
}

// resize fits the viewport below the log title line.
func (l *logView) resize(width, height int) {
	h := maxInt(height-1, 1)
	if !l.ready {
		l.viewport = viewport.New(width, h)
		l.follow = true
		l.ready = true
		return
	}
	l.viewport.Width = width
	l.viewport.Height = h
}

// setEntries replaces the log content, keeping the tail in view when following.
func (l *logView) setEntries(entries []logtail.Entry, err error, styles Styles) {
	if !l.ready {
		l.resize(80, 20)
	}
	l.err = err
	l.count = len(entries)
	if len(entries) == 0 {
		l.viewport.SetContent(styles.MutedText.Render("No log entries"))
		return
	}
	l.viewport.SetContent(strings.Join(formatLogEntries(entries, styles), "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// view renders the title line and the scrolled log lines.
func (l logView) view(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := styles.AccentText.Bold(true).Render("Log")
	status := fmt.Sprintf("%d lines  auto-tail %s  esc closes", l.count, ternary(l.follow, "on", "off"))
	line := title + "  " + styles.FaintText.Render(status)
	if l.err != nil {
		line += "  " + styles.DangerText.Render(l.err.Error())
	}
	body := l.viewport.View()
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(line + "\n" + body)
}
