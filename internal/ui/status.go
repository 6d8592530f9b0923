package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foreman/internal/attendance"
)

const maxNotices = 50

type noticeEntry struct {
	attendance.Notice
	At time.Time
}

// noticeLog collects notices from the sheet for the status line.
type noticeLog struct {
	entries []noticeEntry
	now     func() time.Time
}

// Notify implements attendance.Notifier.
func (l *noticeLog) Notify(n attendance.Notice) {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.entries = append(l.entries, noticeEntry{Notice: n, At: now()})
	if len(l.entries) > maxNotices {
		l.entries = l.entries[len(l.entries)-maxNotices:]
	}
}

// Latest returns the most recent notice.
func (l *noticeLog) Latest() (noticeEntry, bool) {
	if len(l.entries) == 0 {
		return noticeEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// renderStatusLine renders the latest notice, or a legend once it expires.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if n, ok := m.notices.Latest(); ok && m.now().Sub(n.At) < NoticeTTL {
		return bg.FillLine(bg.Render(n.Message, noticeStyle(styles, n.Level)), m.width)
	}

	legend := []string{
		styles.StatusStyle("present").Render(" P ") + bg.Space() + bg.Render(titleCase("present"), styles.MutedText),
		styles.StatusStyle("absent").Render(" A ") + bg.Space() + bg.Render(titleCase("absent"), styles.MutedText),
		bg.Render("*", styles.WarningText) + bg.Space() + bg.Render("selected", styles.MutedText),
		bg.Render("#", styles.WarningText) + bg.Space() + bg.Render("saved (select to edit)", styles.MutedText),
		bg.Render("~", styles.Text) + bg.Space() + bg.Render("remark", styles.MutedText),
	}
	return bg.FillLine(bg.Join(legend, "   "), m.width)
}

func noticeStyle(styles Styles, level attendance.Level) lipgloss.Style {
	switch level {
	case attendance.LevelSuccess:
		return styles.SuccessText
	case attendance.LevelWarning:
		return styles.WarningText
	case attendance.LevelError:
		return styles.DangerText
	default:
		return styles.InfoText
	}
}
