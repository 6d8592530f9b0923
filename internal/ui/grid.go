package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foreman/internal/attendance"
	"github.com/five82/foreman/internal/factory"
)

// hitKind classifies what a screen position lands on.
type hitKind int

const (
	hitNone hitKind = iota
	hitSelectAll
	hitGutter
	hitName
	hitCell
)

type hit struct {
	kind hitKind
	row  int // index into the visible employees
	day  int
}

// cellWidth is the width of one day column.
func (m Model) cellWidth() int {
	if m.width > 0 && m.width < LayoutWideWidth {
		return 2
	}
	return 3
}

// dayStart is the x offset of day 1.
func (m Model) dayStart() int {
	return gutterWidth + nameColumnWidth
}

// gridTop is the y offset of the day header row.
func (m Model) gridTop() int {
	return headerLines
}

// bodyHeight is the number of employee rows that fit on screen.
func (m Model) bodyHeight() int {
	return maxInt(m.height-headerLines-1-footerLines, 1)
}

// hitTest maps a terminal position onto the grid.
func (m Model) hitTest(x, y int) hit {
	top := m.gridTop()
	if y == top {
		if x >= 0 && x < gutterWidth {
			return hit{kind: hitSelectAll}
		}
		return hit{}
	}
	line := y - top - 1
	if line < 0 || line >= m.bodyHeight() {
		return hit{}
	}
	row := m.rowOffset + line
	if row >= len(m.sheet.Visible()) {
		return hit{}
	}
	switch {
	case x < 0:
		return hit{}
	case x < gutterWidth:
		return hit{kind: hitGutter, row: row}
	case x < m.dayStart():
		return hit{kind: hitName, row: row}
	}
	day := (x-m.dayStart())/m.cellWidth() + 1
	if day > m.sheet.Days() {
		return hit{}
	}
	return hit{kind: hitCell, row: row, day: day}
}

// employeeAt returns the visible employee at row.
func (m Model) employeeAt(row int) (factory.Employee, bool) {
	visible := m.sheet.Visible()
	if row < 0 || row >= len(visible) {
		return factory.Employee{}, false
	}
	return visible[row], true
}

// cursorCell returns the cell under the keyboard cursor.
func (m Model) cursorCell() (attendance.Cell, bool) {
	emp, ok := m.employeeAt(m.cursorRow)
	if !ok {
		return attendance.Cell{}, false
	}
	return attendance.Cell{EmployeeID: emp.ID, Day: m.cursorDay}, true
}

// clampCursor keeps the cursor inside the visible grid.
func (m *Model) clampCursor() {
	rows := len(m.sheet.Visible())
	m.cursorRow = clamp(m.cursorRow, 0, rows-1)
	m.cursorDay = clamp(m.cursorDay, 1, m.sheet.Days())
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls so the cursor row is on screen.
func (m *Model) ensureCursorVisible() {
	body := m.bodyHeight()
	if m.cursorRow < m.rowOffset {
		m.rowOffset = m.cursorRow
	}
	if m.cursorRow >= m.rowOffset+body {
		m.rowOffset = m.cursorRow - body + 1
	}
	rows := len(m.sheet.Visible())
	m.rowOffset = clamp(m.rowOffset, 0, rows-body)
}

// renderGrid renders the day header and the visible employee rows.
func (m Model) renderGrid() string {
	styles := m.theme.Styles()
	visible := m.sheet.Visible()
	body := m.bodyHeight()

	lines := make([]string, 0, body+1)
	lines = append(lines, m.renderDayHeader(styles, visible))

	if len(visible) == 0 {
		msg := "No employees"
		if !m.snapshot.HasDirectory {
			msg = "Waiting for the employee directory..."
		}
		lines = append(lines, styles.MutedText.Render(padRight("", gutterWidth)+msg))
	}

	end := minInt(m.rowOffset+body, len(visible))
	for row := m.rowOffset; row < end; row++ {
		lines = append(lines, m.renderRow(styles, row, visible[row]))
	}
	for len(lines) < body+1 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDayHeader(styles Styles, visible []factory.Employee) string {
	all := len(visible) > 0
	for _, emp := range visible {
		if !m.sheet.Selected(emp.ID) {
			all = false
			break
		}
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(ternary(all, "[x]", "[ ]")))
	b.WriteString(styles.MutedText.Bold(true).Render(padRight("Employee", nameColumnWidth)))

	cw := m.cellWidth()
	start := m.sheet.Month().First()
	for day := 1; day <= m.sheet.Days(); day++ {
		label := padLeft(strconv.Itoa(day), cw)
		style := styles.MutedText
		if wd := start.AddDate(0, 0, day-1).Weekday(); wd == 0 || wd == 6 {
			style = styles.FaintText
		}
		if day == m.cursorDay {
			style = styles.AccentText.Bold(true)
		}
		b.WriteString(style.Render(label))
	}
	b.WriteString(styles.MutedText.Bold(true).Render(padLeft("P/A", totalsColumnWidth)))
	return b.String()
}

func (m Model) renderRow(styles Styles, row int, emp factory.Employee) string {
	locked := m.sheet.IsLocked(emp.ID)
	selected := m.sheet.Selected(emp.ID)
	future := m.sheet.IsFuture()

	var b strings.Builder
	marker := ternary(selected, "*", " ") + ternary(locked, "#", ternary(m.sheet.HasRecord(emp.ID), "+", " ")) + " "
	b.WriteString(styles.WarningText.Render(marker))

	name := emp.Name
	if name == "" {
		name = emp.ID
	}
	if strings.TrimSpace(m.sheet.Remark(emp.ID)) != "" {
		name += " ~"
	}
	nameStyle := styles.Text
	switch {
	case row == m.cursorRow:
		nameStyle = styles.AccentText.Bold(true)
	case locked:
		nameStyle = styles.FaintText
	}
	b.WriteString(nameStyle.Render(padRight(truncate(name, nameColumnWidth-1), nameColumnWidth)))

	cw := m.cellWidth()
	for day := 1; day <= m.sheet.Days(); day++ {
		status := m.sheet.Status(emp.ID, day)
		style := m.cellStyle(styles, status, locked, future)
		if row == m.cursorRow && day == m.cursorDay {
			style = styles.Selected.Bold(true)
		}
		b.WriteString(style.Render(cellGlyph(status, cw)))
	}

	tally := m.sheet.Tally(emp.ID)
	totals := fmt.Sprintf("%d/%d", tally.Present, tally.Absent)
	b.WriteString(styles.Text.Render(padLeft(totals, totalsColumnWidth)))
	return b.String()
}

func (m Model) cellStyle(styles Styles, status attendance.DayStatus, locked, future bool) lipgloss.Style {
	switch {
	case future:
		return styles.StatusStyle("future")
	case locked && status == attendance.Unmarked:
		return styles.StatusStyle("locked")
	case status == attendance.Unmarked:
		return styles.StatusStyle("unmarked").Foreground(lipgloss.Color(m.theme.Faint))
	default:
		return styles.StatusStyle(status.String())
	}
}

// cellGlyph renders one day cell padded to width.
func cellGlyph(status attendance.DayStatus, width int) string {
	glyph := "."
	switch status {
	case attendance.Present:
		glyph = "P"
	case attendance.Absent:
		glyph = "A"
	}
	if width >= 3 {
		return " " + glyph + strings.Repeat(" ", width-2)
	}
	return padRight(glyph, width)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
