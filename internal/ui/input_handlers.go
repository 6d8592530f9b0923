package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foreman/internal/attendance"
	"github.com/five82/foreman/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.logs.open {
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.bulkCancel != nil {
			m.bulkCancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.logs.open = true
		m.logs.resize(m.width, m.bodyHeight())
		return m, readLogsCmd(m.config.LogFile)

	case key.Matches(msg, m.keys.Escape):
		m.endKeyPaint()
		if m.bulkCancel != nil {
			m.bulkCancel()
			m.notices.Notify(attendance.Notice{Level: attendance.LevelWarning, Message: "Cancelling mark all present"})
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(0, 1-m.cursorDay)
	case key.Matches(msg, m.keys.End):
		m.moveCursor(0, m.sheet.Days()-m.cursorDay)

	case key.Matches(msg, m.keys.Toggle):
		if cell, ok := m.cursorCell(); ok {
			_ = m.sheet.Paint().Click(cell)
		}
	case key.Matches(msg, m.keys.Drag):
		m.toggleKeyPaint()
	case key.Matches(msg, m.keys.FillRange):
		if cell, ok := m.cursorCell(); ok {
			m.endKeyPaint()
			_ = m.sheet.Paint().FillToAnchor(cell)
		}
	case key.Matches(msg, m.keys.Remark):
		return m.openRemark()

	case key.Matches(msg, m.keys.SelectRow):
		if emp, ok := m.employeeAt(m.cursorRow); ok {
			m.sheet.ToggleSelect(emp.ID)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.sheet.ToggleSelectAll()
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.MarkAll):
		return m.markAll()
	case key.Matches(msg, m.keys.CycleBranch):
		m.cycleBranch()

	case key.Matches(msg, m.keys.PrevMonth):
		return m.changeMonth(m.sheet.ShiftMonth(-1))
	case key.Matches(msg, m.keys.NextMonth):
		return m.changeMonth(m.sheet.ShiftMonth(1))
	case key.Matches(msg, m.keys.CurrentMonth):
		return m.changeMonth(m.sheet.SetMonth(attendance.MonthOf(m.now())))
	case key.Matches(msg, m.keys.Reload):
		cmd := m.startLoad(m.sheet.Reload())
		return m, cmd
	}
	return m, nil
}

// handleMouse maps pointer events onto paint gestures.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil || m.showHelp || m.logs.open {
		return m, nil
	}
	h := m.hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1, 0)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.moveCursor(1, 0)
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		m.endKeyPaint()
		switch h.kind {
		case hitSelectAll:
			m.sheet.ToggleSelectAll()
		case hitGutter:
			if emp, ok := m.employeeAt(h.row); ok {
				m.sheet.ToggleSelect(emp.ID)
			}
			m.cursorRow = h.row
		case hitName:
			m.cursorRow = h.row
		case hitCell:
			m.cursorRow, m.cursorDay = h.row, h.day
			if cell, ok := m.cursorCell(); ok {
				_ = m.sheet.Paint().PointerDown(cell, msg.Shift)
			}
		}

	case tea.MouseActionMotion:
		if h.kind != hitCell {
			m.sheet.Paint().PointerUp()
			return m, nil
		}
		if _, dragging := m.sheet.Paint().State().(attendance.Dragging); !dragging {
			return m, nil
		}
		m.cursorRow, m.cursorDay = h.row, h.day
		if cell, ok := m.cursorCell(); ok {
			m.sheet.Paint().PointerEnter(cell)
		}

	case tea.MouseActionRelease:
		m.sheet.Paint().PointerUp()
	}
	return m, nil
}

// moveCursor moves the keyboard cursor, extending a keyboard paint.
func (m *Model) moveCursor(dRow, dDay int) {
	m.cursorRow += dRow
	m.cursorDay += dDay
	m.clampCursor()
	if m.keyPainting {
		if cell, ok := m.cursorCell(); ok {
			m.sheet.Paint().PointerEnter(cell)
		}
	}
}

// toggleKeyPaint starts or finishes a drag driven from the keyboard.
func (m *Model) toggleKeyPaint() {
	if m.keyPainting {
		m.endKeyPaint()
		return
	}
	cell, ok := m.cursorCell()
	if !ok {
		return
	}
	if err := m.sheet.Paint().PointerDown(cell, false); err == nil {
		m.keyPainting = true
	}
}

func (m *Model) endKeyPaint() {
	if m.keyPainting {
		m.sheet.Paint().PointerUp()
		m.keyPainting = false
	}
}

// changeMonth resets cursor state and loads the new month.
func (m Model) changeMonth(ticket attendance.LoadTicket) (tea.Model, tea.Cmd) {
	m.keyPainting = false
	m.clampCursor()
	cmd := m.startLoad(ticket)
	return m, cmd
}

// save dispatches the selection's writes.
func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saving {
		m.notices.Notify(attendance.Notice{Level: attendance.LevelWarning, Message: "A save is already running"})
		return m, nil
	}
	m.endKeyPaint()
	plan, err := m.sheet.PlanSave()
	if err != nil {
		return m, nil
	}
	m.saving = true
	m.notices.Notify(attendance.Notice{Level: attendance.LevelInfo, Message: fmt.Sprintf("Saving %d employees...", len(plan.Requests))})
	return m, saveCmd(m.ctx, m.batcher, plan)
}

// markAll dispatches the bulk "mark all present" sequence.
func (m Model) markAll() (tea.Model, tea.Cmd) {
	if m.bulkCancel != nil {
		m.notices.Notify(attendance.Notice{Level: attendance.LevelWarning, Message: "Mark all present is already running"})
		return m, nil
	}
	plan, err := m.sheet.PlanMarkAllPresent()
	if err != nil {
		return m, nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.bulkCancel = cancel
	m.notices.Notify(attendance.Notice{
		Level:   attendance.LevelInfo,
		Message: fmt.Sprintf("Marking %s present (%d calls, esc cancels)...", plan.Month.Label(), plan.Calls()),
	})
	return m, bulkCmd(ctx, m.bulk, plan)
}

// cycleBranch moves the branch filter to the next branch and persists it.
func (m *Model) cycleBranch() {
	branches := m.sheet.Branches()
	ids := make([]string, 0, len(branches)+1)
	ids = append(ids, "")
	for _, b := range branches {
		ids = append(ids, b.ID)
	}
	next := ids[0]
	for i, id := range ids {
		if id == m.sheet.BranchFilter() {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	m.endKeyPaint()
	m.sheet.SetBranchFilter(next)
	m.prefs = m.prefs.WithBranch(m.config.CompanyID, next)
	m.savePrefs()
	m.clampCursor()
	m.notices.Notify(attendance.Notice{Level: attendance.LevelInfo, Message: "Branch: " + m.branchLabel()})
}

// openRemark opens the remark editor for the cursor row.
func (m Model) openRemark() (tea.Model, tea.Cmd) {
	emp, ok := m.employeeAt(m.cursorRow)
	if !ok {
		return m, nil
	}
	m.endKeyPaint()
	name := emp.Name
	if name == "" {
		name = emp.ID
	}
	modal, cmd := newRemarkModal(emp.ID, name, m.sheet.Month().Label(), m.sheet.Remark(emp.ID))
	m.modal = modal
	return m, cmd
}

// updateModal routes input to the open modal and applies its result on close.
func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, done := m.modal.Update(msg, m.keys)
	if !done {
		m.modal = next
		return m, cmd
	}
	m.modal = nil
	if r, ok := next.(*remarkModal); ok && r.confirmed {
		_ = m.sheet.SetRemark(r.employeeID, strings.TrimSpace(r.input.Value()))
	}
	return m, cmd
}

// handleLogsKey scrolls or closes the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape):
		m.logs.open = false
		return m, nil
	}
	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	m.logs.follow = m.logs.viewport.AtBottom()
	return m, cmd
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn().Err(err).Str("path", m.prefsPath).Msg("save preferences failed")
	}
}
