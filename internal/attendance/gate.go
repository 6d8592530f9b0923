package attendance

import (
	"fmt"
	"sort"
)

// Gate holds the set of employees unlocked for bulk mutation and save.
type Gate struct {
	selected map[string]struct{}
}

func newGate() *Gate {
	return &Gate{selected: make(map[string]struct{})}
}

// Has reports whether the employee is selected.
func (g *Gate) Has(employeeID string) bool {
	_, ok := g.selected[employeeID]
	return ok
}

// Len returns the number of selected employees.
func (g *Gate) Len() int { return len(g.selected) }

// IDs returns the selected employee ids, sorted.
func (g *Gate) IDs() []string {
	ids := make([]string, 0, len(g.selected))
	for id := range g.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Gate) add(employeeID string)    { g.selected[employeeID] = struct{}{} }
func (g *Gate) remove(employeeID string) { delete(g.selected, employeeID) }
func (g *Gate) clear()                   { g.selected = make(map[string]struct{}) }

// IsLocked reports whether edits to the employee are blocked: a committed
// remote record exists and the row has not been selected.
func (s *Sheet) IsLocked(employeeID string) bool {
	return s.pending.Has(employeeID) && !s.gate.Has(employeeID)
}

// Selected reports whether the employee is in the selection set.
func (s *Sheet) Selected(employeeID string) bool {
	return s.gate.Has(employeeID)
}

// Selection returns the selected employee ids, sorted.
func (s *Sheet) Selection() []string {
	return s.gate.IDs()
}

// admit inserts a never-committed employee into the selection on first edit.
func (s *Sheet) admit(employeeID string) {
	if !s.pending.Has(employeeID) {
		s.gate.add(employeeID)
	}
}

// ToggleSelect flips one employee's selection membership.
func (s *Sheet) ToggleSelect(employeeID string) {
	if s.gate.Has(employeeID) {
		s.gate.remove(employeeID)
		return
	}
	s.gate.add(employeeID)
}

// ToggleSelectAll is the header selection control. When no visible employee
// shows any mark or nonzero total it selects everyone and paints every day
// Present. Otherwise it only toggles membership and never touches marks.
func (s *Sheet) ToggleSelectAll() {
	visible := s.Visible()
	if len(visible) == 0 {
		return
	}

	if !s.month.IsFuture() && !s.anyMarks() {
		days := s.Days()
		for _, emp := range visible {
			s.gate.add(emp.ID)
			s.matrix.Fill(emp.ID, 1, days, Present)
		}
		s.notify(LevelInfo, fmt.Sprintf("Selected %d employees and marked %s present", len(visible), s.Month().Label()))
		return
	}

	all := true
	for _, emp := range visible {
		if !s.gate.Has(emp.ID) {
			all = false
			break
		}
	}
	for _, emp := range visible {
		if all {
			s.gate.remove(emp.ID)
		} else {
			s.gate.add(emp.ID)
		}
	}
}

// anyMarks reports whether a visible employee shows a Present/Absent day or a
// nonzero total.
func (s *Sheet) anyMarks() bool {
	for _, emp := range s.Visible() {
		if s.matrix.HasMarks(emp.ID) || !s.Tally(emp.ID).Zero() {
			return true
		}
	}
	return false
}
