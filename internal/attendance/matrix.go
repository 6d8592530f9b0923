package attendance

import "sort"

// Row is one employee's sparse day→status mapping. A missing day is Unmarked.
type Row map[int]DayStatus

// Matrix is the in-memory attendance grid for a single month.
type Matrix struct {
	rows map[string]Row
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{rows: make(map[string]Row)}
}

// Get returns the status of a cell, Unmarked when no key is present.
func (m *Matrix) Get(employeeID string, day int) DayStatus {
	return m.rows[employeeID][day]
}

// Set writes one cell, creating the row when needed.
func (m *Matrix) Set(employeeID string, day int, status DayStatus) {
	row, ok := m.rows[employeeID]
	if !ok {
		row = make(Row)
		m.rows[employeeID] = row
	}
	row[day] = status
}

// Fill writes status on every day of the inclusive range between a and b.
func (m *Matrix) Fill(employeeID string, a, b int, status DayStatus) {
	if a > b {
		a, b = b, a
	}
	for day := a; day <= b; day++ {
		m.Set(employeeID, day, status)
	}
}

// Replace discards the employee's row and installs row in its place.
func (m *Matrix) Replace(employeeID string, row Row) {
	dup := make(Row, len(row))
	for day, status := range row {
		dup[day] = status
	}
	m.rows[employeeID] = dup
}

// Clear forces days 1..days of the employee's row to Unmarked.
func (m *Matrix) Clear(employeeID string, days int) {
	row := make(Row, days)
	for day := 1; day <= days; day++ {
		row[day] = Unmarked
	}
	m.rows[employeeID] = row
}

// FillMissing sets Unmarked on every day of 1..days that has no key. Existing
// keys are never overwritten.
func (m *Matrix) FillMissing(employeeID string, days int) {
	row, ok := m.rows[employeeID]
	if !ok {
		row = make(Row, days)
		m.rows[employeeID] = row
	}
	for day := 1; day <= days; day++ {
		if _, ok := row[day]; !ok {
			row[day] = Unmarked
		}
	}
}

// HasKeys reports whether the employee's row holds at least one key,
// including explicit Unmarked keys.
func (m *Matrix) HasKeys(employeeID string) bool {
	return len(m.rows[employeeID]) > 0
}

// HasMarks reports whether the employee's row holds any Present or Absent day.
func (m *Matrix) HasMarks(employeeID string) bool {
	for _, status := range m.rows[employeeID] {
		if status.Marked() {
			return true
		}
	}
	return false
}

// Count tallies Present and Absent days of the employee's row.
func (m *Matrix) Count(employeeID string) Tally {
	var t Tally
	for _, status := range m.rows[employeeID] {
		switch status {
		case Present:
			t.Present++
		case Absent:
			t.Absent++
		}
	}
	return t
}

// Row returns a copy of the employee's row.
func (m *Matrix) Row(employeeID string) Row {
	src := m.rows[employeeID]
	if src == nil {
		return nil
	}
	dup := make(Row, len(src))
	for day, status := range src {
		dup[day] = status
	}
	return dup
}

// Marked returns the employee's non-Unmarked days in ascending day order.
func (m *Matrix) Marked(employeeID string) []int {
	var days []int
	for day, status := range m.rows[employeeID] {
		if status.Marked() {
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days
}

// Employees returns the ids holding a row, sorted.
func (m *Matrix) Employees() []string {
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset discards every row.
func (m *Matrix) Reset() {
	m.rows = make(map[string]Row)
}
