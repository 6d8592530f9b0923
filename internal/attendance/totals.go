package attendance

// Tally is a present/absent count for one employee and month.
type Tally struct {
	Present int
	Absent  int
}

// Zero reports whether both counts are zero.
func (t Tally) Zero() bool {
	return t.Present == 0 && t.Absent == 0
}

// Totals caches remote totals per employee.
type Totals map[string]Tally

// Lookup returns the cached tally when one exists, otherwise the count
// derived from the matrix.
func (t Totals) Lookup(employeeID string, m *Matrix) Tally {
	if tally, ok := t[employeeID]; ok {
		return tally
	}
	return m.Count(employeeID)
}
