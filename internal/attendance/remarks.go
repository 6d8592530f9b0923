package attendance

// Remarks holds the month-level free-text remark of each employee.
type Remarks map[string]string

// Get returns the remark for an employee, empty when unset.
func (r Remarks) Get(employeeID string) string {
	return r[employeeID]
}

// Set stores a remark. An empty remark removes the entry.
func (r Remarks) Set(employeeID, remark string) {
	if remark == "" {
		delete(r, employeeID)
		return
	}
	r[employeeID] = remark
}
