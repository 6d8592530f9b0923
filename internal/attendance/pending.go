package attendance

import "github.com/five82/foreman/internal/factory"

// PendingRecord identifies an employee's already committed remote record.
type PendingRecord struct {
	RecordID string
	Days     []factory.DayRecord
}

// PendingRecords maps employee ids to their committed remote record. An
// employee without an entry has never been saved for the month.
type PendingRecords map[string]PendingRecord

// Has reports whether the employee has a committed remote record.
func (p PendingRecords) Has(employeeID string) bool {
	_, ok := p[employeeID]
	return ok
}

// RecordID returns the remote record id and whether one exists.
func (p PendingRecords) RecordID(employeeID string) (string, bool) {
	rec, ok := p[employeeID]
	return rec.RecordID, ok
}
