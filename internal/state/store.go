package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/foreman/internal/factory"
)

// Snapshot is the latest employee and branch directory available to the UI.
type Snapshot struct {
	Employees           []factory.Employee
	Branches            []factory.Branch
	HasDirectory        bool
	Revision            uint64 // bumped on every successful update
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored directory. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(employees []factory.Employee, branches []factory.Branch, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Employees = cloneSlice(employees)
	s.snapshot.Branches = cloneSlice(branches)
	s.snapshot.HasDirectory = true
	s.snapshot.Revision++
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Employees = cloneSlice(s.snapshot.Employees)
	snap.Branches = cloneSlice(s.snapshot.Branches)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
