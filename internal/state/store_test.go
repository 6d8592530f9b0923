package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/foreman/internal/factory"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	employees := []factory.Employee{{ID: "e1", Name: "Ana"}, {ID: "e2", Name: "Bo"}}
	branches := []factory.Branch{{ID: "b1", Name: "North"}}

	before := time.Now()
	s.Update(employees, branches, nil)

	snap := s.Snapshot()
	if !snap.HasDirectory || snap.Revision != 1 {
		t.Fatalf("HasDirectory/Revision = %v/%d, want true/1", snap.HasDirectory, snap.Revision)
	}
	if len(snap.Employees) != 2 || snap.Employees[0].ID != "e1" {
		t.Fatalf("snapshot employees = %#v, want 2 items", snap.Employees)
	}
	if len(snap.Branches) != 1 || snap.Branches[0].Name != "North" {
		t.Fatalf("snapshot branches = %#v", snap.Branches)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Employees[0].ID = "mutated"
	employees[1].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Employees[0].ID != "e1" || snap2.Employees[1].ID != "e2" {
		t.Fatalf("Snapshot should clone employees; got %#v", snap2.Employees)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]factory.Employee{{ID: "e1"}}, nil, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Employees, prev.Employees) {
		t.Fatalf("employees changed on error: got %#v want %#v", snap.Employees, prev.Employees)
	}
	if snap.Revision != prev.Revision {
		t.Fatalf("Revision = %d, want unchanged %d", snap.Revision, prev.Revision)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	tests := []struct {
		failures int
		offline  bool
	}{
		{1, false},
		{2, true},
		{3, true},
	}
	for _, tt := range tests {
		s.Update(nil, nil, errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != tt.failures {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, tt.failures)
		}
		if snap.IsOffline() != tt.offline {
			t.Fatalf("IsOffline() = %v with %d failures, want %v", snap.IsOffline(), tt.failures, tt.offline)
		}
	}

	s.Update([]factory.Employee{}, nil, nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v after success, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if !snap.HasDirectory {
		t.Fatalf("empty directory update should still mark HasDirectory")
	}
}
