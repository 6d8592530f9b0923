package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
	"github.com/five82/foreman/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	base := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // would be 8m
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateBackoff(tt.failures, base); got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	for failures := 0; failures <= 64; failures++ {
		if got := calculateBackoff(failures, 2*time.Second); got > maxBackoff {
			t.Errorf("calculateBackoff(%d) = %v, exceeds maxBackoff %v", failures, got, maxBackoff)
		}
	}
}

type fakeDirectory struct {
	employees []factory.Employee
	branches  []factory.Branch
	empErr    error
	branchErr error
	company   string
}

func (f *fakeDirectory) ListEmployees(_ context.Context, companyID string) ([]factory.Employee, error) {
	f.company = companyID
	return f.employees, f.empErr
}

func (f *fakeDirectory) ListBranches(_ context.Context, _ string) ([]factory.Branch, error) {
	return f.branches, f.branchErr
}

func TestPoller_Refresh(t *testing.T) {
	dir := &fakeDirectory{
		employees: []factory.Employee{{ID: "e1", Active: true}},
		branches:  []factory.Branch{{ID: "b1"}},
	}
	store := &state.Store{}
	p := &Poller{Store: store, Directory: dir, CompanyID: "acme", Logger: zerolog.Nop()}

	p.Refresh(context.Background())
	snap := store.Snapshot()
	if dir.company != "acme" {
		t.Fatalf("company = %q, want acme", dir.company)
	}
	if !snap.HasDirectory || len(snap.Employees) != 1 || len(snap.Branches) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}

	dir.branchErr = errors.New("branches down")
	p.Refresh(context.Background())
	snap = store.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.LastError == nil {
		t.Fatalf("failures/err = %d/%v, want 1/error", snap.ConsecutiveFailures, snap.LastError)
	}
	if len(snap.Employees) != 1 {
		t.Fatalf("failed poll dropped the previous directory")
	}
}

func TestPoller_StartStopsOnCancel(t *testing.T) {
	dir := &fakeDirectory{employees: []factory.Employee{{ID: "e1"}}}
	store := &state.Store{}
	p := &Poller{Store: store, Directory: dir, CompanyID: "acme", Interval: time.Hour, Logger: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().HasDirectory {
		if time.Now().After(deadline) {
			t.Fatalf("poller never refreshed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
