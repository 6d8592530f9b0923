package attendance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
)

// fixedNow pins the calendar to mid June 2025.
func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)
}

var (
	may2025  = Month{Year: 2025, Month: time.May}
	june2025 = Month{Year: 2025, Month: time.June}
	july2025 = Month{Year: 2025, Month: time.July}
)

type noticeLog struct {
	notices []Notice
}

func (l *noticeLog) Notify(n Notice) { l.notices = append(l.notices, n) }

func (l *noticeLog) last() Notice {
	if len(l.notices) == 0 {
		return Notice{}
	}
	return l.notices[len(l.notices)-1]
}

func emp(id, branch string) factory.Employee {
	return factory.Employee{ID: id, Name: "Emp " + id, BranchID: branch, Active: true}
}

func newTestSheet(t *testing.T, employees ...factory.Employee) (*Sheet, *noticeLog) {
	t.Helper()
	notices := &noticeLog{}
	s := NewSheet(Options{Now: fixedNow, Notifier: notices, Logger: zerolog.Nop()})
	s.SetRoster(employees, []factory.Branch{{ID: "b1", Name: "North"}, {ID: "b2", Name: "South"}})
	return s, notices
}

// applyRows runs rows through the same parse/apply path a real load uses.
func applyRows(t *testing.T, s *Sheet, rows []factory.MonthRow) {
	t.Helper()
	ticket := s.Reload()
	parsed, skipped := ParseSnapshot(rows, ticket.Month.Days(), zerolog.Nop())
	res := LoadResult{Ticket: ticket, Rows: parsed, Empty: len(rows) == 0, Skipped: skipped}
	if err := s.ApplyLoad(res); err != nil {
		t.Fatalf("ApplyLoad returned error: %v", err)
	}
}

func rowOf(t *testing.T, s *Sheet, employeeID string, days ...int) []DayStatus {
	t.Helper()
	out := make([]DayStatus, 0, len(days))
	for _, d := range days {
		out = append(out, s.Status(employeeID, d))
	}
	return out
}

func ptr[T any](v T) *T { return &v }

type fakeAPI struct {
	mu sync.Mutex

	months   map[string][]factory.MonthRow
	fetchErr error

	creates []factory.CreateRecordRequest
	updates map[string]factory.UpdateRecordRequest
	marks   []factory.MarkPresentRequest

	failCreate map[string]error
	failUpdate map[string]error
	failMark   func(factory.MarkPresentRequest) error

	nextID int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		months:     make(map[string][]factory.MonthRow),
		updates:    make(map[string]factory.UpdateRecordRequest),
		failCreate: make(map[string]error),
		failUpdate: make(map[string]error),
	}
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (f *fakeAPI) FetchMonth(_ context.Context, _ string, year, month int) ([]factory.MonthRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]factory.MonthRow{}, f.months[monthKey(year, month)]...), nil
}

func (f *fakeAPI) CreateRecord(_ context.Context, _ string, req factory.CreateRecordRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failCreate[req.EmployeeID]; err != nil {
		return "", err
	}
	f.creates = append(f.creates, req)
	f.nextID++
	return fmt.Sprintf("rec-%d", f.nextID), nil
}

func (f *fakeAPI) UpdateRecord(_ context.Context, _ string, recordID string, req factory.UpdateRecordRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failUpdate[recordID]; err != nil {
		return err
	}
	f.updates[recordID] = req
	return nil
}

func (f *fakeAPI) MarkAllPresent(_ context.Context, _ string, req factory.MarkPresentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marks = append(f.marks, req)
	if f.failMark != nil {
		return f.failMark(req)
	}
	return nil
}

func (f *fakeAPI) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates) + len(f.updates) + len(f.marks)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
