package devserver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/foreman/internal/factory"
)

var (
	errUnknownCompany = errors.New("unknown company")
	errUnknownRecord  = errors.New("unknown record")
	errDuplicate      = errors.New("record already exists for employee and month")
	errDayOutOfRange  = errors.New("day outside month")
)

type record struct {
	id         string
	employeeID string
	year       int
	month      int
	days       map[int]string
	remark     string
}

type company struct {
	employees []factory.Employee
	branches  []factory.Branch
	records   map[string]*record // by record id
}

// Store is the in-memory attendance backend. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	companies map[string]*company
	newID     func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{companies: make(map[string]*company), newID: uuid.NewString}
}

// Seed installs or replaces a company directory and drops its records.
func (s *Store) Seed(companyID string, employees []factory.Employee, branches []factory.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[companyID] = &company{
		employees: append([]factory.Employee(nil), employees...),
		branches:  append([]factory.Branch(nil), branches...),
		records:   make(map[string]*record),
	}
}

// SeedDemo installs a small two-branch directory.
func (s *Store) SeedDemo(companyID string) {
	branches := []factory.Branch{{ID: "north", Name: "North Plant"}, {ID: "south", Name: "South Plant"}}
	names := []string{"Ava Cole", "Ben Ortiz", "Chen Wei", "Dana Kim", "Eli Novak", "Fay Moss", "Gus Hale", "Hana Ito"}
	employees := make([]factory.Employee, 0, len(names))
	for i, name := range names {
		branch := branches[i%len(branches)].ID
		employees = append(employees, factory.Employee{
			ID:       fmt.Sprintf("emp-%02d", i+1),
			Name:     name,
			BranchID: branch,
			Active:   i != len(names)-1,
		})
	}
	s.Seed(companyID, employees, branches)
}

func (s *Store) company(id string) (*company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownCompany, id)
	}
	return c, nil
}

// Employees returns the company's employee directory.
func (s *Store) Employees(companyID string) ([]factory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.company(companyID)
	if err != nil {
		return nil, err
	}
	return append([]factory.Employee{}, c.employees...), nil
}

// Branches returns the company's branch directory.
func (s *Store) Branches(companyID string) ([]factory.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.company(companyID)
	if err != nil {
		return nil, err
	}
	return append([]factory.Branch{}, c.branches...), nil
}

// Month returns one row per record of the month, ordered by employee id.
// A month without records yields an empty slice.
func (s *Store) Month(companyID string, year, month int) ([]factory.MonthRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.company(companyID)
	if err != nil {
		return nil, err
	}
	rows := make([]factory.MonthRow, 0)
	for _, rec := range c.records {
		if rec.year != year || rec.month != month {
			continue
		}
		rows = append(rows, rec.row())
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })
	return rows, nil
}

// Create stores a new record and returns its id.
func (s *Store) Create(companyID string, req factory.CreateRecordRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.company(companyID)
	if err != nil {
		return "", err
	}
	if c.find(req.EmployeeID, req.Year, req.Month) != nil {
		return "", errDuplicate
	}
	days, err := toDays(req.Year, req.Month, req.Records)
	if err != nil {
		return "", err
	}
	rec := &record{
		id:         s.newID(),
		employeeID: req.EmployeeID,
		year:       req.Year,
		month:      req.Month,
		days:       days,
		remark:     req.Remark,
	}
	c.records[rec.id] = rec
	return rec.id, nil
}

// Update replaces the days and remark of an existing record.
func (s *Store) Update(companyID, recordID string, req factory.UpdateRecordRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.company(companyID)
	if err != nil {
		return err
	}
	rec, ok := c.records[recordID]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownRecord, recordID)
	}
	days, err := toDays(rec.year, rec.month, req.Records)
	if err != nil {
		return err
	}
	rec.days = days
	rec.remark = req.Remark
	return nil
}

// MarkPresent marks every active employee of the branch present on one day,
// creating records where none exist.
func (s *Store) MarkPresent(companyID string, req factory.MarkPresentRequest) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.company(companyID)
	if err != nil {
		return 0, err
	}
	if req.Day > daysIn(req.Year, req.Month) {
		return 0, fmt.Errorf("%w: %d", errDayOutOfRange, req.Day)
	}
	marked := 0
	for _, emp := range c.employees {
		if !emp.Active || emp.BranchID != req.BranchID {
			continue
		}
		rec := c.find(emp.ID, req.Year, req.Month)
		if rec == nil {
			rec = &record{id: s.newID(), employeeID: emp.ID, year: req.Year, month: req.Month, days: make(map[int]string)}
			c.records[rec.id] = rec
		}
		rec.days[req.Day] = factory.StatusPresent
		marked++
	}
	return marked, nil
}

// Clear deletes every record of a month. It backs the "cleared month" case.
func (s *Store) Clear(companyID string, year, month int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.company(companyID)
	if err != nil {
		return err
	}
	for id, rec := range c.records {
		if rec.year == year && rec.month == month {
			delete(c.records, id)
		}
	}
	return nil
}

func (c *company) find(employeeID string, year, month int) *record {
	for _, rec := range c.records {
		if rec.employeeID == employeeID && rec.year == year && rec.month == month {
			return rec
		}
	}
	return nil
}

func (r *record) row() factory.MonthRow {
	days := make([]int, 0, len(r.days))
	for d := range r.days {
		days = append(days, d)
	}
	sort.Ints(days)

	present, absent := 0, 0
	records := make([]factory.DayRecord, 0, len(days))
	for _, d := range days {
		status := r.days[d]
		switch status {
		case factory.StatusPresent, factory.StatusHalfDay:
			present++
		case factory.StatusAbsent:
			absent++
		}
		records = append(records, factory.DayRecord{Day: d, Status: status})
	}
	id := r.id
	row := factory.MonthRow{
		EmployeeID:   r.employeeID,
		Records:      records,
		PresentTotal: &present,
		AbsentTotal:  &absent,
		RecordID:     &id,
	}
	if strings.TrimSpace(r.remark) != "" {
		remark := r.remark
		row.Remark = &remark
	}
	return row
}

func toDays(year, month int, records []factory.DayRecord) (map[int]string, error) {
	limit := daysIn(year, month)
	days := make(map[int]string, len(records))
	for _, rec := range records {
		if rec.Day < 1 || rec.Day > limit {
			return nil, fmt.Errorf("%w: %d", errDayOutOfRange, rec.Day)
		}
		days[rec.Day] = rec.Status
	}
	return days, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
