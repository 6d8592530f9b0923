package attendance

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
)

// Options configure a Sheet.
type Options struct {
	Now      func() time.Time // clock used for the future-month lock; nil uses time.Now
	Notifier Notifier
	Logger   zerolog.Logger
}

// Sheet is the in-memory state tree of the monthly attendance editor.
//
// A Sheet is not safe for concurrent use. Every method must be called from
// the event loop that owns it; remote calls run elsewhere and hand their
// results back through ApplyLoad, FinishSave and FinishMarkAll.
type Sheet struct {
	month   *MonthContext
	matrix  *Matrix
	remarks Remarks
	totals  Totals
	pending PendingRecords
	gate    *Gate
	painter *Painter

	roster   []factory.Employee
	branches []factory.Branch
	branch   string

	notifier Notifier
	log      zerolog.Logger
}

// NewSheet builds an empty sheet positioned on the current month. Call
// Reload to obtain the ticket for the first load.
func NewSheet(opts Options) *Sheet {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	s := &Sheet{
		month:    NewMonthContext(opts.Now),
		notifier: notifier,
		log:      opts.Logger,
		gate:     newGate(),
	}
	s.painter = &Painter{sheet: s, drag: Idle{}}
	s.resetMonthState()
	return s
}

// Month returns the active month.
func (s *Sheet) Month() Month { return s.month.Month() }

// Days returns the number of days in the active month.
func (s *Sheet) Days() int { return s.month.Days() }

// IsFuture reports whether the active month is locked as a future month.
func (s *Sheet) IsFuture() bool { return s.month.IsFuture() }

// Paint returns the gesture interpreter bound to this sheet.
func (s *Sheet) Paint() *Painter { return s.painter }

// SetMonth switches month, discards every month-scoped entity and returns
// the ticket the next load must carry.
func (s *Sheet) SetMonth(m Month) LoadTicket {
	s.resetMonthState()
	ticket := s.month.set(m)
	s.log.Debug().Str("month", m.Key()).Uint64("generation", ticket.Generation).Msg("month changed")
	return ticket
}

// ShiftMonth moves delta months from the active one.
func (s *Sheet) ShiftMonth(delta int) LoadTicket {
	return s.SetMonth(s.month.Month().Shift(delta))
}

// Reload returns a fresh ticket for the active month. Loads issued before it
// are discarded when they resolve.
func (s *Sheet) Reload() LoadTicket {
	return s.month.next()
}

func (s *Sheet) resetMonthState() {
	s.matrix = NewMatrix()
	s.remarks = make(Remarks)
	s.totals = make(Totals)
	s.pending = make(PendingRecords)
	s.gate.clear()
	s.painter.reset()
}

// SetRoster installs the employee and branch directories.
func (s *Sheet) SetRoster(employees []factory.Employee, branches []factory.Branch) {
	s.roster = append([]factory.Employee(nil), employees...)
	s.branches = append([]factory.Branch(nil), branches...)
}

// Branches returns the known branches.
func (s *Sheet) Branches() []factory.Branch {
	return append([]factory.Branch(nil), s.branches...)
}

// SetBranchFilter narrows the visible employees to one branch. An empty id
// shows every branch.
func (s *Sheet) SetBranchFilter(branchID string) {
	s.branch = branchID
}

// BranchFilter returns the active branch filter, empty for all.
func (s *Sheet) BranchFilter() string { return s.branch }

// Visible returns the active employees matching the branch filter, in
// directory order.
func (s *Sheet) Visible() []factory.Employee {
	out := make([]factory.Employee, 0, len(s.roster))
	for _, emp := range s.roster {
		if !emp.Active {
			continue
		}
		if s.branch != "" && emp.BranchID != s.branch {
			continue
		}
		out = append(out, emp)
	}
	return out
}

func (s *Sheet) active() []factory.Employee {
	out := make([]factory.Employee, 0, len(s.roster))
	for _, emp := range s.roster {
		if emp.Active {
			out = append(out, emp)
		}
	}
	return out
}

func (s *Sheet) employeeName(id string) string {
	for _, emp := range s.roster {
		if emp.ID == id && emp.Name != "" {
			return emp.Name
		}
	}
	return id
}

// Status returns the status of one cell.
func (s *Sheet) Status(employeeID string, day int) DayStatus {
	return s.matrix.Get(employeeID, day)
}

// Row returns a copy of the employee's row.
func (s *Sheet) Row(employeeID string) Row {
	return s.matrix.Row(employeeID)
}

// HasMarks reports whether the employee's row holds any Present or Absent day.
func (s *Sheet) HasMarks(employeeID string) bool {
	return s.matrix.HasMarks(employeeID)
}

// Tally returns the employee's present/absent totals.
func (s *Sheet) Tally(employeeID string) Tally {
	return s.totals.Lookup(employeeID, s.matrix)
}

// Remark returns the employee's month remark.
func (s *Sheet) Remark(employeeID string) string {
	return s.remarks.Get(employeeID)
}

// HasRecord reports whether the employee already has a committed remote record.
func (s *Sheet) HasRecord(employeeID string) bool {
	return s.pending.Has(employeeID)
}

// SetRemark edits the employee's month remark, subject to the same gating
// as cell edits.
func (s *Sheet) SetRemark(employeeID, remark string) error {
	if err := s.checkMutable(employeeID); err != nil {
		return err
	}
	s.remarks.Set(employeeID, remark)
	s.matrix.FillMissing(employeeID, s.Days())
	s.admit(employeeID)
	return nil
}

// checkMutable rejects edits on future months and gate-locked employees.
func (s *Sheet) checkMutable(employeeID string) error {
	if s.month.IsFuture() {
		return s.rejected(reject(ErrFutureMonth, "%s is in the future; attendance cannot be edited yet", s.Month().Label()))
	}
	if s.IsLocked(employeeID) {
		return s.rejected(reject(ErrLocked, "%s is already saved; select the row to edit it", s.employeeName(employeeID)))
	}
	return nil
}

func (s *Sheet) rejected(r *Rejection) error {
	s.log.Debug().Err(r.Reason).Msg(r.Message)
	s.notifier.Notify(Notice{Level: LevelWarning, Message: r.Message})
	return r
}

func (s *Sheet) notify(level Level, message string) {
	s.notifier.Notify(Notice{Level: level, Message: message})
}
