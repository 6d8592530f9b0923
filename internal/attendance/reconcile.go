package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
)

// ErrStaleLoad is returned by ApplyLoad when the result targets a month or
// generation that is no longer live.
var ErrStaleLoad = errors.New("stale load discarded")

// SnapshotRow is one parsed employee entry of a month snapshot.
type SnapshotRow struct {
	EmployeeID string
	Row        Row
	Remark     string
	Totals     *Tally
	RecordID   string
	Raw        []factory.DayRecord
}

// LoadResult is the outcome of fetching one month snapshot. It is built off
// the event loop and carries no reference to Sheet state.
type LoadResult struct {
	Ticket  LoadTicket
	Rows    []SnapshotRow
	Empty   bool // the remote returned zero rows: the month is cleared
	Skipped int  // malformed rows dropped during parsing
	Err     error
}

// Reconciler reads month snapshots from the remote store.
type Reconciler struct {
	api       factory.AttendanceAPI
	companyID string
	log       zerolog.Logger
}

// NewReconciler builds a Reconciler for one company.
func NewReconciler(api factory.AttendanceAPI, companyID string, logger zerolog.Logger) *Reconciler {
	return &Reconciler{api: api, companyID: companyID, log: logger}
}

// Fetch reads the snapshot for the ticket's month. It is safe to call from
// any goroutine.
func (r *Reconciler) Fetch(ctx context.Context, ticket LoadTicket) LoadResult {
	m := ticket.Month
	rows, err := r.api.FetchMonth(ctx, r.companyID, m.Year, int(m.Month))
	if err != nil {
		r.log.Warn().Err(err).Str("month", m.Key()).Msg("month load failed")
		return LoadResult{Ticket: ticket, Err: err}
	}
	parsed, skipped := ParseSnapshot(rows, m.Days(), r.log)
	r.log.Debug().
		Str("month", m.Key()).
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Uint64("generation", ticket.Generation).
		Msg("month loaded")
	return LoadResult{Ticket: ticket, Rows: parsed, Empty: len(rows) == 0, Skipped: skipped}
}

// ParseSnapshot converts remote rows into matrix rows. Rows without an
// employee id are skipped; unknown statuses and days outside 1..days are
// dropped from their row.
func ParseSnapshot(rows []factory.MonthRow, days int, logger zerolog.Logger) ([]SnapshotRow, int) {
	out := make([]SnapshotRow, 0, len(rows))
	skipped := 0
	for i, raw := range rows {
		id := strings.TrimSpace(raw.EmployeeID)
		if id == "" {
			skipped++
			logger.Warn().Int("index", i).Msg("skipping attendance row without employee id")
			continue
		}

		row := make(Row, len(raw.Records))
		for _, rec := range raw.Records {
			if rec.Day < 1 || rec.Day > days {
				logger.Warn().Str("employee", id).Int("day", rec.Day).Msg("dropping out-of-range day")
				continue
			}
			status, ok := ParseRemoteStatus(rec.Status)
			if !ok {
				logger.Warn().Str("employee", id).Str("status", rec.Status).Msg("dropping unknown status")
				continue
			}
			row[rec.Day] = status
		}

		entry := SnapshotRow{
			EmployeeID: id,
			Row:        row,
			Raw:        append([]factory.DayRecord(nil), raw.Records...),
		}
		if raw.Remark != nil {
			entry.Remark = *raw.Remark
		}
		if raw.RecordID != nil {
			entry.RecordID = strings.TrimSpace(*raw.RecordID)
		}
		if raw.PresentTotal != nil || raw.AbsentTotal != nil {
			var t Tally
			if raw.PresentTotal != nil {
				t.Present = *raw.PresentTotal
			}
			if raw.AbsentTotal != nil {
				t.Absent = *raw.AbsentTotal
			}
			entry.Totals = &t
		}
		out = append(out, entry)
	}
	return out, skipped
}

// ApplyLoad merges a completed load into the sheet. A stale result is
// discarded, a failed one leaves state untouched, an empty one clears the
// month. Application is all-or-nothing.
func (s *Sheet) ApplyLoad(res LoadResult) error {
	if !s.month.Current(res.Ticket) {
		s.log.Debug().
			Str("month", res.Ticket.Month.Key()).
			Uint64("generation", res.Ticket.Generation).
			Uint64("live", s.month.Generation()).
			Msg("discarding stale load")
		return ErrStaleLoad
	}
	if res.Err != nil {
		err := &LoadError{Month: res.Ticket.Month, Err: res.Err}
		s.notify(LevelError, err.Error())
		return err
	}

	days := s.Days()
	if res.Empty {
		s.matrix.Reset()
		s.remarks = make(Remarks)
		s.totals = make(Totals)
		s.pending = make(PendingRecords)
		for _, emp := range s.active() {
			s.matrix.Clear(emp.ID, days)
		}
		return nil
	}

	for _, row := range res.Rows {
		s.matrix.Replace(row.EmployeeID, row.Row)
		if row.Totals != nil {
			s.totals[row.EmployeeID] = *row.Totals
		} else {
			s.totals[row.EmployeeID] = s.matrix.Count(row.EmployeeID)
		}
		s.remarks.Set(row.EmployeeID, row.Remark)
		if row.RecordID != "" {
			s.pending[row.EmployeeID] = PendingRecord{RecordID: row.RecordID, Days: row.Raw}
		} else {
			delete(s.pending, row.EmployeeID)
		}
	}

	// Default fill runs inside the same apply step so it can only add
	// Unmarked keys around the data just merged.
	for _, emp := range s.active() {
		s.matrix.FillMissing(emp.ID, days)
	}
	for _, row := range res.Rows {
		s.matrix.FillMissing(row.EmployeeID, days)
	}

	if res.Skipped > 0 {
		s.notify(LevelWarning, fmt.Sprintf("Skipped %d attendance rows without an employee", res.Skipped))
	}
	return nil
}
