package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/foreman/internal/factory"
)

const defaultSaveConcurrency = 6

// SaveRequest is the write for one employee. An empty RecordID means create.
type SaveRequest struct {
	EmployeeID string
	RecordID   string
	Records    []factory.DayRecord
	Remark     string
}

// SavePlan is the set of writes computed from the selection.
type SavePlan struct {
	Month    Month
	Requests []SaveRequest
}

// SaveOutcome is the result of one employee's write.
type SaveOutcome struct {
	EmployeeID string
	Created    bool
	RecordID   string
	Err        error
}

// SaveReport collects every outcome of a save.
type SaveReport struct {
	Month    Month
	Outcomes []SaveOutcome
}

// Succeeded returns the ids whose write went through.
func (r SaveReport) Succeeded() []string {
	var ids []string
	for _, o := range r.Outcomes {
		if o.Err == nil {
			ids = append(ids, o.EmployeeID)
		}
	}
	return ids
}

// Failed returns one SaveFailure per failed employee.
func (r SaveReport) Failed() []*SaveFailure {
	var out []*SaveFailure
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, &SaveFailure{EmployeeID: o.EmployeeID, Err: o.Err})
		}
	}
	return out
}

// Err joins every failure, nil when all writes succeeded.
func (r SaveReport) Err() error {
	var errs []error
	for _, f := range r.Failed() {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// PlanSave builds one write per selected employee holding any key in their
// row. Unmarked days are never sent.
func (s *Sheet) PlanSave() (SavePlan, error) {
	if s.month.IsFuture() {
		return SavePlan{}, s.rejected(reject(ErrFutureMonth, "%s is in the future; nothing can be saved", s.Month().Label()))
	}
	plan := SavePlan{Month: s.Month()}
	for _, id := range s.gate.IDs() {
		if !s.matrix.HasKeys(id) {
			continue
		}
		records := make([]factory.DayRecord, 0, s.Days())
		for _, day := range s.matrix.Marked(id) {
			records = append(records, factory.DayRecord{Day: day, Status: s.matrix.Get(id, day).wire()})
		}
		recordID, _ := s.pending.RecordID(id)
		plan.Requests = append(plan.Requests, SaveRequest{
			EmployeeID: id,
			RecordID:   recordID,
			Records:    records,
			Remark:     s.remarks.Get(id),
		})
	}
	if len(plan.Requests) == 0 {
		return SavePlan{}, s.rejected(reject(ErrNothingSelected, "Nothing selected to save"))
	}
	return plan, nil
}

// FinishSave reports the outcome. When the save ran against the live month
// it clears the selection and returns the ticket for the follow-up reload;
// otherwise the live month is left alone and ok is false.
func (s *Sheet) FinishSave(report SaveReport) (ticket LoadTicket, ok bool) {
	saved := report.Succeeded()
	failed := report.Failed()
	switch {
	case len(failed) == 0:
		s.notify(LevelSuccess, fmt.Sprintf("Saved attendance for %d employees in %s", len(saved), report.Month.Label()))
	default:
		names := make([]string, 0, len(failed))
		for _, f := range failed {
			names = append(names, s.employeeName(f.EmployeeID))
		}
		s.notify(LevelError, fmt.Sprintf("Saved %d, failed %d in %s: %s. Select them and save again.",
			len(saved), len(failed), report.Month.Label(), strings.Join(names, ", ")))
	}
	if report.Month != s.Month() {
		return LoadTicket{}, false
	}
	s.gate.clear()
	return s.Reload(), true
}

// Batcher executes save plans against the remote store.
type Batcher struct {
	api         factory.AttendanceAPI
	companyID   string
	concurrency int
	log         zerolog.Logger
}

// NewBatcher builds a Batcher. concurrency bounds in-flight writes; zero or
// less uses a default.
func NewBatcher(api factory.AttendanceAPI, companyID string, concurrency int, logger zerolog.Logger) *Batcher {
	if concurrency <= 0 {
		concurrency = defaultSaveConcurrency
	}
	return &Batcher{api: api, companyID: companyID, concurrency: concurrency, log: logger}
}

// Execute issues every write of the plan concurrently and waits for all of
// them. One failure never aborts or rolls back the others.
func (b *Batcher) Execute(ctx context.Context, plan SavePlan) SaveReport {
	report := SaveReport{Month: plan.Month, Outcomes: make([]SaveOutcome, len(plan.Requests))}

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, req := range plan.Requests {
		g.Go(func() error {
			report.Outcomes[i] = b.write(ctx, plan.Month, req)
			return nil
		})
	}
	_ = g.Wait()

	b.log.Info().
		Str("month", plan.Month.Key()).
		Int("requests", len(plan.Requests)).
		Int("failed", len(report.Failed())).
		Msg("save finished")
	return report
}

func (b *Batcher) write(ctx context.Context, m Month, req SaveRequest) SaveOutcome {
	out := SaveOutcome{EmployeeID: req.EmployeeID, RecordID: req.RecordID}
	if req.RecordID != "" {
		out.Err = b.api.UpdateRecord(ctx, b.companyID, req.RecordID, factory.UpdateRecordRequest{
			Records: req.Records,
			Remark:  req.Remark,
		})
	} else {
		out.Created = true
		out.RecordID, out.Err = b.api.CreateRecord(ctx, b.companyID, factory.CreateRecordRequest{
			EmployeeID: req.EmployeeID,
			Year:       m.Year,
			Month:      int(m.Month),
			Records:    req.Records,
			Remark:     req.Remark,
		})
	}
	if out.Err != nil {
		b.log.Warn().Err(out.Err).Str("employee", req.EmployeeID).Bool("create", out.Created).Msg("attendance write failed")
	}
	return out
}
