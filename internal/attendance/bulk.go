package attendance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
)

// BulkPlan is a validated "mark all present" request.
type BulkPlan struct {
	Month    Month
	Branches []string
}

// Calls returns the number of remote calls the plan issues.
func (p BulkPlan) Calls() int {
	return p.Month.Days() * len(p.Branches)
}

// BulkFailure records one failed (day, branch) call.
type BulkFailure struct {
	Day      int
	BranchID string
	Err      error
}

// BulkReport summarises an executed plan.
type BulkReport struct {
	Month    Month
	Calls    int
	Failures []BulkFailure
}

// PlanMarkAllPresent validates the bulk operation. It is refused when the
// month is in the future, nothing is visible, or any visible employee already
// has marks or nonzero totals.
func (s *Sheet) PlanMarkAllPresent() (BulkPlan, error) {
	if s.month.IsFuture() {
		return BulkPlan{}, s.rejected(reject(ErrFutureMonth, "%s is in the future; it cannot be marked present", s.Month().Label()))
	}
	visible := s.Visible()
	if len(visible) == 0 {
		return BulkPlan{}, s.rejected(reject(ErrNoEmployees, "No employees to mark present"))
	}
	if s.anyMarks() {
		return BulkPlan{}, s.rejected(reject(ErrMarksExist, "Attendance already exists for %s; edit employees individually", s.Month().Label()))
	}

	var branches []string
	if s.branch != "" {
		branches = []string{s.branch}
	} else {
		for _, b := range s.branches {
			branches = append(branches, b.ID)
		}
		if len(branches) == 0 {
			seen := make(map[string]bool)
			for _, emp := range visible {
				if emp.BranchID != "" && !seen[emp.BranchID] {
					seen[emp.BranchID] = true
					branches = append(branches, emp.BranchID)
				}
			}
		}
	}
	if len(branches) == 0 {
		return BulkPlan{}, s.rejected(reject(ErrNoEmployees, "No branches to mark present"))
	}
	return BulkPlan{Month: s.Month(), Branches: branches}, nil
}

// FinishMarkAll reports the outcome. When the run targeted the live month it
// selects every visible employee and returns the ticket for the follow-up
// reload; otherwise only the notice is emitted and ok is false.
func (s *Sheet) FinishMarkAll(report BulkReport) (ticket LoadTicket, ok bool) {
	if n := len(report.Failures); n > 0 {
		s.notify(LevelError, fmt.Sprintf("Mark all present for %s: %d of %d calls failed", report.Month.Label(), n, report.Calls))
	} else {
		s.notify(LevelSuccess, fmt.Sprintf("Marked everyone present for %s", report.Month.Label()))
	}
	if report.Month != s.Month() {
		return LoadTicket{}, false
	}
	for _, emp := range s.Visible() {
		s.gate.add(emp.ID)
	}
	return s.Reload(), true
}

// Bulk runs "mark all present" plans.
type Bulk struct {
	api       factory.AttendanceAPI
	companyID string
	log       zerolog.Logger
}

// NewBulk builds a Bulk runner for one company.
func NewBulk(api factory.AttendanceAPI, companyID string, logger zerolog.Logger) *Bulk {
	return &Bulk{api: api, companyID: companyID, log: logger}
}

// Execute issues one call per (day, branch), sequentially per branch. A
// failed call is recorded and the sequence continues; nothing is rolled back.
// Cancelling ctx stops the sequence.
func (b *Bulk) Execute(ctx context.Context, plan BulkPlan) BulkReport {
	report := BulkReport{Month: plan.Month}
	days := plan.Month.Days()
	for _, branch := range plan.Branches {
		for day := 1; day <= days; day++ {
			if err := ctx.Err(); err != nil {
				report.Failures = append(report.Failures, BulkFailure{Day: day, BranchID: branch, Err: err})
				b.log.Warn().Err(err).Msg("mark all present cancelled")
				return report
			}
			report.Calls++
			err := b.api.MarkAllPresent(ctx, b.companyID, factory.MarkPresentRequest{
				Year:     plan.Month.Year,
				Month:    int(plan.Month.Month),
				Day:      day,
				BranchID: branch,
			})
			if err != nil {
				report.Failures = append(report.Failures, BulkFailure{Day: day, BranchID: branch, Err: err})
				b.log.Warn().Err(err).Str("branch", branch).Int("day", day).Msg("mark present failed")
			}
		}
	}
	b.log.Info().
		Str("month", plan.Month.Key()).
		Int("calls", report.Calls).
		Int("failed", len(report.Failures)).
		Msg("mark all present finished")
	return report
}
