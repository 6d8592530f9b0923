package attendance

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
)

func TestPlanSave_SendsOnlyMarkedDays(t *testing.T) {
	s, _ := newTestSheet(t, emp("e1", "b1"))
	applyRows(t, s, nil)
	p := s.Paint()
	_ = p.Click(Cell{EmployeeID: "e1", Day: 3})
	_ = p.Click(Cell{EmployeeID: "e1", Day: 3}) // absent
	_ = p.Click(Cell{EmployeeID: "e1", Day: 1})

	plan, err := s.PlanSave()
	if err != nil {
		t.Fatalf("PlanSave: %v", err)
	}
	if len(plan.Requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(plan.Requests))
	}
	want := []factory.DayRecord{{Day: 1, Status: "present"}, {Day: 3, Status: "absent"}}
	if got := plan.Requests[0].Records; !reflect.DeepEqual(got, want) {
		t.Fatalf("records = %+v, want %+v", got, want)
	}
	if plan.Month != june2025 {
		t.Fatalf("plan month = %v, want June 2025", plan.Month)
	}
}

func TestPlanSave_SkipsUnselectedAndEmptyRows(t *testing.T) {
	s, _ := newTestSheet(t, emp("e1", "b1"), emp("e2", "b1"))
	applyRows(t, s, nil)
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 2})

	plan, err := s.PlanSave()
	if err != nil {
		t.Fatalf("PlanSave: %v", err)
	}
	if len(plan.Requests) != 1 || plan.Requests[0].EmployeeID != "e1" {
		t.Fatalf("plan = %+v, want only e1", plan.Requests)
	}
}

func TestPlanSave_CommittedRowIsUpdated(t *testing.T) {
	s, _ := newTestSheet(t, emp("e1", "b1"))
	applyRows(t, s, []factory.MonthRow{{
		EmployeeID: "e1",
		Records:    []factory.DayRecord{{Day: 1, Status: "present"}},
		RecordID:   ptr("rec-1"),
	}})
	s.ToggleSelect("e1")
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 1})
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 1})
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 1}) // present, absent, present

	plan, err := s.PlanSave()
	if err != nil {
		t.Fatalf("PlanSave: %v", err)
	}
	if plan.Requests[0].RecordID != "rec-1" {
		t.Fatalf("record id = %q, want update of rec-1", plan.Requests[0].RecordID)
	}
}

func TestPlanSave_Rejections(t *testing.T) {
	s, notices := newTestSheet(t, emp("e1", "b1"))
	applyRows(t, s, nil)
	if _, err := s.PlanSave(); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("empty selection error = %v, want ErrNothingSelected", err)
	}
	if notices.last().Level != LevelWarning {
		t.Fatalf("notice = %+v, want warning", notices.last())
	}

	s.SetMonth(july2025)
	applyRows(t, s, nil)
	s.ToggleSelect("e1")
	if _, err := s.PlanSave(); !errors.Is(err, ErrFutureMonth) {
		t.Fatalf("future error = %v, want ErrFutureMonth", err)
	}
}

func TestBatcher_CreatesAndUpdates(t *testing.T) {
	api := newFakeAPI()
	s, _ := newTestSheet(t, emp("e1", "b1"), emp("e2", "b1"))
	applyRows(t, s, []factory.MonthRow{{
		EmployeeID: "e1",
		Records:    []factory.DayRecord{{Day: 1, Status: "present"}},
		RecordID:   ptr("rec-7"),
	}})
	s.ToggleSelect("e1")
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 2})
	_ = s.SetRemark("e2", "new hire")
	_ = s.Paint().Click(Cell{EmployeeID: "e2", Day: 5})

	plan, err := s.PlanSave()
	if err != nil {
		t.Fatalf("PlanSave: %v", err)
	}
	report := NewBatcher(api, "acme", 2, zerolog.Nop()).Execute(context.Background(), plan)
	if err := report.Err(); err != nil {
		t.Fatalf("report error: %v", err)
	}

	upd, ok := api.updates["rec-7"]
	if !ok {
		t.Fatalf("rec-7 not updated; updates = %+v", api.updates)
	}
	if want := []factory.DayRecord{{Day: 1, Status: "present"}, {Day: 2, Status: "present"}}; !reflect.DeepEqual(upd.Records, want) {
		t.Fatalf("update records = %+v, want %+v", upd.Records, want)
	}
	if len(api.creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(api.creates))
	}
	c := api.creates[0]
	if c.EmployeeID != "e2" || c.Year != 2025 || c.Month != 6 || c.Remark != "new hire" {
		t.Fatalf("create = %+v", c)
	}
	for _, o := range report.Outcomes {
		if o.EmployeeID == "e2" && (!o.Created || o.RecordID != "rec-1") {
			t.Fatalf("e2 outcome = %+v, want created rec-1", o)
		}
	}
}

func TestBatcher_PartialFailureReportsEveryOutcome(t *testing.T) {
	api := newFakeAPI()
	api.failCreate["e2"] = errors.New("HTTP 500")
	s, notices := newTestSheet(t, emp("e1", "b1"), emp("e2", "b1"), emp("e3", "b1"))
	applyRows(t, s, nil)
	for _, id := range []string{"e1", "e2", "e3"} {
		_ = s.Paint().Click(Cell{EmployeeID: id, Day: 1})
	}

	plan, _ := s.PlanSave()
	report := NewBatcher(api, "acme", 0, zerolog.Nop()).Execute(context.Background(), plan)

	if got := report.Succeeded(); !reflect.DeepEqual(got, []string{"e1", "e3"}) {
		t.Fatalf("succeeded = %v, want e1 e3", got)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].EmployeeID != "e2" {
		t.Fatalf("failed = %+v, want e2", failed)
	}
	var sf *SaveFailure
	if !errors.As(report.Err(), &sf) || sf.EmployeeID != "e2" {
		t.Fatalf("report.Err() = %v, want SaveFailure for e2", report.Err())
	}

	gen := s.month.Generation()
	ticket, ok := s.FinishSave(report)
	if !ok || ticket.Generation <= gen || ticket.Month != june2025 {
		t.Fatalf("ticket = %+v, want fresh June ticket after generation %d", ticket, gen)
	}
	if n := len(s.Selection()); n != 0 {
		t.Fatalf("selection has %d entries after save, want 0", n)
	}
	msg := notices.last()
	if msg.Level != LevelError || !containsAll(msg.Message, "Emp e2", "failed 1", "save again") {
		t.Fatalf("notice = %+v, want failure naming Emp e2", msg)
	}
}

func TestFinishSave_Success(t *testing.T) {
	s, notices := newTestSheet(t, emp("e1", "b1"))
	applyRows(t, s, nil)
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 1})

	plan, _ := s.PlanSave()
	report := NewBatcher(newFakeAPI(), "acme", 1, zerolog.Nop()).Execute(context.Background(), plan)
	s.FinishSave(report)

	if notices.last().Level != LevelSuccess {
		t.Fatalf("notice = %+v, want success", notices.last())
	}
}

func TestFutureMonthIssuesNoWrites(t *testing.T) {
	api := newFakeAPI()
	s, _ := newTestSheet(t, emp("e1", "b1"))
	s.SetMonth(july2025)
	applyRows(t, s, nil)

	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 1})
	s.ToggleSelectAll()
	if plan, err := s.PlanSave(); err == nil {
		NewBatcher(api, "acme", 1, zerolog.Nop()).Execute(context.Background(), plan)
	}
	if plan, err := s.PlanMarkAllPresent(); err == nil {
		NewBulk(api, "acme", zerolog.Nop()).Execute(context.Background(), plan)
	}
	if n := api.writeCount(); n != 0 {
		t.Fatalf("future month issued %d writes, want 0", n)
	}
}

func TestFinishSave_OtherMonthKeepsSelection(t *testing.T) {
	s, notices := newTestSheet(t, emp("e1", "b1"), emp("e2", "b1"))
	s.SetMonth(may2025)
	applyRows(t, s, nil)
	_ = s.Paint().Click(Cell{EmployeeID: "e1", Day: 1})
	plan, err := s.PlanSave()
	if err != nil {
		t.Fatalf("PlanSave: %v", err)
	}
	report := NewBatcher(newFakeAPI(), "acme", 1, zerolog.Nop()).Execute(context.Background(), plan)

	s.SetMonth(june2025)
	applyRows(t, s, nil)
	_ = s.Paint().Click(Cell{EmployeeID: "e2", Day: 3})

	if _, ok := s.FinishSave(report); ok {
		t.Fatalf("FinishSave for May returned a June reload")
	}
	if !s.Selected("e2") {
		t.Fatalf("June e2 lost its selection after a May save")
	}
	next, err := s.PlanSave()
	if err != nil {
		t.Fatalf("PlanSave after May save: %v", err)
	}
	if len(next.Requests) != 1 || next.Requests[0].EmployeeID != "e2" {
		t.Fatalf("plan = %+v, want e2", next.Requests)
	}
	if notices.last().Level != LevelSuccess || !containsAll(notices.last().Message, "May 2025") {
		t.Fatalf("notice = %+v, want May success", notices.last())
	}
}
