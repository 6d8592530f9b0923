package factory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultAPIBase {
		t.Fatalf("base = %q, want %q", u.String(), defaultAPIBase)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestCompanyPath(t *testing.T) {
	if got := companyPath(" acme ", "attendance", "rec-1"); got != "/api/companies/acme/attendance/rec-1" {
		t.Fatalf("companyPath = %q", got)
	}
}

type recorded struct {
	method  string
	path    string
	query   url.Values
	headers http.Header
	body    []byte
}

func newRecordingServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, func() []recorded) {
	t.Helper()
	var mu sync.Mutex
	var calls []recorded
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, query: r.URL.Query(), headers: r.Header.Clone(), body: body})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), calls...)
	}
}

func TestClient_AttendanceEndpoints(t *testing.T) {
	t.Parallel()

	server, calls := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/companies/acme/attendance":
			_ = json.NewEncoder(w).Encode([]MonthRow{{
				EmployeeID:   "e1",
				Records:      []DayRecord{{Day: 1, Status: "present"}},
				PresentTotal: intPtr(1),
				RecordID:     strPtr("rec-1"),
			}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/companies/acme/attendance":
			_ = json.NewEncoder(w).Encode(CreateRecordResponse{RecordID: "rec-2"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/companies/acme/attendance/rec-1":
			_ = json.NewEncoder(w).Encode(Ack{OK: true})
		case r.Method == http.MethodPost && r.URL.Path == "/api/companies/acme/attendance/mark-present":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	c, err := NewClient(server.URL, WithToken("tok"), WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	rows, err := c.FetchMonth(ctx, "acme", 2025, 6)
	if err != nil {
		t.Fatalf("FetchMonth returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].EmployeeID != "e1" || *rows[0].RecordID != "rec-1" || *rows[0].PresentTotal != 1 {
		t.Fatalf("FetchMonth rows = %#v", rows)
	}

	id, err := c.CreateRecord(ctx, "acme", CreateRecordRequest{
		EmployeeID: "e2", Year: 2025, Month: 6,
		Records: []DayRecord{{Day: 3, Status: "absent"}},
	})
	if err != nil || id != "rec-2" {
		t.Fatalf("CreateRecord = %q, %v; want rec-2", id, err)
	}
	if err := c.UpdateRecord(ctx, "acme", "rec-1", UpdateRecordRequest{Records: []DayRecord{{Day: 1, Status: "absent"}}}); err != nil {
		t.Fatalf("UpdateRecord returned error: %v", err)
	}
	if err := c.MarkAllPresent(ctx, "acme", MarkPresentRequest{Year: 2025, Month: 6, Day: 9, BranchID: "b1"}); err != nil {
		t.Fatalf("MarkAllPresent returned error: %v", err)
	}

	got := calls()
	if len(got) != 4 {
		t.Fatalf("server saw %d calls, want 4", len(got))
	}
	if got[0].query.Get("year") != "2025" || got[0].query.Get("month") != "6" {
		t.Fatalf("FetchMonth query = %v", got[0].query)
	}
	for _, call := range got {
		if call.headers.Get("Authorization") != "Bearer tok" {
			t.Fatalf("%s %s Authorization = %q", call.method, call.path, call.headers.Get("Authorization"))
		}
		if !strings.HasPrefix(call.headers.Get("User-Agent"), "foreman/") {
			t.Fatalf("User-Agent = %q, want foreman/*", call.headers.Get("User-Agent"))
		}
		if call.headers.Get("X-Request-ID") == "" {
			t.Fatalf("%s %s missing X-Request-ID", call.method, call.path)
		}
	}

	var create map[string]any
	if err := json.Unmarshal(got[1].body, &create); err != nil {
		t.Fatalf("create body: %v", err)
	}
	if create["employee_id"] != "e2" || create["year"] != float64(2025) {
		t.Fatalf("create body = %v", create)
	}
	var mark map[string]any
	_ = json.Unmarshal(got[3].body, &mark)
	if mark["branch_id"] != "b1" || mark["day"] != float64(9) {
		t.Fatalf("mark body = %v", mark)
	}
}

func TestClient_FetchMonthEmptyIsNonNil(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	c, _ := NewClient(server.URL)
	rows, err := c.FetchMonth(context.Background(), "acme", 2025, 7)
	if err != nil {
		t.Fatalf("FetchMonth returned error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("rows = %#v, want empty non-nil slice", rows)
	}
}

func TestClient_DirectoryEndpoints(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/companies/acme/employees":
			_ = json.NewEncoder(w).Encode([]Employee{{ID: "e1", Name: "Ana", BranchID: "b1", Active: true}})
		case "/api/companies/acme/branches":
			_ = json.NewEncoder(w).Encode([]Branch{{ID: "b1", Name: "North"}})
		default:
			http.NotFound(w, r)
		}
	})
	c, _ := NewClient(server.URL)

	emps, err := c.ListEmployees(context.Background(), "acme")
	if err != nil || len(emps) != 1 || emps[0].BranchID != "b1" || !emps[0].Active {
		t.Fatalf("ListEmployees = %#v, %v", emps, err)
	}
	branches, err := c.ListBranches(context.Background(), "acme")
	if err != nil || len(branches) != 1 || branches[0].Name != "North" {
		t.Fatalf("ListBranches = %#v, %v", branches, err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/companies/acme/attendance":
			_, _ = w.Write([]byte("{not-json"))
		case "/api/companies/acme/employees":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"records must not be empty"}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	})
	c, _ := NewClient(server.URL)

	_, err := c.FetchMonth(context.Background(), "acme", 2025, 6)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchMonth error = %v, want decode response error", err)
	}

	_, err = c.ListEmployees(context.Background(), "acme")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnprocessableEntity || se.Message != "records must not be empty" {
		t.Fatalf("ListEmployees error = %#v, want StatusError 422 with message", err)
	}

	_, err = c.ListBranches(context.Background(), "acme")
	if err == nil || !strings.Contains(err.Error(), "returned status 500: nope") {
		t.Fatalf("ListBranches error = %v, want status 500 error", err)
	}
}

func TestClient_CreateRecordRequiresID(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	c, _ := NewClient(server.URL)
	if _, err := c.CreateRecord(context.Background(), "acme", CreateRecordRequest{EmployeeID: "e1"}); err == nil {
		t.Fatalf("CreateRecord returned nil error, want missing record_id")
	}
}

func TestClient_UpdateRecordRequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.UpdateRecord(context.Background(), "acme", " ", UpdateRecordRequest{}); err == nil {
		t.Fatalf("UpdateRecord returned nil error, want error")
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
