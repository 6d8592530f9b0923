package factory

// Remote status strings used by the attendance endpoints.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
	StatusHalfDay = "half_day"
)

// Employee mirrors /api/companies/{company}/employees entries.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BranchID string `json:"branch_id"`
	Active   bool   `json:"active"`
}

// Branch mirrors /api/companies/{company}/branches entries.
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DayRecord is one (day, status) pair of a monthly attendance record.
type DayRecord struct {
	Day    int    `json:"day" validate:"min=1,max=31"`
	Status string `json:"status" validate:"oneof=present absent leave half_day"`
}

// MonthRow is one employee's entry in a month snapshot. Optional fields are
// pointers so a missing field can be told apart from a zero value.
type MonthRow struct {
	EmployeeID   string      `json:"employee_id"`
	Records      []DayRecord `json:"records"`
	Remark       *string     `json:"remark,omitempty"`
	PresentTotal *int        `json:"present_total,omitempty"`
	AbsentTotal  *int        `json:"absent_total,omitempty"`
	RecordID     *string     `json:"record_id,omitempty"`
}

// CreateRecordRequest is the body of POST /attendance.
type CreateRecordRequest struct {
	EmployeeID string      `json:"employee_id" validate:"required"`
	Year       int         `json:"year" validate:"required,min=1970"`
	Month      int         `json:"month" validate:"required,min=1,max=12"`
	Records    []DayRecord `json:"records" validate:"dive"`
	Remark     string      `json:"remark"`
}

// CreateRecordResponse carries the identity of a newly created record.
type CreateRecordResponse struct {
	RecordID string `json:"record_id"`
}

// UpdateRecordRequest is the body of PUT /attendance/{recordId}.
type UpdateRecordRequest struct {
	Records []DayRecord `json:"records" validate:"dive"`
	Remark  string      `json:"remark"`
}

// MarkPresentRequest is the body of POST /attendance/mark-present.
type MarkPresentRequest struct {
	Year     int    `json:"year" validate:"required,min=1970"`
	Month    int    `json:"month" validate:"required,min=1,max=12"`
	Day      int    `json:"day" validate:"required,min=1,max=31"`
	BranchID string `json:"branch_id" validate:"required"`
}

// Ack is the generic acknowledgement returned by write endpoints.
type Ack struct {
	OK bool `json:"ok"`
}
