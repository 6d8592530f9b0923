package attendance

import (
	"errors"
	"fmt"
)

// Rejection reasons. A rejected operation changes no state and issues no
// network call.
var (
	ErrFutureMonth     = errors.New("month is in the future")
	ErrLocked          = errors.New("employee is locked")
	ErrNothingSelected = errors.New("nothing selected")
	ErrMarksExist      = errors.New("attendance already marked")
	ErrNoEmployees     = errors.New("no employees visible")
	ErrOutOfRange      = errors.New("cell out of range")
)

// Rejection is a synchronous refusal surfaced to the user as a notice.
type Rejection struct {
	Reason  error
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

func reject(reason error, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// LoadError reports a failed month read. State from before the attempt is kept.
type LoadError struct {
	Month Month
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load attendance for %s: %v", e.Month.Label(), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SaveFailure names one employee whose write failed.
type SaveFailure struct {
	EmployeeID string
	Err        error
}

func (f *SaveFailure) Error() string {
	return fmt.Sprintf("save %s: %v", f.EmployeeID, f.Err)
}

func (f *SaveFailure) Unwrap() error {
	return f.Err
}
