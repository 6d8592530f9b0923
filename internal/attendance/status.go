package attendance

import (
	"strings"

	"github.com/five82/foreman/internal/factory"
)

// DayStatus is the attendance state of one cell.
type DayStatus int

const (
	Unmarked DayStatus = iota
	Present
	Absent
)

func (s DayStatus) String() string {
	switch s {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unmarked"
	}
}

// Marked reports whether the status is Present or Absent.
func (s DayStatus) Marked() bool {
	return s == Present || s == Absent
}

// toggled returns the status a plain toggle produces from s.
func (s DayStatus) toggled() DayStatus {
	if s == Present {
		return Absent
	}
	return Present
}

// wire returns the remote status string. Unmarked has no wire form.
func (s DayStatus) wire() string {
	switch s {
	case Present:
		return factory.StatusPresent
	case Absent:
		return factory.StatusAbsent
	default:
		return ""
	}
}

// ParseRemoteStatus maps a remote status string onto a DayStatus. Leave is
// shown as unmarked and half days count as present. The boolean is false for
// strings the editor does not know.
func ParseRemoteStatus(raw string) (DayStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case factory.StatusPresent, factory.StatusHalfDay:
		return Present, true
	case factory.StatusAbsent:
		return Absent, true
	case factory.StatusLeave:
		return Unmarked, true
	default:
		return Unmarked, false
	}
}
