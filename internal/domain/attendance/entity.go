package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
)

// Record is one attendance entry. There is at most one record per
// (EmployeeID, Date).
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *clock.TimeOfDay
	CheckOut   *clock.TimeOfDay
	Status     Status
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	EmployeeName string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
)

// DefaultStatus is written for every self-service submission.
const DefaultStatus = StatusPresent

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusOnLeave:
		return true
	default:
		return false
	}
}
