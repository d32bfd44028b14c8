package schedule

import (
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
)

// Entry is one weekly shift for an employee. StartTime is strictly before
// EndTime.
type Entry struct {
	ID         string
	EmployeeID string
	Day        Day
	StartTime  clock.TimeOfDay
	EndTime    clock.TimeOfDay
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	EmployeeName string
}

type Day string

const (
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

// Days lists the canonical weekday names in calendar order.
var Days = []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func (d Day) IsValid() bool {
	for _, v := range Days {
		if v == d {
			return true
		}
	}
	return false
}

// ValidTimes reports whether the entry's start precedes its end.
func (e Entry) ValidTimes() bool {
	return e.StartTime.Before(e.EndTime)
}
