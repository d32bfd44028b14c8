package schedule

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

type CreateEntryRequest struct {
	EmployeeID identifier.Raw `json:"employeeId"`
	Employee   identifier.Raw `json:"employee"`
	Day        string         `json:"day"`
	StartTime  string         `json:"startTime"`
	EndTime    string         `json:"endTime"`

	ParsedStartTime clock.TimeOfDay `json:"-"`
	ParsedEndTime   clock.TimeOfDay `json:"-"`
}

// Target returns the employee reference, accepting the older "employee" key.
func (r CreateEntryRequest) Target() identifier.Raw {
	if !r.EmployeeID.IsZero() {
		return r.EmployeeID
	}
	return r.Employee
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Target().IsZero() {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employeeId is required"})
	}
	if !Day(r.Day).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "day", Message: ErrInvalidDay.Error()})
	}

	start, startErr := clock.ParseHM(r.StartTime)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{Field: "startTime", Message: "startTime must be HH:MM"})
	}
	end, endErr := clock.ParseHM(r.EndTime)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{Field: "endTime", Message: "endTime must be HH:MM"})
	}
	if startErr == nil && endErr == nil {
		if !start.Before(end) {
			errs = append(errs, validator.ValidationError{Field: "endTime", Message: ErrInvalidTimeRange.Error()})
		}
		r.ParsedStartTime, r.ParsedEndTime = start, end
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEntryRequest struct {
	ID         string                         `json:"-"`
	EmployeeID nullable.Field[identifier.Raw] `json:"employeeId"`
	Day        nullable.Field[string]         `json:"day"`
	StartTime  nullable.Field[string]         `json:"startTime"`
	EndTime    nullable.Field[string]         `json:"endTime"`

	ParsedStartTime *clock.TimeOfDay `json:"-"`
	ParsedEndTime   *clock.TimeOfDay `json:"-"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Day.Present() && r.Day.Value != "" && !Day(r.Day.Value).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "day", Message: ErrInvalidDay.Error()})
	}
	if r.StartTime.Present() && !validator.IsEmpty(r.StartTime.Value) {
		if t, err := clock.ParseHM(r.StartTime.Value); err == nil {
			r.ParsedStartTime = &t
		} else {
			errs = append(errs, validator.ValidationError{Field: "startTime", Message: "startTime must be HH:MM"})
		}
	}
	if r.EndTime.Present() && !validator.IsEmpty(r.EndTime.Value) {
		if t, err := clock.ParseHM(r.EndTime.Value); err == nil {
			r.ParsedEndTime = &t
		} else {
			errs = append(errs, validator.ValidationError{Field: "endTime", Message: "endTime must be HH:MM"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the day and times into e; the employee reference is resolved
// by the service.
func (r UpdateEntryRequest) Apply(e Entry) Entry {
	if r.Day.Present() && r.Day.Value != "" {
		e.Day = Day(r.Day.Value)
	}
	if r.ParsedStartTime != nil {
		e.StartTime = *r.ParsedStartTime
	}
	if r.ParsedEndTime != nil {
		e.EndTime = *r.ParsedEndTime
	}
	return e
}

type ScheduleFilter struct {
	EmployeeID *string
	Day        *string
}

func (f *ScheduleFilter) Validate() error {
	if f.Day != nil {
		d := strings.TrimSpace(*f.Day)
		if !Day(d).IsValid() {
			return validator.ValidationErrors{{Field: "day", Message: ErrInvalidDay.Error()}}
		}
		f.Day = &d
	}
	return nil
}

// ListFilter is the repository-level query. A nil EmployeeIDs means no
// employee restriction.
type ListFilter struct {
	EmployeeIDs []string
	Day         *Day
}

type ScheduleResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Day          string  `json:"day"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	CreatedAt    *string `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt"`
}

func NewScheduleResponse(e Entry) ScheduleResponse {
	return ScheduleResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Day:          string(e.Day),
		StartTime:    e.StartTime.String(),
		EndTime:      e.EndTime.String(),
		CreatedAt:    timestamp(e.CreatedAt),
		UpdatedAt:    timestamp(e.UpdatedAt),
	}
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
