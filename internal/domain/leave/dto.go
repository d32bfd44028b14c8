package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID identifier.Raw `json:"employeeId"`
	StartDate  string         `json:"startDate"`
	EndDate    string         `json:"endDate"`
	Type       string         `json:"type"`
	Status     string         `json:"status"`
	Reason     string         `json:"reason"`

	ParsedStartDate time.Time `json:"-"`
	ParsedEndDate   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employeeId is required"})
	}

	startOK, endOK := false, false
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate is required"})
	} else if d, ok := validator.IsValidDate(strings.TrimSpace(r.StartDate)); !ok {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be in YYYY-MM-DD format"})
	} else {
		r.ParsedStartDate, startOK = d, true
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate is required"})
	} else if d, ok := validator.IsValidDate(strings.TrimSpace(r.EndDate)); !ok {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be in YYYY-MM-DD format"})
	} else {
		r.ParsedEndDate, endOK = d, true
	}

	if startOK && endOK && r.ParsedEndDate.Before(r.ParsedStartDate) {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: ErrInvalidDateRange.Error()})
	}

	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(TypeOther)
	}
	if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: ErrInvalidLeaveType.Error()})
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status != "" && !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidLeaveStatus.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveRequest struct {
	ID         string                         `json:"-"`
	EmployeeID nullable.Field[identifier.Raw] `json:"employeeId"`
	StartDate  nullable.Field[string]         `json:"startDate"`
	EndDate    nullable.Field[string]         `json:"endDate"`
	Type       nullable.Field[string]         `json:"type"`
	Status     nullable.Field[string]         `json:"status"`
	Reason     nullable.Field[string]         `json:"reason"`

	ParsedStartDate *time.Time `json:"-"`
	ParsedEndDate   *time.Time `json:"-"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if r.StartDate.Present() && !validator.IsEmpty(r.StartDate.Value) {
		if d, ok := validator.IsValidDate(strings.TrimSpace(r.StartDate.Value)); ok {
			r.ParsedStartDate = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate.Present() && !validator.IsEmpty(r.EndDate.Value) {
		if d, ok := validator.IsValidDate(strings.TrimSpace(r.EndDate.Value)); ok {
			r.ParsedEndDate = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be in YYYY-MM-DD format"})
		}
	}

	if r.Type.Present() {
		r.Type.Value = strings.ToLower(strings.TrimSpace(r.Type.Value))
		if r.Type.Value != "" && !Type(r.Type.Value).IsValid() {
			errs = append(errs, validator.ValidationError{Field: "type", Message: ErrInvalidLeaveType.Error()})
		}
	}
	if r.Status.Present() {
		r.Status.Value = strings.ToLower(strings.TrimSpace(r.Status.Value))
		if r.Status.Value != "" && !Status(r.Status.Value).IsValid() {
			errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidLeaveStatus.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the request into rec. statusChanged reports a status write,
// which the caller must stamp with the decision actor and time.
func (r UpdateLeaveRequest) Apply(rec Record) (updated Record, statusChanged bool) {
	if r.ParsedStartDate != nil {
		rec.StartDate = *r.ParsedStartDate
	}
	if r.ParsedEndDate != nil {
		rec.EndDate = *r.ParsedEndDate
	}
	if r.Type.Present() && r.Type.Value != "" {
		rec.Type = Type(r.Type.Value)
	}
	if r.Status.Present() && r.Status.Value != "" {
		rec.Status = Status(r.Status.Value)
		statusChanged = true
	}
	if r.Reason.Present() {
		rec.Reason = r.Reason.Value
	}
	return rec, statusChanged
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *string
	Type       *string
}

func (f *LeaveFilter) Validate() error {
	if f.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*f.Status))
		f.Status = &s
	}
	if f.Type != nil {
		t := strings.ToLower(strings.TrimSpace(*f.Type))
		f.Type = &t
	}
	return nil
}

// ListFilter is the repository-level query. A nil EmployeeIDs means no
// employee restriction.
type ListFilter struct {
	EmployeeIDs []string
	Status      *Status
	Type        *Type
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason"`
	DecidedBy    string  `json:"decidedBy"`
	DecidedAt    *string `json:"decidedAt"`
	CreatedAt    *string `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt"`
}

func NewLeaveResponse(rec Record) LeaveResponse {
	resp := LeaveResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		StartDate:    rec.StartDate.Format("2006-01-02"),
		EndDate:      rec.EndDate.Format("2006-01-02"),
		Type:         string(rec.Type),
		Status:       string(rec.Status),
		Reason:       rec.Reason,
		DecidedBy:    rec.DecidedBy,
		CreatedAt:    timestamp(rec.CreatedAt),
		UpdatedAt:    timestamp(rec.UpdatedAt),
	}
	if rec.DecidedAt != nil {
		resp.DecidedAt = timestamp(*rec.DecidedAt)
	}
	return resp
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
