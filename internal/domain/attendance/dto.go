package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreateAttendanceRequest struct {
	EmployeeID identifier.Raw         `json:"employeeId"`
	Date       string                 `json:"date"`
	CheckIn    nullable.Field[string] `json:"checkIn"`
	CheckOut   nullable.Field[string] `json:"checkOut"`
	Status     string                 `json:"status"`
	Notes      nullable.Field[string] `json:"notes"`

	// Populated by Validate
	ParsedDate     time.Time        `json:"-"`
	ParsedCheckIn  *clock.TimeOfDay `json:"-"`
	ParsedCheckOut *clock.TimeOfDay `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: ErrDateRequired.Error()})
	} else if d, ok := validator.IsValidDate(strings.TrimSpace(r.Date)); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	} else {
		r.ParsedDate = d
	}

	var err error
	if r.ParsedCheckIn, err = parseOptionalTime(r.CheckIn); err != nil {
		errs = append(errs, validator.ValidationError{Field: "checkIn", Message: "checkIn must be HH:MM or HH:MM:SS"})
	}
	if r.ParsedCheckOut, err = parseOptionalTime(r.CheckOut); err != nil {
		errs = append(errs, validator.ValidationError{Field: "checkOut", Message: "checkOut must be HH:MM or HH:MM:SS"})
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status != "" && !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidStatus.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NotesValue returns the submitted notes, empty when absent or null.
func (r CreateAttendanceRequest) NotesValue() string {
	if !r.Notes.Present() {
		return ""
	}
	return r.Notes.Value
}

// MergeSelfService folds a repeated self-service submission into the
// existing row of the same day. Times already recorded are never replaced.
func (r CreateAttendanceRequest) MergeSelfService(rec Record) (Record, bool) {
	updated := false
	if r.ParsedCheckIn != nil && rec.CheckIn == nil {
		rec.CheckIn = r.ParsedCheckIn
		rec.Status = DefaultStatus
		updated = true
	}
	if r.ParsedCheckOut != nil && rec.CheckOut == nil {
		rec.CheckOut = r.ParsedCheckOut
		updated = true
	}
	if notes := r.NotesValue(); notes != "" && notes != rec.Notes {
		rec.Notes = notes
		updated = true
	}
	return rec, updated
}

// MergeManaged overwrites every field present in the payload.
func (r CreateAttendanceRequest) MergeManaged(rec Record) (Record, bool) {
	updated := false
	if r.CheckIn.Set {
		rec.CheckIn = r.ParsedCheckIn
		updated = true
	}
	if r.CheckOut.Set {
		rec.CheckOut = r.ParsedCheckOut
		updated = true
	}
	if r.Status != "" {
		rec.Status = Status(r.Status)
		updated = true
	}
	if r.Notes.Set {
		rec.Notes = r.NotesValue()
		updated = true
	}
	return rec, updated
}

type UpdateAttendanceRequest struct {
	ID         string                         `json:"-"`
	EmployeeID nullable.Field[identifier.Raw] `json:"employeeId"`
	Date       nullable.Field[string]         `json:"date"`
	CheckIn    nullable.Field[string]         `json:"checkIn"`
	CheckOut   nullable.Field[string]         `json:"checkOut"`
	Status     nullable.Field[string]         `json:"status"`
	Notes      nullable.Field[string]         `json:"notes"`

	// Populated by Validate
	ParsedDate     *time.Time       `json:"-"`
	ParsedCheckIn  *clock.TimeOfDay `json:"-"`
	ParsedCheckOut *clock.TimeOfDay `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}

	if r.Date.Present() && !validator.IsEmpty(r.Date.Value) {
		d, ok := validator.IsValidDate(strings.TrimSpace(r.Date.Value))
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		} else {
			r.ParsedDate = &d
		}
	}

	var err error
	if r.ParsedCheckIn, err = parseOptionalTime(r.CheckIn); err != nil {
		errs = append(errs, validator.ValidationError{Field: "checkIn", Message: "checkIn must be HH:MM or HH:MM:SS"})
	}
	if r.ParsedCheckOut, err = parseOptionalTime(r.CheckOut); err != nil {
		errs = append(errs, validator.ValidationError{Field: "checkOut", Message: "checkOut must be HH:MM or HH:MM:SS"})
	}

	if r.Status.Present() {
		s := strings.ToLower(strings.TrimSpace(r.Status.Value))
		if s != "" && !Status(s).IsValid() {
			errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidStatus.Error()})
		}
		r.Status.Value = s
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplySelfService merges the fields a self-service actor may change.
// It reports false when the payload carries none of them.
func (r UpdateAttendanceRequest) ApplySelfService(rec Record) (Record, bool) {
	updated := false
	if r.CheckIn.Set {
		rec.CheckIn = r.ParsedCheckIn
		updated = true
	}
	if r.CheckOut.Set {
		rec.CheckOut = r.ParsedCheckOut
		updated = true
	}
	if r.Notes.Set {
		rec.Notes = r.Notes.Value
		updated = true
	}
	return rec, updated
}

// ApplyManaged merges every field a manager may change except the employee
// reference, which the service resolves first.
func (r UpdateAttendanceRequest) ApplyManaged(rec Record) Record {
	if r.ParsedDate != nil {
		rec.Date = *r.ParsedDate
	}
	if r.CheckIn.Set {
		rec.CheckIn = r.ParsedCheckIn
	}
	if r.CheckOut.Set {
		rec.CheckOut = r.ParsedCheckOut
	}
	if r.Status.Present() && r.Status.Value != "" {
		rec.Status = Status(r.Status.Value)
	}
	if r.Notes.Present() {
		rec.Notes = r.Notes.Value
	}
	return rec
}

// parseOptionalTime treats absent, null and blank values as no time.
func parseOptionalTime(f nullable.Field[string]) (*clock.TimeOfDay, error) {
	if !f.Present() || validator.IsEmpty(f.Value) {
		return nil, nil
	}
	t, err := clock.Parse(f.Value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ========================================
// FILTERS
// ========================================

type AttendanceFilter struct {
	EmployeeID *string
	From       *string
	To         *string
	Status     *string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != nil {
		if _, ok := validator.IsValidDate(*f.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
		}
	}
	if f.To != nil {
		if _, ok := validator.IsValidDate(*f.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
		}
	}
	if f.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*f.Status))
		f.Status = &s
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter is the repository-level query. A nil EmployeeIDs means no
// employee restriction; an empty non-nil slice matches nothing.
type ListFilter struct {
	EmployeeIDs []string
	From        *time.Time
	To          *time.Time
	Status      *Status
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"checkIn"`
	CheckOut     *string `json:"checkOut"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes"`
	CreatedAt    *string `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt"`
}

func NewAttendanceResponse(rec Record) AttendanceResponse {
	return AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		CheckIn:      clock.Format(rec.CheckIn),
		CheckOut:     clock.Format(rec.CheckOut),
		Status:       string(rec.Status),
		Notes:        rec.Notes,
		CreatedAt:    timestamp(rec.CreatedAt),
		UpdatedAt:    timestamp(rec.UpdatedAt),
	}
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
