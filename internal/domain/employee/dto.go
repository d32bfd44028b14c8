package employee

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUESTS
// ========================================

type CreateEmployeeRequest struct {
	Name       string                          `json:"name"`
	Position   string                          `json:"position"`
	HourlyRate nullable.Field[decimal.Decimal] `json:"hourlyRate"`
	Contact    string                          `json:"contact"`
	Status     string                          `json:"status"`
	UserID     nullable.Field[string]          `json:"userId"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Position = strings.TrimSpace(r.Position)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = string(StatusActive)
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidStatus.Error()})
	}
	if r.HourlyRate.Present() && r.HourlyRate.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourlyRate", Message: "hourlyRate must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string                          `json:"-"`
	Name       nullable.Field[string]          `json:"name"`
	Position   nullable.Field[string]          `json:"position"`
	HourlyRate nullable.Field[decimal.Decimal] `json:"hourlyRate"`
	Contact    nullable.Field[string]          `json:"contact"`
	Status     nullable.Field[string]          `json:"status"`
	UserID     nullable.Field[string]          `json:"userId"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name.Present() && validator.IsEmpty(r.Name.Value) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Status.Present() && !Status(strings.ToLower(strings.TrimSpace(r.Status.Value))).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidStatus.Error()})
	}
	if r.HourlyRate.Present() && r.HourlyRate.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourlyRate", Message: "hourlyRate must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the present, non-null fields of r into e.
func (r UpdateEmployeeRequest) Apply(e Employee) (Employee, bool) {
	changed := false
	if r.Name.Present() {
		e.Name = strings.TrimSpace(r.Name.Value)
		changed = true
	}
	if r.Position.Present() {
		e.Position = strings.TrimSpace(r.Position.Value)
		changed = true
	}
	if r.HourlyRate.Present() {
		e.HourlyRate = r.HourlyRate.Value
		changed = true
	}
	if r.Contact.Present() {
		e.Contact = strings.TrimSpace(r.Contact.Value)
		changed = true
	}
	if r.Status.Present() {
		e.Status = Status(strings.ToLower(strings.TrimSpace(r.Status.Value)))
		changed = true
	}
	if r.UserID.Set {
		if id := strings.TrimSpace(r.UserID.Value); r.UserID.Null || id == "" {
			e.UserID = nil
		} else {
			e.UserID = &id
		}
		changed = true
	}
	return e, changed
}

// ========================================
// FILTERS
// ========================================

// Scope narrows the directory to the acting user's own row. At most one
// field is set; None yields an empty result.
type Scope struct {
	UserID  *string
	Contact *string
	Name    *string
	None    bool
}

// Matches reports whether e falls inside the scope. The zero Scope matches
// every employee.
func (s Scope) Matches(e Employee) bool {
	switch {
	case s.None:
		return false
	case s.UserID != nil:
		return e.UserID != nil && *e.UserID == *s.UserID
	case s.Contact != nil:
		return strings.EqualFold(e.Contact, strings.TrimSpace(*s.Contact))
	case s.Name != nil:
		return strings.EqualFold(e.Name, strings.TrimSpace(*s.Name))
	default:
		return true
	}
}

type EmployeeFilter struct {
	Scope  Scope
	Search *string
	Status *string
	Page   int
	Limit  int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500

	// MaxOffset bounds (Page-1)*Limit so the SQL offset cannot overflow.
	MaxOffset = math.MaxInt32
)

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed " + validator.Itoa(MaxPageLimit)})
	}
	if f.Page-1 > MaxOffset/f.Limit {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page is out of range"})
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

// ========================================
// RESPONSES
// ========================================

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	HourlyRate float64 `json:"hourlyRate"`
	Contact    string  `json:"contact"`
	Status     string  `json:"status"`
	CreatedAt  *string `json:"createdAt"`
	UpdatedAt  *string `json:"updatedAt"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalItems int64              `json:"totalItems"`
	TotalPages int                `json:"totalPages"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		HourlyRate: e.HourlyRate.InexactFloat64(),
		Contact:    e.Contact,
		Status:     string(e.Status),
		CreatedAt:  timestamp(e.CreatedAt),
		UpdatedAt:  timestamp(e.UpdatedAt),
	}
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
