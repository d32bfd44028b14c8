package leave

import "time"

// Record is a leave request. EndDate is never before StartDate.
type Record struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Type       Type
	Status     Status
	Reason     string
	DecidedBy  string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	EmployeeName string
}

type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeUnpaid   Type = "unpaid"
	TypeOther    Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeUnpaid, TypeOther:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// ValidRange reports whether the record's dates are ordered.
func (r Record) ValidRange() bool {
	return !r.EndDate.Before(r.StartDate)
}
