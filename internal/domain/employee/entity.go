package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the canonical workforce record. ID is a UUID on rows created
// by this service and a free-form string or integer on legacy rows. UserID is
// the relational link to an authenticated user and is nil on most legacy
// rows.
type Employee struct {
	ID         string
	UserID     *string
	Name       string
	Contact    string
	Position   string
	HourlyRate decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}
