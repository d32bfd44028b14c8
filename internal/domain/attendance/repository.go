package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// GetByID retrieves a record joined with the employee name
	GetByID(ctx context.Context, id string) (Record, error)

	// GetOrCreate inserts rec unless a row for (EmployeeID, Date) exists, in
	// which case the existing row is returned locked for update. It must run
	// inside a transaction. created reports whether rec was inserted.
	GetOrCreate(ctx context.Context, rec Record) (result Record, created bool, err error)

	// Update overwrites every mutable column of rec
	Update(ctx context.Context, rec Record) (Record, error)

	Delete(ctx context.Context, id string) error

	// List returns records ordered by date descending then employee name
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}
