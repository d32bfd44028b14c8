package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The acting user is read from ctx.
type AttendanceService interface {
	// ListAttendance returns every record for managers and only the actor's
	// own records otherwise
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// GetAttendance retrieves a single record under the same visibility rules
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// CreateAttendance is an idempotent check-in/out for (employee, date)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance changes a record; self-service is limited to
	// check-in, check-out and notes
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance removes a record (attendance.manage only)
	DeleteAttendance(ctx context.Context, id string) error
}
