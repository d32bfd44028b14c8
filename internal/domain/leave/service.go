package leave

import "context"

// LeaveService defines business logic for leave requests.
// The acting user is read from ctx.
type LeaveService interface {
	// ListLeaves requires leave.manage, even for one's own requests
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)

	// CreateLeave files a request; self-service requests are always pending
	CreateLeave(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	// UpdateLeave edits or decides a request (leave.manage only)
	UpdateLeave(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)

	// DeleteLeave removes a request (leave.manage only)
	DeleteLeave(ctx context.Context, id string) error
}
