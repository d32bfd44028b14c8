package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("endDate must be after startDate")
	ErrInvalidLeaveType     = errors.New("invalid leave type")
	ErrInvalidLeaveStatus   = errors.New("invalid leave status")
)
