package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth boundary
	case errors.Is(err, user.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Authorization
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrNoEmployeeProfile):
		Forbidden(w, "No employee profile found")
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Forbidden")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNameRequired):
		BadRequest(w, "Name is required", nil)
	case errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrNoFieldsToUpdate):
		BadRequest(w, "No valid fields to update", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoFieldsToUpdate):
		BadRequest(w, "No valid fields to update", nil)
	case errors.Is(err, attendance.ErrDateRequired),
		errors.Is(err, attendance.ErrEmployeeIDRequired),
		errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInvalidLeaveType),
		errors.Is(err, leave.ErrInvalidLeaveStatus):
		BadRequest(w, err.Error(), nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleEntryNotFound):
		NotFound(w, "Schedule entry not found")
	case errors.Is(err, schedule.ErrInvalidDay),
		errors.Is(err, schedule.ErrInvalidTimeRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
