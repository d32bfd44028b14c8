package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this employee and date")
	ErrDateRequired       = errors.New("date is required")
	ErrEmployeeIDRequired = errors.New("employeeId is required")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrNoFieldsToUpdate   = errors.New("no valid fields to update")
)
