package schedule

import "errors"

var (
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrInvalidDay            = errors.New("invalid day")
	ErrInvalidTimeRange      = errors.New("startTime must be before endTime")
)
