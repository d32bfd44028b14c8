package schedule

import "context"

// ScheduleService defines business logic for weekly schedules.
// The acting user is read from ctx.
type ScheduleService interface {
	// ListSchedule requires schedule.view_edit or schedule.manage; without
	// schedule.manage only the actor's own entries are returned
	ListSchedule(ctx context.Context, filter ScheduleFilter) ([]ScheduleResponse, error)

	CreateEntry(ctx context.Context, req CreateEntryRequest) (ScheduleResponse, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (ScheduleResponse, error)
	DeleteEntry(ctx context.Context, id string) error
}
