package schedule

import "context"

type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (Entry, error)
	Create(ctx context.Context, entry Entry) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string) error

	// List returns entries ordered by employee name, day, start time
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}
