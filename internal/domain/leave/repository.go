package leave

import "context"

type LeaveRepository interface {
	GetByID(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, id string) error

	// List returns records ordered by start date descending then employee name
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}
