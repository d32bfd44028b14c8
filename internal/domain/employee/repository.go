package employee

import "context"

type EmployeeRepository interface {
	// GetByID matches id against every stored encoding of the identifier.
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByContact(ctx context.Context, contact string) (Employee, error)
	GetByName(ctx context.Context, name string) (Employee, error)

	// The Find*ID lookups read the text projection of the table and return
	// only the identifier. They are used for legacy rows.
	FindIDByUserIDVariants(ctx context.Context, variants []string) (string, error)
	FindIDByContact(ctx context.Context, contact string) (string, error)
	FindIDByName(ctx context.Context, name string) (string, error)

	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
}
