package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee directory.
// The acting user is read from ctx.
type EmployeeService interface {
	// ListEmployees is unrestricted for managers and self-scoped otherwise
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee (self only for non-managers)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee (employees.manage)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies the fields present in req (employees.manage)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee (employees.manage)
	DeleteEmployee(ctx context.Context, id string) error
}
