package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id::text, user_id::text, name, contact, position, hourly_rate, status, created_at, updated_at`

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &e.Contact, &e.Position,
		&e.HourlyRate, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE ` + where + `
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	variants := variantsOf(id)
	if len(variants) == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.getOne(ctx, "id::text = ANY($1)", variants)
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return r.getOne(ctx, "user_id = $1", userID)
}

// GetByContact implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByContact(ctx context.Context, contact string) (employee.Employee, error) {
	return r.getOne(ctx, "lower(contact) = lower($1)", strings.TrimSpace(contact))
}

// GetByName implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByName(ctx context.Context, name string) (employee.Employee, error) {
	return r.getOne(ctx, "lower(name) = lower($1)", strings.TrimSpace(name))
}

func (r *employeeRepositoryImpl) findID(ctx context.Context, where string, arg any) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id::text
		FROM employees
		WHERE ` + where + `
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	var id string
	if err := q.QueryRow(ctx, query, arg).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to find employee id: %w", err)
	}
	return id, nil
}

// FindIDByUserIDVariants implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindIDByUserIDVariants(ctx context.Context, variants []string) (string, error) {
	if len(variants) == 0 {
		return "", employee.ErrEmployeeNotFound
	}
	return r.findID(ctx, "user_id::text = ANY($1)", variants)
}

// FindIDByContact implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindIDByContact(ctx context.Context, contact string) (string, error) {
	return r.findID(ctx, "lower(contact::text) = lower($1)", strings.TrimSpace(contact))
}

// FindIDByName implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindIDByName(ctx context.Context, name string) (string, error) {
	return r.findID(ctx, "lower(name::text) = lower($1)", strings.TrimSpace(name))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	if filter.Scope.None {
		return []employee.Employee{}, 0, nil
	}

	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "TRUE"
	args := []any{}
	argIdx := 1

	switch {
	case filter.Scope.UserID != nil:
		baseWhere += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.Scope.UserID)
		argIdx++
	case filter.Scope.Contact != nil:
		baseWhere += fmt.Sprintf(" AND lower(contact) = lower($%d)", argIdx)
		args = append(args, *filter.Scope.Contact)
		argIdx++
	case filter.Scope.Name != nil:
		baseWhere += fmt.Sprintf(" AND lower(name) = lower($%d)", argIdx)
		args = append(args, *filter.Scope.Name)
		argIdx++
	}

	// Search across name, position and contact
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR position ILIKE $%d OR contact ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM employees WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = employee.DefaultPageLimit
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, total, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if newEmployee.ID == "" {
		id, err := newID()
		if err != nil {
			return employee.Employee{}, err
		}
		newEmployee.ID = id
	}

	query := `
		INSERT INTO employees (id, user_id, name, contact, position, hourly_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.UserID,
		newEmployee.Name,
		newEmployee.Contact,
		newEmployee.Position,
		newEmployee.HourlyRate,
		newEmployee.Status,
	).Scan(&newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET user_id = $2, name = $3, contact = $4, position = $5, hourly_rate = $6, status = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.UserID, e.Name, e.Contact, e.Position, e.HourlyRate, e.Status,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return e, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
