package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `
	l.id::text, l.employee_id::text, l.start_date, l.end_date, l.type, l.status, l.reason,
	l.decided_by, l.decided_at, l.created_at, l.updated_at, COALESCE(e.name, '') AS employee_name`

type leaveRepository struct {
	db database.Querier
}

func NewLeaveRepository(db database.Querier) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func scanLeave(row pgx.Row) (leave.Record, error) {
	var rec leave.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.StartDate, &rec.EndDate, &rec.Type, &rec.Status, &rec.Reason,
		&rec.DecidedBy, &rec.DecidedAt, &rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Record{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Record{}, err
	}
	return rec, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	rec, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.Record{}, err
		}
		return leave.Record{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return rec, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, rec leave.Record) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Record{}, err
	}

	query := `
		WITH inserted AS (
			INSERT INTO leave_records (id, employee_id, start_date, end_date, type, status, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + leaveColumns + `
		FROM inserted l
		LEFT JOIN employees e ON e.id = l.employee_id
	`

	created, err := scanLeave(q.QueryRow(ctx, query,
		id, rec.EmployeeID, rec.StartDate, rec.EndDate, rec.Type, rec.Status, rec.Reason,
	))
	if err != nil {
		return leave.Record{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Update implements leave.LeaveRepository. decided_by and decided_at are
// written as given so a status decision lands in the same statement.
func (r *leaveRepository) Update(ctx context.Context, rec leave.Record) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE leave_records
			SET employee_id = $2, start_date = $3, end_date = $4, type = $5, status = $6, reason = $7,
				decided_by = $8, decided_at = $9, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + leaveColumns + `
		FROM updated l
		LEFT JOIN employees e ON e.id = l.employee_id
	`

	updated, err := scanLeave(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.StartDate, rec.EndDate, rec.Type, rec.Status, rec.Reason,
		rec.DecidedBy, rec.DecidedAt,
	))
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.Record{}, err
		}
		return leave.Record{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.Record, error) {
	baseWhere := "TRUE"
	args := []any{}
	argIdx := 1

	if !employeeIDClause("l.employee_id", filter.EmployeeIDs, &baseWhere, &args, &argIdx) {
		return []leave.Record{}, nil
	}

	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Type != nil {
		baseWhere += fmt.Sprintf(" AND l.type = $%d", argIdx)
		args = append(args, *filter.Type)
	}

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE ` + baseWhere + `
		ORDER BY l.start_date DESC, employee_name ASC, l.id ASC
	`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	records := []leave.Record{}
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave requests: %w", err)
	}

	return records, nil
}
