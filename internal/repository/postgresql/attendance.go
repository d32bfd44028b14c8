package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const attendanceColumns = `
	a.id::text, a.employee_id::text, a.date, a.check_in, a.check_out, a.status, a.notes,
	a.created_at, a.updated_at, COALESCE(e.name, '') AS employee_name`

type attendanceRepository struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var (
		rec               attendance.Record
		checkIn, checkOut pgtype.Time
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &checkIn, &checkOut, &rec.Status, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, err
	}
	rec.CheckIn = clock.FromPgTime(checkIn)
	rec.CheckOut = clock.FromPgTime(checkOut)
	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetOrCreate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOrCreate(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return attendance.Record{}, false, err
	}

	insertQuery := `
		WITH inserted AS (
			INSERT INTO attendance_records (id, employee_id, date, check_in, check_out, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (employee_id, date) DO NOTHING
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM inserted a
		LEFT JOIN employees e ON e.id = a.employee_id
	`

	created, err := scanAttendance(q.QueryRow(ctx, insertQuery,
		id,
		rec.EmployeeID,
		rec.Date,
		clock.PgTime(rec.CheckIn),
		clock.PgTime(rec.CheckOut),
		rec.Status,
		rec.Notes,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Record{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	// Conflict: another submission already owns (employee_id, date)
	lockQuery := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
		FOR UPDATE OF a
	`

	existing, err := scanAttendance(q.QueryRow(ctx, lockQuery, rec.EmployeeID, rec.Date))
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to lock existing attendance: %w", err)
	}
	return existing, false, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE attendance_records
			SET employee_id = $2, date = $3, check_in = $4, check_out = $5, status = $6, notes = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM updated a
		LEFT JOIN employees e ON e.id = a.employee_id
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		clock.PgTime(rec.CheckIn),
		clock.PgTime(rec.CheckOut),
		rec.Status,
		rec.Notes,
	))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, err
		}
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAttendanceExists
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	// Build WHERE clause
	baseWhere := "TRUE"
	args := []any{}
	argIdx := 1

	if !employeeIDClause("a.employee_id", filter.EmployeeIDs, &baseWhere, &args, &argIdx) {
		return []attendance.Record{}, nil
	}

	// Date range filters
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.date DESC, employee_name ASC, a.id ASC
	`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}

	return records, nil
}
