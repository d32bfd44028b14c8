package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const scheduleColumns = `
	s.id::text, s.employee_id::text, s.day, s.start_time, s.end_time,
	s.created_at, s.updated_at, COALESCE(e.name, '') AS employee_name`

// Weekdays sort in calendar order rather than alphabetically.
const scheduleDayOrder = `array_position(ARRAY['Sunday','Monday','Tuesday','Wednesday','Thursday','Friday','Saturday'], s.day)`

type scheduleRepository struct {
	db database.Querier
}

func NewScheduleRepository(db database.Querier) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func scanSchedule(row pgx.Row) (schedule.Entry, error) {
	var (
		entry      schedule.Entry
		start, end pgtype.Time
	)
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.Day, &start, &end,
		&entry.CreatedAt, &entry.UpdatedAt, &entry.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Entry{}, schedule.ErrScheduleEntryNotFound
		}
		return schedule.Entry{}, err
	}
	if t := clock.FromPgTime(start); t != nil {
		entry.StartTime = *t
	}
	if t := clock.FromPgTime(end); t != nil {
		entry.EndTime = *t
	}
	return entry, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_entries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	entry, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleEntryNotFound) {
			return schedule.Entry{}, err
		}
		return schedule.Entry{}, fmt.Errorf("failed to get schedule entry: %w", err)
	}
	return entry, nil
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepository) Create(ctx context.Context, entry schedule.Entry) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return schedule.Entry{}, err
	}

	query := `
		WITH inserted AS (
			INSERT INTO schedule_entries (id, employee_id, day, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + scheduleColumns + `
		FROM inserted s
		LEFT JOIN employees e ON e.id = s.employee_id
	`

	created, err := scanSchedule(q.QueryRow(ctx, query,
		id, entry.EmployeeID, entry.Day, clock.PgTime(&entry.StartTime), clock.PgTime(&entry.EndTime),
	))
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return created, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepository) Update(ctx context.Context, entry schedule.Entry) (schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE schedule_entries
			SET employee_id = $2, day = $3, start_time = $4, end_time = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + scheduleColumns + `
		FROM updated s
		LEFT JOIN employees e ON e.id = s.employee_id
	`

	updated, err := scanSchedule(q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.Day, clock.PgTime(&entry.StartTime), clock.PgTime(&entry.EndTime),
	))
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleEntryNotFound) {
			return schedule.Entry{}, err
		}
		return schedule.Entry{}, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return updated, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleEntryNotFound
	}
	return nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepository) List(ctx context.Context, filter schedule.ListFilter) ([]schedule.Entry, error) {
	baseWhere := "TRUE"
	args := []any{}
	argIdx := 1

	if !employeeIDClause("s.employee_id", filter.EmployeeIDs, &baseWhere, &args, &argIdx) {
		return []schedule.Entry{}, nil
	}

	if filter.Day != nil {
		baseWhere += fmt.Sprintf(" AND s.day = $%d", argIdx)
		args = append(args, *filter.Day)
	}

	query := `
		SELECT ` + scheduleColumns + `
		FROM schedule_entries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE ` + baseWhere + `
		ORDER BY employee_name ASC, ` + scheduleDayOrder + ` ASC, s.start_time ASC, s.id ASC
	`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	defer rows.Close()

	entries := []schedule.Entry{}
	for rows.Next() {
		entry, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule entries: %w", err)
	}

	return entries, nil
}
