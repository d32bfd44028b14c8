package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attendanceRowColumns = []string{
	"id", "employee_id", "date", "check_in", "check_out", "status", "notes",
	"created_at", "updated_at", "employee_name",
}

func nineAM(t *testing.T) clock.TimeOfDay {
	t.Helper()
	tod, err := clock.New(9, 0, 0)
	require.NoError(t, err)
	return tod
}

func TestAttendanceRepository_GetOrCreate_Inserted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	checkIn := nineAM(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO attendance_records .* ON CONFLICT \(employee_id, date\) DO NOTHING`).
		WithArgs(pgxmock.AnyArg(), "emp-1", date, clock.PgTime(&checkIn), pgtype.Time{}, attendance.StatusPresent, "").
		WillReturnRows(pgxmock.NewRows(attendanceRowColumns).
			AddRow("att-1", "emp-1", date, clock.PgTime(&checkIn), pgtype.Time{}, attendance.StatusPresent, "", now, now, "Ana"))

	rec, created, err := NewAttendanceRepository(mock).GetOrCreate(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       date,
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "att-1", rec.ID)
	assert.Equal(t, "Ana", rec.EmployeeName)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, "09:00", rec.CheckIn.String())
	assert.Nil(t, rec.CheckOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_GetOrCreate_ConflictLocksExisting(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	checkIn := nineAM(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`ON CONFLICT \(employee_id, date\) DO NOTHING`).
		WithArgs(pgxmock.AnyArg(), "emp-1", date, pgtype.Time{}, pgtype.Time{}, attendance.StatusPresent, "").
		WillReturnRows(pgxmock.NewRows(attendanceRowColumns))
	mock.ExpectQuery(`WHERE a.employee_id = \$1 AND a.date = \$2\s+FOR UPDATE OF a`).
		WithArgs("emp-1", date).
		WillReturnRows(pgxmock.NewRows(attendanceRowColumns).
			AddRow("att-1", "emp-1", date, clock.PgTime(&checkIn), pgtype.Time{}, attendance.StatusLate, "traffic", now, now, "Ana"))

	rec, created, err := NewAttendanceRepository(mock).GetOrCreate(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       date,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, "traffic", rec.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_List_ScopedAndFiltered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	status := attendance.StatusPresent
	ids := []string{"42"}

	mock.ExpectQuery(`WHERE TRUE AND a.employee_id::text = ANY\(\$1\) AND a.date >= \$2 AND a.status = \$3\s+ORDER BY a.date DESC, employee_name ASC, a.id ASC`).
		WithArgs(ids, from, status).
		WillReturnRows(pgxmock.NewRows(attendanceRowColumns).
			AddRow("att-2", "42", from, pgtype.Time{}, pgtype.Time{}, attendance.StatusPresent, "", from, from, "Ana"))

	records, err := NewAttendanceRepository(mock).List(context.Background(), attendance.ListFilter{
		EmployeeIDs: ids,
		From:        &from,
		Status:      &status,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "42", records[0].EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_List_EmptyScopeSkipsQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	records, err := NewAttendanceRepository(mock).List(context.Background(), attendance.ListFilter{EmployeeIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WHERE a.id = \$1`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(attendanceRowColumns))

	_, err = NewAttendanceRepository(mock).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_Update_DuplicateDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE attendance_records`).
		WithArgs("att-1", "emp-2", date, pgtype.Time{}, pgtype.Time{}, attendance.StatusPresent, "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = NewAttendanceRepository(mock).Update(context.Background(), attendance.Record{
		ID:         "att-1",
		EmployeeID: "emp-2",
		Date:       date,
		Status:     attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
