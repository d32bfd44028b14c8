package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeRowColumns = []string{"id", "user_id", "name", "contact", "position", "hourly_rate", "status", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func TestEmployeeRepository_GetByID_MatchesVariants(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	rate := decimal.RequireFromString("15.50")
	rows := pgxmock.NewRows(employeeRowColumns).
		AddRow("42", (*string)(nil), "Ana", "ana@example.com", "Clerk", rate, employee.StatusActive, now, now)

	mock.ExpectQuery(`SELECT .* FROM employees\s+WHERE id::text = ANY\(\$1\)`).
		WithArgs([]string{"42"}).
		WillReturnRows(rows)

	emp, err := NewEmployeeRepository(mock).GetByID(context.Background(), " 42 ")
	require.NoError(t, err)
	assert.Equal(t, "42", emp.ID)
	assert.Nil(t, emp.UserID)
	assert.True(t, rate.Equal(emp.HourlyRate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM employees`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns))

	_, err = NewEmployeeRepository(mock).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByID_BlankSkipsQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewEmployeeRepository(mock).GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_FindIDByContact(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id::text\s+FROM employees\s+WHERE lower\(contact::text\) = lower\(\$1\)`).
		WithArgs("ana@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("emp-7"))

	id, err := NewEmployeeRepository(mock).FindIDByContact(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "emp-7", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_List_WithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	search := "ana"
	status := "active"
	filter := employee.EmployeeFilter{
		Scope:  employee.Scope{Contact: strPtr("ana@example.com")},
		Search: &search,
		Status: &status,
		Page:   2,
		Limit:  10,
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees WHERE TRUE AND lower\(contact\) = lower\(\$1\) AND \(name ILIKE \$2 OR position ILIKE \$2 OR contact ILIKE \$2\) AND status = \$3`).
		WithArgs("ana@example.com", "%ana%", "active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))

	now := time.Now().UTC()
	mock.ExpectQuery(`ORDER BY name ASC, id ASC\s+LIMIT \$4 OFFSET \$5`).
		WithArgs("ana@example.com", "%ana%", "active", 10, 10).
		WillReturnRows(pgxmock.NewRows(employeeRowColumns).
			AddRow("emp-11", strPtr("user-1"), "Ana", "ana@example.com", "Clerk", decimal.Zero, employee.StatusActive, now, now))

	employees, total, err := NewEmployeeRepository(mock).List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, employees, 1)
	require.NotNil(t, employees[0].UserID)
	assert.Equal(t, "user-1", *employees[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_List_ScopeNone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	employees, total, err := NewEmployeeRepository(mock).List(context.Background(), employee.EmployeeFilter{
		Scope: employee.Scope{None: true},
	})
	require.NoError(t, err)
	assert.Empty(t, employees)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewEmployeeRepository(mock).Delete(context.Background(), "emp-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
