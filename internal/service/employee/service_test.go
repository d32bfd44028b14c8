package employee

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access/accesstest"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (employee.EmployeeService, *servicetest.EmployeeRepo, *servicetest.Tx) {
	linked := "u-ana"
	repo := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "12", Name: "Ana", Position: "Cashier", Contact: "ana@example.com", Status: employee.StatusActive, UserID: &linked},
		employee.Employee{ID: "13", Name: "Budi", Position: "Cook", Contact: "budi@example.com", Status: employee.StatusActive},
		employee.Employee{ID: "14", Name: "Citra", Position: "Cook", Status: employee.StatusInactive},
	)
	tx := &servicetest.Tx{}
	return NewEmployeeService(tx, repo, accesstest.NewPolicy(repo)), repo, tx
}

func names(resp employee.ListEmployeeResponse) []string {
	out := make([]string, 0, len(resp.Employees))
	for _, e := range resp.Employees {
		out = append(out, e.Name)
	}
	return out
}

func TestListEmployees(t *testing.T) {
	svc, _, _ := newTestService()
	manager := servicetest.As(context.Background(), servicetest.Manager())

	t.Run("manager sees the directory", func(t *testing.T) {
		got, err := svc.ListEmployees(manager, employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ana", "Budi", "Citra"}, names(got))
		assert.Equal(t, employee.DefaultPageLimit, got.Limit)
		assert.Equal(t, 1, got.TotalPages)
	})

	t.Run("search and status", func(t *testing.T) {
		search, status := "cook", "Active"
		got, err := svc.ListEmployees(manager, employee.EmployeeFilter{Search: &search, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, []string{"Budi"}, names(got))
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := svc.ListEmployees(manager, employee.EmployeeFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"Citra"}, names(got))
		assert.Equal(t, int64(3), got.TotalItems)
		assert.Equal(t, 2, got.TotalPages)
	})

	t.Run("limit cap", func(t *testing.T) {
		_, err := svc.ListEmployees(manager, employee.EmployeeFilter{Limit: employee.MaxPageLimit + 1})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})

	t.Run("page out of range", func(t *testing.T) {
		_, err := svc.ListEmployees(manager, employee.EmployeeFilter{Page: math.MaxInt64/50 + 2, Limit: 50})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "page", verrs[0].Field)
	})

	t.Run("linked actor sees own row", func(t *testing.T) {
		got, err := svc.ListEmployees(servicetest.As(context.Background(), servicetest.Staff("u-ana", "other@example.com", "")), employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Ana"}, names(got))
	})

	t.Run("email scope", func(t *testing.T) {
		got, err := svc.ListEmployees(servicetest.As(context.Background(), servicetest.Staff("u-budi", "Budi@Example.com", "")), employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Budi"}, names(got))
	})

	t.Run("name scope", func(t *testing.T) {
		got, err := svc.ListEmployees(servicetest.As(context.Background(), servicetest.Staff("", "", "citra")), employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Citra"}, names(got))
	})

	t.Run("anonymous identity sees nothing", func(t *testing.T) {
		got, err := svc.ListEmployees(servicetest.As(context.Background(), user.Principal{UserRole: user.RoleStaff}), employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Empty(t, got.Employees)
		assert.Equal(t, int64(0), got.TotalItems)
	})
}

func TestGetEmployee(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.GetEmployee(servicetest.As(context.Background(), servicetest.Manager()), "13")
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.Name)

	got, err = svc.GetEmployee(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), "12")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = svc.GetEmployee(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), "13")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(servicetest.As(context.Background(), servicetest.Manager()), "99")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateEmployee(t *testing.T) {
	t.Run("manager creates", func(t *testing.T) {
		svc, repo, tx := newTestService()
		got, err := svc.CreateEmployee(servicetest.As(context.Background(), servicetest.Manager()), employee.CreateEmployeeRequest{
			Name:       "  Dewi ",
			Position:   "Host",
			HourlyRate: nullable.Of(decimal.RequireFromString("12.50")),
			UserID:     nullable.Of("u-dewi"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Dewi", got.Name)
		assert.Equal(t, "active", got.Status)
		assert.Equal(t, 12.5, got.HourlyRate)
		assert.Equal(t, 4, repo.Count())
		assert.Equal(t, 1, tx.Calls)
	})

	t.Run("name is required", func(t *testing.T) {
		svc, repo, _ := newTestService()
		_, err := svc.CreateEmployee(servicetest.As(context.Background(), servicetest.Manager()), employee.CreateEmployeeRequest{Name: " "})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, 3, repo.Count())
	})

	t.Run("self-service cannot create", func(t *testing.T) {
		svc, repo, _ := newTestService()
		_, err := svc.CreateEmployee(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), employee.CreateEmployeeRequest{Name: "Eka"})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
		assert.Equal(t, 3, repo.Count())
	})
}

func TestUpdateEmployee(t *testing.T) {
	svc, _, _ := newTestService()
	manager := servicetest.As(context.Background(), servicetest.Manager())

	got, err := svc.UpdateEmployee(manager, employee.UpdateEmployeeRequest{
		ID:     "14",
		Status: nullable.Of("ACTIVE"),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, "Cook", got.Position)

	unchanged, err := svc.UpdateEmployee(manager, employee.UpdateEmployeeRequest{ID: "13"})
	require.NoError(t, err)
	assert.Equal(t, "Budi", unchanged.Name)

	_, err = svc.UpdateEmployee(manager, employee.UpdateEmployeeRequest{ID: "99", Name: nullable.Of("X")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	svc, repo, _ := newTestService()

	err := svc.DeleteEmployee(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), "12")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	require.NoError(t, svc.DeleteEmployee(servicetest.As(context.Background(), servicetest.Manager()), "12"))
	assert.Equal(t, 2, repo.Count())

	err = svc.DeleteEmployee(servicetest.As(context.Background(), servicetest.Manager()), "12")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
