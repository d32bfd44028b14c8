package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access/accesstest"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decisionTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(records ...leave.Record) (leave.LeaveService, *servicetest.LeaveRepo) {
	linked := "u-ana"
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "12", Name: "Ana", Contact: "ana@example.com", UserID: &linked},
		employee.Employee{ID: "13", Name: "Budi", Contact: "budi@example.com"},
		employee.Employee{ID: "14", Name: "Citra"},
	)
	leaves := servicetest.NewLeaveRepo(employees, records...)
	svc := NewLeaveService(&servicetest.Tx{}, leaves, employees, accesstest.NewPolicy(employees))
	svc.(*LeaveServiceImpl).now = func() time.Time { return decisionTime }
	return svc, leaves
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func pending(id, empID, start, end string) leave.Record {
	return leave.Record{
		ID: id, EmployeeID: empID,
		StartDate: date(start), EndDate: date(end),
		Type: leave.TypeAnnual, Status: leave.StatusPending,
	}
}

func TestListLeaves(t *testing.T) {
	svc, _ := newTestService(
		pending("l1", "12", "2024-05-01", "2024-05-02"),
		pending("l2", "13", "2024-06-01", "2024-06-03"),
	)

	t.Run("self-service cannot list", func(t *testing.T) {
		_, err := svc.ListLeaves(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), leave.LeaveFilter{})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})

	t.Run("manager lists newest first", func(t *testing.T) {
		got, err := svc.ListLeaves(servicetest.As(context.Background(), servicetest.Manager()), leave.LeaveFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "l2", got[0].ID)
		assert.Equal(t, "Budi", got[0].EmployeeName)
	})

	t.Run("explicit grant filters by employee", func(t *testing.T) {
		reviewer := servicetest.Staff("u-r", "r@example.com", "Reviewer")
		reviewer.Permissions = []user.Permission{user.PermissionLeaveManage}
		id := "12"
		got, err := svc.ListLeaves(servicetest.As(context.Background(), reviewer), leave.LeaveFilter{EmployeeID: &id})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "l1", got[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		status := "Approved"
		got, err := svc.ListLeaves(servicetest.As(context.Background(), servicetest.Manager()), leave.LeaveFilter{Status: &status})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCreateLeave(t *testing.T) {
	t.Run("end before start is rejected", func(t *testing.T) {
		svc, leaves := newTestService()
		_, err := svc.CreateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.CreateLeaveRequest{
			EmployeeID: identifier.Raw("12"),
			StartDate:  "2024-05-03",
			EndDate:    "2024-05-01",
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "endDate", verrs[0].Field)
		assert.Empty(t, leaves.All())
	})

	t.Run("manager files for an existing employee", func(t *testing.T) {
		svc, _ := newTestService()
		got, err := svc.CreateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.CreateLeaveRequest{
			EmployeeID: identifier.Raw("14"),
			StartDate:  "2024-05-01",
			EndDate:    "2024-05-01",
			Type:       "Sick",
			Status:     "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, "14", got.EmployeeID)
		assert.Equal(t, "sick", got.Type)
		assert.Equal(t, "approved", got.Status)
	})

	t.Run("manager target must exist", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.CreateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.CreateLeaveRequest{
			EmployeeID: identifier.Raw("99"),
			StartDate:  "2024-05-01",
			EndDate:    "2024-05-02",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("self-service is pinned to own profile", func(t *testing.T) {
		svc, _ := newTestService()
		budi := servicetest.Staff("u-budi", "BUDI@example.com", "")
		got, err := svc.CreateLeave(servicetest.As(context.Background(), budi), leave.CreateLeaveRequest{
			EmployeeID: identifier.Raw("12"),
			StartDate:  "2024-05-01",
			EndDate:    "2024-05-02",
			Status:     "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, "13", got.EmployeeID)
		assert.Equal(t, "pending", got.Status)
		assert.Equal(t, "other", got.Type)
	})

	t.Run("self-service by name", func(t *testing.T) {
		svc, _ := newTestService()
		got, err := svc.CreateLeave(servicetest.As(context.Background(), servicetest.Staff("", "", "citra")), leave.CreateLeaveRequest{
			EmployeeID: identifier.Raw("14"),
			StartDate:  "2024-05-01",
			EndDate:    "2024-05-02",
		})
		require.NoError(t, err)
		assert.Equal(t, "14", got.EmployeeID)
	})

	t.Run("self-service without profile", func(t *testing.T) {
		svc, leaves := newTestService()
		_, err := svc.CreateLeave(servicetest.As(context.Background(), servicetest.Staff("u-x", "x@example.com", "Nobody")), leave.CreateLeaveRequest{
			EmployeeID: identifier.Raw("12"),
			StartDate:  "2024-05-01",
			EndDate:    "2024-05-02",
		})
		assert.ErrorIs(t, err, user.ErrNoEmployeeProfile)
		assert.Empty(t, leaves.All())
	})
}

func TestUpdateLeave(t *testing.T) {
	t.Run("status change stamps the decision", func(t *testing.T) {
		svc, _ := newTestService(pending("l1", "12", "2024-05-01", "2024-05-02"))
		got, err := svc.UpdateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.UpdateLeaveRequest{
			ID:     "l1",
			Status: nullable.Of("APPROVED"),
		})
		require.NoError(t, err)
		assert.Equal(t, "approved", got.Status)
		assert.Equal(t, "boss@example.com", got.DecidedBy)
		require.NotNil(t, got.DecidedAt)
		assert.Equal(t, "2024-06-01T09:30:00Z", *got.DecidedAt)
	})

	t.Run("decision label falls back to name", func(t *testing.T) {
		svc, _ := newTestService(pending("l1", "12", "2024-05-01", "2024-05-02"))
		mgr := user.Principal{DisplayName: "Head", UserRole: user.RoleAdmin}
		got, err := svc.UpdateLeave(servicetest.As(context.Background(), mgr), leave.UpdateLeaveRequest{
			ID:     "l1",
			Status: nullable.Of("rejected"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Head", got.DecidedBy)
	})

	t.Run("merged range is validated", func(t *testing.T) {
		svc, leaves := newTestService(pending("l1", "12", "2024-05-01", "2024-05-02"))
		_, err := svc.UpdateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.UpdateLeaveRequest{
			ID:        "l1",
			StartDate: nullable.Of("2024-05-10"),
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, date("2024-05-01"), leaves.All()[0].StartDate)
	})

	t.Run("reason only keeps decision empty", func(t *testing.T) {
		svc, _ := newTestService(pending("l1", "12", "2024-05-01", "2024-05-02"))
		got, err := svc.UpdateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.UpdateLeaveRequest{
			ID:     "l1",
			Reason: nullable.Of("family"),
		})
		require.NoError(t, err)
		assert.Equal(t, "family", got.Reason)
		assert.Empty(t, got.DecidedBy)
		assert.Nil(t, got.DecidedAt)
	})

	t.Run("self-service cannot update", func(t *testing.T) {
		svc, _ := newTestService(pending("l1", "12", "2024-05-01", "2024-05-02"))
		_, err := svc.UpdateLeave(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), leave.UpdateLeaveRequest{
			ID:     "l1",
			Status: nullable.Of("approved"),
		})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})

	t.Run("missing record", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.UpdateLeave(servicetest.As(context.Background(), servicetest.Manager()), leave.UpdateLeaveRequest{ID: "nope"})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestDeleteLeave(t *testing.T) {
	svc, leaves := newTestService(pending("l1", "12", "2024-05-01", "2024-05-02"))

	err := svc.DeleteLeave(servicetest.As(context.Background(), servicetest.Staff("u-ana", "", "")), "l1")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Len(t, leaves.All(), 1)

	require.NoError(t, svc.DeleteLeave(servicetest.As(context.Background(), servicetest.Manager()), "l1"))
	assert.Empty(t, leaves.All())
}
