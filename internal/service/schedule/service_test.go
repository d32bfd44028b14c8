package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/nullable"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access/accesstest"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(s string) clock.TimeOfDay {
	t, err := clock.ParseHM(s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(id, empID string, day schedule.Day, start, end string) schedule.Entry {
	return schedule.Entry{ID: id, EmployeeID: empID, Day: day, StartTime: hm(start), EndTime: hm(end)}
}

func newTestService(entries ...schedule.Entry) (schedule.ScheduleService, *servicetest.ScheduleRepo) {
	linked := "7"
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "12", Name: "Ana", Contact: "ana@example.com", UserID: &linked},
		employee.Employee{ID: "13", Name: "Budi", Contact: "budi@example.com"},
	)
	repo := servicetest.NewScheduleRepo(employees, entries...)
	return NewScheduleService(&servicetest.Tx{}, repo, employees, accesstest.NewPolicy(employees)), repo
}

func TestListSchedule(t *testing.T) {
	svc, _ := newTestService(
		entry("s1", "13", schedule.Monday, "09:00", "17:00"),
		entry("s2", "12", schedule.Tuesday, "08:00", "12:00"),
		entry("s3", "12", schedule.Sunday, "13:00", "18:00"),
		entry("s4", "12", schedule.Sunday, "07:00", "11:00"),
	)

	t.Run("manager sees all ordered by name, day and start", func(t *testing.T) {
		got, err := svc.ListSchedule(servicetest.As(context.Background(), servicetest.Manager()), schedule.ScheduleFilter{})
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"s4", "s3", "s2", "s1"}, ids)
	})

	t.Run("self-service sees own rows through legacy user id", func(t *testing.T) {
		// numeric claim "07" matches the stored "7" only through its variants
		actor := servicetest.Staff("07", "", "")
		got, err := svc.ListSchedule(servicetest.As(context.Background(), actor), schedule.ScheduleFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("day filter", func(t *testing.T) {
		day := "Sunday"
		got, err := svc.ListSchedule(servicetest.As(context.Background(), servicetest.Manager()), schedule.ScheduleFilter{Day: &day})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unknown day", func(t *testing.T) {
		day := "Funday"
		_, err := svc.ListSchedule(servicetest.As(context.Background(), servicetest.Manager()), schedule.ScheduleFilter{Day: &day})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})

	t.Run("unresolved actor gets an empty list", func(t *testing.T) {
		got, err := svc.ListSchedule(servicetest.As(context.Background(), servicetest.Staff("u-x", "x@example.com", "")), schedule.ScheduleFilter{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("role without schedule access", func(t *testing.T) {
		guest := user.Principal{UserID: "7", UserRole: "guest"}
		_, err := svc.ListSchedule(servicetest.As(context.Background(), guest), schedule.ScheduleFilter{})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})
}

func TestCreateEntry(t *testing.T) {
	t.Run("start must precede end", func(t *testing.T) {
		svc, repo := newTestService()
		_, err := svc.CreateEntry(servicetest.As(context.Background(), servicetest.Manager()), schedule.CreateEntryRequest{
			EmployeeID: identifier.Raw("12"),
			Day:        "Monday",
			StartTime:  "17:00",
			EndTime:    "17:00",
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Empty(t, repo.All())
	})

	t.Run("accepts the legacy employee key", func(t *testing.T) {
		svc, _ := newTestService()
		got, err := svc.CreateEntry(servicetest.As(context.Background(), servicetest.Manager()), schedule.CreateEntryRequest{
			Employee:  identifier.Raw("13"),
			Day:       "Friday",
			StartTime: "09:00",
			EndTime:   "17:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "13", got.EmployeeID)
		assert.Equal(t, "Budi", got.EmployeeName)
		assert.Equal(t, "17:30", got.EndTime)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.CreateEntry(servicetest.As(context.Background(), servicetest.Manager()), schedule.CreateEntryRequest{
			EmployeeID: identifier.Raw("99"),
			Day:        "Friday",
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("view access cannot write", func(t *testing.T) {
		svc, repo := newTestService()
		_, err := svc.CreateEntry(servicetest.As(context.Background(), servicetest.Staff("7", "", "")), schedule.CreateEntryRequest{
			EmployeeID: identifier.Raw("12"),
			Day:        "Friday",
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
		assert.Empty(t, repo.All())
	})
}

func TestUpdateEntry(t *testing.T) {
	t.Run("day only keeps times", func(t *testing.T) {
		svc, _ := newTestService(entry("s1", "12", schedule.Monday, "09:00", "17:00"))
		got, err := svc.UpdateEntry(servicetest.As(context.Background(), servicetest.Manager()), schedule.UpdateEntryRequest{
			ID:  "s1",
			Day: nullable.Of("Wednesday"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Wednesday", got.Day)
		assert.Equal(t, "09:00", got.StartTime)
		assert.Equal(t, "17:00", got.EndTime)
	})

	t.Run("merged range is validated", func(t *testing.T) {
		svc, repo := newTestService(entry("s1", "12", schedule.Monday, "09:00", "17:00"))
		_, err := svc.UpdateEntry(servicetest.As(context.Background(), servicetest.Manager()), schedule.UpdateEntryRequest{
			ID:        "s1",
			StartTime: nullable.Of("18:00"),
		})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, hm("09:00"), repo.All()[0].StartTime)
	})

	t.Run("missing entry", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.UpdateEntry(servicetest.As(context.Background(), servicetest.Manager()), schedule.UpdateEntryRequest{ID: "nope"})
		assert.ErrorIs(t, err, schedule.ErrScheduleEntryNotFound)
	})
}

func TestDeleteEntry(t *testing.T) {
	svc, repo := newTestService(entry("s1", "12", schedule.Monday, "09:00", "17:00"))

	err := svc.DeleteEntry(servicetest.As(context.Background(), servicetest.Staff("7", "", "")), "s1")
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Len(t, repo.All(), 1)

	require.NoError(t, svc.DeleteEntry(servicetest.As(context.Background(), servicetest.Manager()), "s1"))
	assert.Empty(t, repo.All())
}
