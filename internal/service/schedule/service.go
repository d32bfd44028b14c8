package schedule

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
)

type ScheduleServiceImpl struct {
	db database.Transactor
	schedule.ScheduleRepository
	employee.EmployeeRepository
	policy *access.Policy
}

func NewScheduleService(
	db database.Transactor,
	scheduleRepository schedule.ScheduleRepository,
	employeeRepository employee.EmployeeRepository,
	policy *access.Policy,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		db:                 db,
		ScheduleRepository: scheduleRepository,
		EmployeeRepository: employeeRepository,
		policy:             policy,
	}
}

// ListSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListSchedule(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.ScheduleResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Require(actor, user.PermissionScheduleViewEdit, user.PermissionScheduleManage); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requested := ""
	if filter.EmployeeID != nil {
		requested = *filter.EmployeeID
	}
	scope := s.policy.Scope(ctx, actor, user.PermissionScheduleManage, requested)
	if scope.Empty() {
		return []schedule.ScheduleResponse{}, nil
	}

	listFilter := schedule.ListFilter{EmployeeIDs: scope.IDs()}
	if filter.Day != nil {
		day := schedule.Day(*filter.Day)
		listFilter.Day = &day
	}

	entries, err := s.ScheduleRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	results := make([]schedule.ScheduleResponse, 0, len(entries))
	for _, e := range entries {
		results = append(results, schedule.NewScheduleResponse(e))
	}
	return results, nil
}

// CreateEntry implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateEntry(ctx context.Context, req schedule.CreateEntryRequest) (schedule.ScheduleResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := s.policy.Require(actor, user.PermissionScheduleManage); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.Target().String())
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	var created schedule.Entry
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.ScheduleRepository.Create(ctx, schedule.Entry{
			EmployeeID: emp.ID,
			Day:        schedule.Day(req.Day),
			StartTime:  req.ParsedStartTime,
			EndTime:    req.ParsedEndTime,
		})
		return err
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return schedule.NewScheduleResponse(created), nil
}

// UpdateEntry implements schedule.ScheduleService. The time range is checked
// on the merged entry, so changing only the day keeps a valid entry valid.
func (s *ScheduleServiceImpl) UpdateEntry(ctx context.Context, req schedule.UpdateEntryRequest) (schedule.ScheduleResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := s.policy.Require(actor, user.PermissionScheduleManage); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	var result schedule.Entry
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		entry, err := s.ScheduleRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.EmployeeID.Present() && !req.EmployeeID.Value.IsZero() {
			emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID.Value.String())
			if err != nil {
				return err
			}
			entry.EmployeeID = emp.ID
		}

		entry = req.Apply(entry)
		if !entry.ValidTimes() {
			return validator.ValidationErrors{{Field: "endTime", Message: schedule.ErrInvalidTimeRange.Error()}}
		}

		result, err = s.ScheduleRepository.Update(ctx, entry)
		return err
	})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return schedule.NewScheduleResponse(result), nil
}

// DeleteEntry implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.policy.Require(actor, user.PermissionScheduleManage); err != nil {
		return err
	}
	return s.ScheduleRepository.Delete(ctx, id)
}
