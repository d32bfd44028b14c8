package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
)

type LeaveServiceImpl struct {
	db database.Transactor
	leave.LeaveRepository
	employee.EmployeeRepository
	policy *access.Policy
	now    func() time.Time
}

func NewLeaveService(
	db database.Transactor,
	leaveRepository leave.LeaveRepository,
	employeeRepository employee.EmployeeRepository,
	policy *access.Policy,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                 db,
		LeaveRepository:    leaveRepository,
		EmployeeRepository: employeeRepository,
		policy:             policy,
		now:                time.Now,
	}
}

// ListLeaves implements leave.LeaveService. Leave history is visible to
// reviewers only; self-service actors cannot list their own requests.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Require(actor, user.PermissionLeaveManage); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requested := ""
	if filter.EmployeeID != nil {
		requested = *filter.EmployeeID
	}
	scope := s.policy.Scope(ctx, actor, user.PermissionLeaveManage, requested)

	listFilter := leave.ListFilter{EmployeeIDs: scope.IDs()}
	if filter.Status != nil && *filter.Status != "" {
		status := leave.Status(*filter.Status)
		listFilter.Status = &status
	}
	if filter.Type != nil && *filter.Type != "" {
		leaveType := leave.Type(*filter.Type)
		listFilter.Type = &leaveType
	}

	records, err := s.LeaveRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	results := make([]leave.LeaveResponse, 0, len(records))
	for _, rec := range records {
		results = append(results, leave.NewLeaveResponse(rec))
	}
	return results, nil
}

// CreateLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	status := leave.StatusPending
	var employeeID string
	if s.policy.CanManage(actor, user.PermissionLeaveManage) {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID.String())
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		employeeID = emp.ID
		if req.Status != "" {
			status = leave.Status(req.Status)
		}
	} else {
		// Requests are always filed for the actor's own profile
		self, err := s.policy.LinkedEmployee(ctx, actor)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		employeeID = self.Employee.ID
	}

	var created leave.Record
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.LeaveRepository.Create(ctx, leave.Record{
			EmployeeID: employeeID,
			StartDate:  req.ParsedStartDate,
			EndDate:    req.ParsedEndDate,
			Type:       leave.Type(req.Type),
			Status:     status,
			Reason:     req.Reason,
		})
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.NewLeaveResponse(created), nil
}

// UpdateLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateLeave(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := s.policy.Require(actor, user.PermissionLeaveManage); err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	var result leave.Record
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.LeaveRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.EmployeeID.Present() && !req.EmployeeID.Value.IsZero() {
			emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID.Value.String())
			if err != nil {
				return err
			}
			rec.EmployeeID = emp.ID
		}

		rec, statusChanged := req.Apply(rec)
		if !rec.ValidRange() {
			return validator.ValidationErrors{{Field: "endDate", Message: leave.ErrInvalidDateRange.Error()}}
		}
		if statusChanged {
			decidedAt := s.now().UTC()
			rec.DecidedBy = user.DecisionLabel(actor)
			rec.DecidedAt = &decidedAt
		}

		result, err = s.LeaveRepository.Update(ctx, rec)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.NewLeaveResponse(result), nil
}

// DeleteLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLeave(ctx context.Context, id string) error {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.policy.Require(actor, user.PermissionLeaveManage); err != nil {
		return err
	}
	return s.LeaveRepository.Delete(ctx, id)
}
