package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
)

type AttendanceServiceImpl struct {
	db database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy *access.Policy
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	policy *access.Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		policy:               policy,
	}
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requested := ""
	if filter.EmployeeID != nil {
		requested = *filter.EmployeeID
	}
	scope := s.policy.Scope(ctx, actor, user.PermissionAttendanceManage, requested)
	if scope.Empty() {
		return []attendance.AttendanceResponse{}, nil
	}

	listFilter := attendance.ListFilter{EmployeeIDs: scope.IDs()}
	if filter.From != nil {
		from, _ := validator.IsValidDate(*filter.From)
		listFilter.From = &from
	}
	if filter.To != nil {
		to, _ := validator.IsValidDate(*filter.To)
		listFilter.To = &to
	}
	if filter.Status != nil && *filter.Status != "" {
		status := attendance.Status(*filter.Status)
		listFilter.Status = &status
	}

	records, err := s.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	results := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		results = append(results, attendance.NewAttendanceResponse(rec))
	}
	return results, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !s.policy.CanManage(actor, user.PermissionAttendanceManage) && !s.policy.Owns(ctx, actor, rec.EmployeeID) {
		return attendance.AttendanceResponse{}, user.ErrForbidden
	}

	return attendance.NewAttendanceResponse(rec), nil
}

// CreateAttendance implements attendance.AttendanceService.
//
// A second submission for the same employee and date returns the existing
// row. Self-service actors only fill in what is still empty; managers
// overwrite whatever the payload carries.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	canManage := s.policy.CanManage(actor, user.PermissionAttendanceManage)

	var employeeID string
	if !canManage {
		// Self-service check-in requires an already linked profile
		self, err := s.policy.SelfIdentity(ctx, actor, false)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if err := access.PinTarget(self, req.EmployeeID); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		employeeID = self.EmployeeID
		req.Status = ""
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.DefaultStatus
	if canManage {
		if req.EmployeeID.IsZero() {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{
				{Field: "employeeId", Message: attendance.ErrEmployeeIDRequired.Error()},
			}
		}
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID.String())
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		employeeID = emp.ID
		if req.Status != "" {
			status = attendance.Status(req.Status)
		}
	}

	var result attendance.Record
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, created, err := s.AttendanceRepository.GetOrCreate(ctx, attendance.Record{
			EmployeeID: employeeID,
			Date:       req.ParsedDate,
			CheckIn:    req.ParsedCheckIn,
			CheckOut:   req.ParsedCheckOut,
			Status:     status,
			Notes:      req.NotesValue(),
		})
		if err != nil {
			return err
		}
		if created {
			result = rec
			return nil
		}

		var updated bool
		if canManage {
			rec, updated = req.MergeManaged(rec)
		} else {
			rec, updated = req.MergeSelfService(rec)
		}
		if !updated {
			result = rec
			return nil
		}

		result, err = s.AttendanceRepository.Update(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(result), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	canManage := s.policy.CanManage(actor, user.PermissionAttendanceManage)

	var result attendance.Record
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if canManage {
			if req.EmployeeID.Present() && !req.EmployeeID.Value.IsZero() {
				emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID.Value.String())
				if err != nil {
					return err
				}
				rec.EmployeeID = emp.ID
			}
			rec = req.ApplyManaged(rec)
		} else {
			if !s.policy.Owns(ctx, actor, rec.EmployeeID) {
				return user.ErrForbidden
			}
			var ok bool
			if rec, ok = req.ApplySelfService(rec); !ok {
				return attendance.ErrNoFieldsToUpdate
			}
		}

		result, err = s.AttendanceRepository.Update(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(result), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.policy.Require(actor, user.PermissionAttendanceManage); err != nil {
		return err
	}
	return s.AttendanceRepository.Delete(ctx, id)
}
