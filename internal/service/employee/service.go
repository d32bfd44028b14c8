package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
)

type EmployeeServiceImpl struct {
	db database.Transactor
	employee.EmployeeRepository
	policy *access.Policy
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepository employee.EmployeeRepository,
	policy *access.Policy,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
		policy:             policy,
	}
}

// directoryScope narrows the directory of a non-privileged actor to their
// own row: by relation when one exists, otherwise by email, otherwise by
// name. An actor carrying none of them sees nothing.
func (s *EmployeeServiceImpl) directoryScope(ctx context.Context, actor user.Actor) employee.Scope {
	if id, ok := actor.ID(); ok {
		_, err := s.EmployeeRepository.GetByUserID(ctx, id)
		if err == nil {
			return employee.Scope{UserID: &id}
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.DebugContext(ctx, "employee relation lookup failed", "user_id", id, "error", err)
		}
	}

	if email := strings.ToLower(actor.Email()); email != "" {
		return employee.Scope{Contact: &email}
	}
	if name := actor.Name(); name != "" {
		return employee.Scope{Name: &name}
	}
	return employee.Scope{None: true}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	filter.Scope = employee.Scope{}
	if !s.policy.CanManage(actor, user.PermissionEmployeesManage) {
		filter.Scope = s.directoryScope(ctx, actor)
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	if totalPages < 1 {
		totalPages = 1
	}

	resp := employee.ListEmployeeResponse{
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// GetEmployee implements employee.EmployeeService. Rows outside the actor's
// scope are reported as not found.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if !s.policy.CanManage(actor, user.PermissionEmployeesManage) && !s.directoryScope(ctx, actor).Matches(emp) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.policy.Require(actor, user.PermissionEmployeesManage); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		Name:     req.Name,
		Position: req.Position,
		Contact:  req.Contact,
		Status:   employee.Status(req.Status),
	}
	if req.HourlyRate.Present() {
		newEmployee.HourlyRate = req.HourlyRate.Value
	}
	if req.UserID.Present() {
		if userID := strings.TrimSpace(req.UserID.Value); userID != "" {
			newEmployee.UserID = &userID
		}
	}

	var created employee.Employee
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.EmployeeRepository.Create(ctx, newEmployee)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.policy.Require(actor, user.PermissionEmployeesManage); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var result employee.Employee
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.EmployeeRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		updated, changed := req.Apply(current)
		if !changed {
			result = current
			return nil
		}

		result, err = s.EmployeeRepository.Update(ctx, updated)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(result), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	actor, err := access.ActorFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.policy.Require(actor, user.PermissionEmployeesManage); err != nil {
		return err
	}

	return s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return s.EmployeeRepository.Delete(ctx, emp.ID)
	})
}
