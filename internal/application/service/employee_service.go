package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Pritex32/priscomsales-api/internal/domain/entity"
	"github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/pkg/apperror"
	"github.com/Pritex32/priscomsales-api/pkg/pagination"
)

// EmployeeService handles employee profile operations. A user needs an
// employee profile before conversions can be recorded against them.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
	}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	UserID   uuid.UUID
	Name     string
	Phone    *string
	Position *string
}

// CreateEmployee creates the employee profile for a user
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Employee name is required")
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	existing, err := s.employeeRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("This user already has an employee profile")
	}

	employee := &entity.Employee{
		UserID:   input.UserID,
		Name:     input.Name,
		Phone:    input.Phone,
		Position: input.Position,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// GetEmployeeByUser retrieves the profile attached to a user, if any
func (s *EmployeeService) GetEmployeeByUser(ctx context.Context, userID uuid.UUID) (*entity.Employee, error) {
	return s.employeeRepo.GetByUserID(ctx, userID)
}

// UpdateEmployeeInput represents the update employee input
type UpdateEmployeeInput struct {
	Name     *string
	Phone    *string
	Position *string
}

// UpdateEmployee updates an employee profile
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = input.Phone
	}
	if input.Position != nil {
		employee.Position = input.Position
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee removes an employee profile
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewNotFoundError("Employee")
	}
	return s.employeeRepo.Delete(ctx, id)
}

// ListEmployees returns a page of employee profiles
func (s *EmployeeService) ListEmployees(ctx context.Context, params *pagination.PaginationParams) ([]entity.Employee, int64, error) {
	return s.employeeRepo.List(ctx, params)
}
