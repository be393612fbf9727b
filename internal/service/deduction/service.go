package deduction

import (
	"context"
	"fmt"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
)

type DeductionServiceImpl struct {
	deductionRepo deduction.DeductionRepository
	employeeRepo  employee.EmployeeRepository
}

func NewDeductionService(deductionRepo deduction.DeductionRepository, employeeRepo employee.EmployeeRepository) deduction.DeductionService {
	return &DeductionServiceImpl{
		deductionRepo: deductionRepo,
		employeeRepo:  employeeRepo,
	}
}

// AddDeduction implements deduction.DeductionService.
func (s *DeductionServiceImpl) AddDeduction(ctx context.Context, req deduction.CreateDeductionRequest) (deduction.Deduction, error) {
	if err := req.Validate(); err != nil {
		return deduction.Deduction{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return deduction.Deduction{}, err
	}
	if !actor.IsStaff() {
		return deduction.Deduction{}, deduction.ErrUnauthorized
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, req.Employee)
	if err != nil {
		return deduction.Deduction{}, err
	}

	created, err := s.deductionRepo.Create(ctx, deduction.Deduction{
		EmployeeID: emp.ID,
		Month:      req.Month,
		Year:       req.Year,
		Amount:     req.Amount,
		Type:       req.Type,
		Reason:     req.Reason,
		Remarks:    req.Remarks,
		AddedBy:    &actor.UserID,
		ApprovedBy: &actor.UserID,
		Status:     deduction.StatusApproved,
	})
	if err != nil {
		return deduction.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}
	return created, nil
}

// ListDeductions implements deduction.DeductionService.
func (s *DeductionServiceImpl) ListDeductions(ctx context.Context, filter deduction.DeductionFilter) ([]deduction.Deduction, int64, error) {
	filter.Normalize()

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case !actor.IsStaff():
		if actor.EmployeeID == "" {
			return nil, 0, deduction.ErrUnauthorized
		}
		filter.EmployeeID = actor.EmployeeID
	case filter.EmployeeID != "":
		emp, err := employee.Resolve(ctx, s.employeeRepo, filter.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		filter.EmployeeID = emp.ID
	}

	deductions, total, err := s.deductionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deductions: %w", err)
	}
	return deductions, total, nil
}
