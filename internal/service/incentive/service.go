package incentive

import (
	"context"
	"fmt"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
)

type IncentiveServiceImpl struct {
	incentiveRepo incentive.IncentiveRepository
	employeeRepo  employee.EmployeeRepository
}

func NewIncentiveService(incentiveRepo incentive.IncentiveRepository, employeeRepo employee.EmployeeRepository) incentive.IncentiveService {
	return &IncentiveServiceImpl{
		incentiveRepo: incentiveRepo,
		employeeRepo:  employeeRepo,
	}
}

// AddIncentive implements incentive.IncentiveService. Incentives entered by
// staff are approved immediately and picked up by the next salary run.
func (s *IncentiveServiceImpl) AddIncentive(ctx context.Context, req incentive.CreateIncentiveRequest) (incentive.Incentive, error) {
	if err := req.Validate(); err != nil {
		return incentive.Incentive{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return incentive.Incentive{}, err
	}
	if !actor.IsStaff() {
		return incentive.Incentive{}, incentive.ErrUnauthorized
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, req.Employee)
	if err != nil {
		return incentive.Incentive{}, err
	}

	created, err := s.incentiveRepo.Create(ctx, incentive.Incentive{
		EmployeeID:  emp.ID,
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Remarks:     req.Remarks,
		AddedBy:     &actor.UserID,
		ApprovedBy:  &actor.UserID,
		Status:      incentive.StatusApproved,
	})
	if err != nil {
		return incentive.Incentive{}, fmt.Errorf("failed to create incentive: %w", err)
	}
	return created, nil
}

// ListIncentives implements incentive.IncentiveService.
func (s *IncentiveServiceImpl) ListIncentives(ctx context.Context, filter incentive.IncentiveFilter) ([]incentive.Incentive, int64, error) {
	filter.Normalize()

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case !actor.IsStaff():
		if actor.EmployeeID == "" {
			return nil, 0, incentive.ErrUnauthorized
		}
		filter.EmployeeID = actor.EmployeeID
	case filter.EmployeeID != "":
		emp, err := employee.Resolve(ctx, s.employeeRepo, filter.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		filter.EmployeeID = emp.ID
	}

	incentives, total, err := s.incentiveRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incentives: %w", err)
	}
	return incentives, total, nil
}
