package increment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
)

type IncrementServiceImpl struct {
	transactor    database.Transactor
	incrementRepo increment.IncrementRepository
	employeeRepo  employee.EmployeeRepository
}

func NewIncrementService(
	transactor database.Transactor,
	incrementRepo increment.IncrementRepository,
	employeeRepo employee.EmployeeRepository,
) increment.IncrementService {
	return &IncrementServiceImpl{
		transactor:    transactor,
		incrementRepo: incrementRepo,
		employeeRepo:  employeeRepo,
	}
}

// ApplyIncrement implements increment.IncrementService. The increment row and
// the employee's new basic salary are written in one transaction.
func (s *IncrementServiceImpl) ApplyIncrement(ctx context.Context, req increment.CreateIncrementRequest) (increment.Increment, error) {
	if err := req.Validate(); err != nil {
		return increment.Increment{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return increment.Increment{}, err
	}
	if !actor.IsStaff() {
		return increment.Increment{}, increment.ErrUnauthorized
	}

	var applied increment.Increment
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		ref, err := employee.Resolve(txCtx, s.employeeRepo, req.Employee)
		if err != nil {
			return err
		}
		emp, err := s.employeeRepo.GetByIDForUpdate(txCtx, ref.ID)
		if err != nil {
			return err
		}
		if emp.BasicSalary.Equal(req.NewSalary) {
			return increment.ErrSameSalary
		}

		applied, err = s.incrementRepo.Create(txCtx, increment.Increment{
			EmployeeID:     emp.ID,
			EffectiveDate:  req.EffectiveTime(),
			PreviousSalary: emp.BasicSalary,
			NewSalary:      req.NewSalary,
			Reason:         req.Reason,
			Remarks:        req.Remarks,
			ApprovedBy:     &actor.UserID,
			Status:         increment.StatusApproved,
		})
		if err != nil {
			return fmt.Errorf("failed to create increment: %w", err)
		}

		if err := s.employeeRepo.UpdateBasicSalary(txCtx, emp.ID, req.NewSalary, &actor.UserID); err != nil {
			return fmt.Errorf("failed to update basic salary: %w", err)
		}
		return nil
	})
	if err != nil {
		return increment.Increment{}, err
	}

	slog.Info("increment applied",
		"employee_id", applied.EmployeeID,
		"previous", applied.PreviousSalary.String(),
		"new", applied.NewSalary.String(),
	)
	return applied, nil
}

// ListIncrements implements increment.IncrementService.
func (s *IncrementServiceImpl) ListIncrements(ctx context.Context, filter increment.IncrementFilter) ([]increment.Increment, int64, error) {
	filter.Normalize()

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case !actor.IsStaff():
		if actor.EmployeeID == "" {
			return nil, 0, increment.ErrUnauthorized
		}
		filter.EmployeeID = actor.EmployeeID
	case filter.EmployeeID != "":
		emp, err := employee.Resolve(ctx, s.employeeRepo, filter.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		filter.EmployeeID = emp.ID
	}

	increments, total, err := s.incrementRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list increments: %w", err)
	}
	return increments, total, nil
}
