package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
)

type AdvanceServiceImpl struct {
	transactor   database.Transactor
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewAdvanceService(
	transactor database.Transactor,
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		transactor:   transactor,
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// CreateAdvance implements advance.AdvanceService. Advances entered by admin
// or hr are approved on the spot; employees may only request for themselves.
func (s *AdvanceServiceImpl) CreateAdvance(ctx context.Context, req advance.CreateAdvanceRequest) (advance.Advance, error) {
	if err := req.Validate(); err != nil {
		return advance.Advance{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return advance.Advance{}, err
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, req.Employee)
	if err != nil {
		return advance.Advance{}, err
	}
	if !actor.IsStaff() && actor.EmployeeID != emp.ID {
		return advance.Advance{}, advance.ErrUnauthorized
	}

	newAdvance := advance.Advance{
		EmployeeID:    emp.ID,
		Amount:        req.Amount,
		Reason:        req.Reason,
		Installments:  req.Installments,
		RepaymentMode: advance.RepaymentMode(req.RepaymentMode),
		PaymentMode:   req.PaymentMode,
		TransactionID: req.TransactionID,
		Remarks:       req.Remarks,
	}
	if req.PaymentDate != nil {
		if paid, ok := validator.IsValidDate(*req.PaymentDate); ok {
			newAdvance.PaymentDate = &paid
		}
	}
	if actor.IsStaff() {
		approvedAt := s.now()
		newAdvance.ApprovalStatus = advance.ApprovalApproved
		newAdvance.ApprovedBy = &actor.UserID
		newAdvance.ApprovalDate = &approvedAt
	}

	created, err := s.advanceRepo.Create(ctx, newAdvance)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}
	return created, nil
}

// DecideAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) DecideAdvance(ctx context.Context, req advance.DecideAdvanceRequest) (advance.Advance, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return advance.Advance{}, err
	}

	var decided advance.Advance
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		a, err := s.advanceRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}
		if a.ApprovalStatus != advance.ApprovalPending {
			return advance.ErrAdvanceAlreadyDecided
		}

		decidedAt := s.now()
		a.ApprovalStatus = advance.ApprovalRejected
		if req.Approved {
			a.ApprovalStatus = advance.ApprovalApproved
		}
		a.ApprovedBy = &actor.UserID
		a.ApprovalDate = &decidedAt
		if req.Remarks != "" {
			a.Remarks = req.Remarks
		}

		decided, err = s.advanceRepo.Update(txCtx, a)
		return err
	})
	if err != nil {
		return advance.Advance{}, err
	}
	return decided, nil
}

// RecordRepayment implements advance.AdvanceService.
func (s *AdvanceServiceImpl) RecordRepayment(ctx context.Context, req advance.RecordRepaymentRequest) (advance.Advance, error) {
	if err := req.Validate(); err != nil {
		return advance.Advance{}, err
	}

	var repaid advance.Advance
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		a, err := s.advanceRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}

		switch {
		case a.ApprovalStatus != advance.ApprovalApproved:
			return advance.ErrAdvanceNotApproved
		case a.RepaymentStatus == advance.RepaymentCompleted:
			return advance.ErrAdvanceAlreadySettled
		case req.Amount.GreaterThan(a.RemainingAmount):
			return advance.ErrRepaymentExceedsAmount
		}

		repaid, err = s.advanceRepo.Update(txCtx, a.RecordRepayment(advance.Repayment{
			Month:    req.Month,
			Year:     req.Year,
			Amount:   req.Amount,
			PaidDate: s.now(),
		}))
		return err
	})
	if err != nil {
		return advance.Advance{}, err
	}
	return repaid, nil
}

// GetAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) GetAdvance(ctx context.Context, id string) (advance.Advance, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return advance.Advance{}, err
	}

	a, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.Advance{}, err
	}
	if !actor.IsStaff() && actor.EmployeeID != a.EmployeeID {
		return advance.Advance{}, advance.ErrUnauthorized
	}
	return a, nil
}

// ListAdvances implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, filter advance.AdvanceFilter) ([]advance.Advance, int64, error) {
	filter.Normalize()

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case !actor.IsStaff():
		if actor.EmployeeID == "" {
			return nil, 0, advance.ErrUnauthorized
		}
		filter.EmployeeID = actor.EmployeeID
	case filter.EmployeeID != "":
		emp, err := employee.Resolve(ctx, s.employeeRepo, filter.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		filter.EmployeeID = emp.ID
	}

	advances, total, err := s.advanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list advances: %w", err)
	}
	return advances, total, nil
}
