package salary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/payslip"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/sheets"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	transactor     database.Transactor
	salaryRepo     salary.SalaryRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	incentiveRepo  incentive.IncentiveRepository
	deductionRepo  deduction.DeductionRepository
	advanceRepo    advance.AdvanceRepository
	syncer         sheets.Syncer
	policy         salary.PayrollPolicy
	rollups        cache.Cache
	now            func() time.Time
}

func NewSalaryService(
	transactor database.Transactor,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	incentiveRepo incentive.IncentiveRepository,
	deductionRepo deduction.DeductionRepository,
	advanceRepo advance.AdvanceRepository,
	syncer sheets.Syncer,
	policy salary.PayrollPolicy,
	rollups cache.Cache,
) salary.SalaryService {
	return &SalaryServiceImpl{
		transactor:     transactor,
		salaryRepo:     salaryRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		incentiveRepo:  incentiveRepo,
		deductionRepo:  deductionRepo,
		advanceRepo:    advanceRepo,
		syncer:         syncer,
		policy:         policy,
		rollups:        rollups,
		now:            time.Now,
	}
}

// GenerateSalary implements salary.SalaryService.
//
// Preconditions are checked in order: the employee exists, the profile is
// complete and no salary exists for the period. Everything after that runs in
// one transaction, so advance installments, incentive and deduction
// transitions and the salary row are committed together or not at all.
func (s *SalaryServiceImpl) GenerateSalary(ctx context.Context, req salary.GenerateSalaryRequest) (salary.Salary, error) {
	if err := req.Validate(); err != nil {
		return salary.Salary{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return salary.Salary{}, err
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, req.EmployeeID)
	if err != nil {
		return salary.Salary{}, err
	}

	if !emp.ProfileStatus.IsComplete {
		return salary.Salary{}, &salary.IncompleteProfileError{MissingFields: emp.ProfileStatus.MissingFields}
	}

	exists, err := s.salaryRepo.ExistsForPeriod(ctx, emp.ID, req.Month, req.Year)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to check existing salary: %w", err)
	}
	if exists {
		return salary.Salary{}, salary.ErrSalaryAlreadyExists
	}

	var created salary.Salary
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.generate(txCtx, emp, req, actor.UserID)
		return err
	})
	if err != nil {
		return salary.Salary{}, err
	}

	cache.Forget(ctx, s.rollups, dashboard.CacheKeyPattern)

	slog.Info("salary generated",
		"salary_id", created.ID,
		"employee_id", emp.EmployeeID,
		"period", created.Period(),
		"net_salary", created.NetSalary.StringFixed(2),
	)

	return s.sync(ctx, created, emp), nil
}

func (s *SalaryServiceImpl) generate(ctx context.Context, emp employee.Employee, req salary.GenerateSalaryRequest, generatedBy string) (salary.Salary, error) {
	from, to := attendance.MonthRange(req.Month, req.Year)
	records, err := s.attendanceRepo.ListForEmployee(ctx, emp.ID, from, to)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	summary := attendance.Summarize(records, req.Month, req.Year)

	incentives, err := s.incentiveRepo.ListApprovedForPeriod(ctx, emp.ID, req.Month, req.Year)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to load incentives: %w", err)
	}

	deductions, err := s.deductionRepo.ListApprovedForPeriod(ctx, emp.ID, req.Month, req.Year)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to load deductions: %w", err)
	}

	candidates, err := s.advanceRepo.ListDueForSalaryDeduction(ctx, emp.ID)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to load advances: %w", err)
	}

	var advances []advance.Advance
	totalAdvances := decimal.Zero
	for _, a := range candidates {
		if !a.DueForSalaryDeduction() {
			continue
		}
		advances = append(advances, a)
		totalAdvances = totalAdvances.Add(a.NextInstallment())
	}

	draft := s.policy.Compute(salary.Inputs{
		SalaryType:      emp.SalaryType,
		BasicSalary:     emp.BasicSalary,
		HRA:             emp.HRA,
		OtherAllowances: emp.OtherAllowances,
		Attendance:      summary,
		Incentives:      incentive.Total(incentives),
		Deductions:      deduction.Total(deductions),
		Advances:        totalAdvances,
	})
	draft.EmployeeID = emp.ID
	draft.Month = req.Month
	draft.Year = req.Year
	draft.Remarks = req.Remarks
	draft.GeneratedBy = &generatedBy
	draft.IncentiveIDs = incentiveIDs(incentives)
	draft.DeductionIDs = deductionIDs(deductions)
	draft.AdvanceIDs = advanceIDs(advances)

	created, err := s.salaryRepo.Create(ctx, draft)
	if err != nil {
		return salary.Salary{}, err
	}

	if len(created.IncentiveIDs) > 0 {
		if err := s.incentiveRepo.MarkPaid(ctx, created.IncentiveIDs, created.ID); err != nil {
			return salary.Salary{}, fmt.Errorf("failed to mark incentives paid: %w", err)
		}
	}

	if len(created.DeductionIDs) > 0 {
		if err := s.deductionRepo.MarkDeducted(ctx, created.DeductionIDs, created.ID); err != nil {
			return salary.Salary{}, fmt.Errorf("failed to mark deductions: %w", err)
		}
	}

	paidDate := s.now()
	for _, a := range advances {
		repaid := a.RecordRepayment(advance.Repayment{
			Month:    req.Month,
			Year:     req.Year,
			Amount:   a.NextInstallment(),
			PaidDate: paidDate,
			SalaryID: &created.ID,
		})
		if _, err := s.advanceRepo.Update(ctx, repaid); err != nil {
			return salary.Salary{}, fmt.Errorf("failed to record advance installment: %w", err)
		}
	}

	return created, nil
}

// sync pushes the salary to the spreadsheet and flags it as synced. Failures
// are logged and the unsynced salary is returned as is.
func (s *SalaryServiceImpl) sync(ctx context.Context, sal salary.Salary, emp employee.Employee) salary.Salary {
	if !s.syncer.Enabled() {
		return sal
	}

	if err := s.syncer.SyncSalary(ctx, sal, emp); err != nil {
		slog.Warn("sheets sync failed", "entity", "salary", "salary_id", sal.ID, "error", err)
		return sal
	}

	at := s.now()
	if err := s.salaryRepo.MarkSynced(ctx, sal.ID, at); err != nil {
		slog.Warn("failed to flag salary as synced", "salary_id", sal.ID, "error", err)
		return sal
	}
	sal.SyncedToSheets = true
	sal.SheetsSyncDate = &at
	return sal
}

// GetSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.Salary, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return salary.Salary{}, err
	}

	sal, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.Salary{}, err
	}

	// Employees can only view their own salaries
	if !actor.IsStaff() && actor.EmployeeID != sal.EmployeeID {
		return salary.Salary{}, salary.ErrUnauthorized
	}

	return sal, nil
}

// ListSalaries implements salary.SalaryService.
func (s *SalaryServiceImpl) ListSalaries(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case !actor.IsStaff():
		if actor.EmployeeID == "" {
			return nil, 0, salary.ErrUnauthorized
		}
		filter.EmployeeID = actor.EmployeeID
	case filter.EmployeeCode != "":
		emp, err := employee.Resolve(ctx, s.employeeRepo, filter.EmployeeCode)
		if err != nil {
			return nil, 0, err
		}
		filter.EmployeeID = emp.ID
	}

	salaries, total, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salaries: %w", err)
	}
	return salaries, total, nil
}

// UpdatePaymentStatus implements salary.SalaryService.
func (s *SalaryServiceImpl) UpdatePaymentStatus(ctx context.Context, req salary.UpdatePaymentStatusRequest) (salary.Salary, error) {
	if err := req.Validate(); err != nil {
		return salary.Salary{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return salary.Salary{}, err
	}

	var updated salary.Salary
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err = s.transitionPayment(txCtx, req, actor.UserID)
		return err
	})
	if err != nil {
		return salary.Salary{}, err
	}
	cache.Forget(ctx, s.rollups, dashboard.CacheKeyPattern)
	return updated, nil
}

// transitionPayment locks the salary row, so concurrent status changes are
// applied one after the other and each is checked against the state the
// previous one left behind.
func (s *SalaryServiceImpl) transitionPayment(ctx context.Context, req salary.UpdatePaymentStatusRequest, approvedBy string) (salary.Salary, error) {
	sal, err := s.salaryRepo.GetByIDForUpdate(ctx, req.ID)
	if err != nil {
		return salary.Salary{}, err
	}

	prev := sal.PaymentStatus
	next := salary.PaymentStatus(req.PaymentStatus)
	if !salary.CanTransition(prev, next) {
		return salary.Salary{}, fmt.Errorf("%w: %s to %s", salary.ErrInvalidStatusTransition, prev, next)
	}

	sal.PaymentStatus = next
	if next == salary.PaymentStatusPaid {
		paidAt := req.PaymentTime(s.now())
		sal.PaymentDate = &paidAt
		sal.ApprovedBy = &approvedBy
	}
	if req.PaymentMode != "" {
		sal.PaymentMode = req.PaymentMode
	}
	if req.TransactionID != "" {
		sal.TransactionID = req.TransactionID
	}
	if req.Remarks != "" {
		sal.Remarks = req.Remarks
	}

	updated, err := s.salaryRepo.UpdatePayment(ctx, sal, prev)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to update payment status: %w", err)
	}
	return updated, nil
}

// Payslip implements salary.SalaryService.
func (s *SalaryServiceImpl) Payslip(ctx context.Context, id string) ([]byte, string, error) {
	sal, err := s.GetSalary(ctx, id)
	if err != nil {
		return nil, "", err
	}

	emp, err := s.employeeRepo.GetByID(ctx, sal.EmployeeID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := payslip.Render(sal, emp)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render payslip: %w", err)
	}
	return pdf, payslip.Filename(sal, emp.EmployeeID), nil
}

func incentiveIDs(items []incentive.Incentive) []string {
	ids := make([]string, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID)
	}
	return ids
}

func deductionIDs(items []deduction.Deduction) []string {
	ids := make([]string, 0, len(items))
	for _, d := range items {
		ids = append(ids, d.ID)
	}
	return ids
}

func advanceIDs(items []advance.Advance) []string {
	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	return ids
}
