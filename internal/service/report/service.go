package report

import (
	"context"
	"fmt"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/report"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	policy     salary.PayrollPolicy
}

func NewReportService(reportRepo report.ReportRepository, policy salary.PayrollPolicy) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		policy:     policy,
	}
}

// authorize restricts every report to admin and hr users.
func (s *ReportServiceImpl) authorize(ctx context.Context) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.IsStaff() {
		return report.ErrUnauthorized
	}
	return nil
}

// SalaryReport lists the salaries of a period with their column totals.
func (s *ReportServiceImpl) SalaryReport(ctx context.Context, filter report.SalaryReportFilter) (report.SalaryReport, error) {
	if err := filter.Validate(); err != nil {
		return report.SalaryReport{}, err
	}
	if err := s.authorize(ctx); err != nil {
		return report.SalaryReport{}, err
	}

	salaries, err := s.reportRepo.Salaries(ctx, filter)
	if err != nil {
		return report.SalaryReport{}, fmt.Errorf("failed to get salary report: %w", err)
	}

	totals := report.SalaryTotals{
		Count:            len(salaries),
		TotalGrossSalary: decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalNetSalary:   decimal.Zero,
		TotalIncentives:  decimal.Zero,
		TotalAdvances:    decimal.Zero,
	}
	for _, sal := range salaries {
		totals.TotalGrossSalary = totals.TotalGrossSalary.Add(sal.GrossSalary)
		totals.TotalDeductions = totals.TotalDeductions.Add(sal.TotalDeductionsAmount)
		totals.TotalNetSalary = totals.TotalNetSalary.Add(sal.NetSalary)
		totals.TotalIncentives = totals.TotalIncentives.Add(sal.TotalIncentives)
		totals.TotalAdvances = totals.TotalAdvances.Add(sal.TotalAdvances)
	}

	return report.SalaryReport{
		Salaries: nonNil(salaries),
		Totals:   totals,
		Filters:  filter,
	}, nil
}

// AttendanceReport aggregates attendance per active employee over a date range.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, filter report.AttendanceReportFilter) (report.AttendanceReport, error) {
	if err := filter.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}
	if err := s.authorize(ctx); err != nil {
		return report.AttendanceReport{}, err
	}

	rows, err := s.reportRepo.AttendanceRows(ctx, filter)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to get attendance report: %w", err)
	}

	return report.AttendanceReport{
		Report:  nonNil(rows),
		Filters: filter,
	}, nil
}

// PFESIReport lists statutory contributions for a period. The employer share
// is derived from the payroll policy in force.
func (s *ReportServiceImpl) PFESIReport(ctx context.Context, filter report.PeriodFilter) (report.PFESIReport, error) {
	if err := filter.Validate(); err != nil {
		return report.PFESIReport{}, err
	}
	if err := s.authorize(ctx); err != nil {
		return report.PFESIReport{}, err
	}

	rows, err := s.reportRepo.PFESIRows(ctx, filter.Month, filter.Year)
	if err != nil {
		return report.PFESIReport{}, fmt.Errorf("failed to get pf/esi report: %w", err)
	}

	totals := report.PFESITotals{
		TotalPFEmployee: decimal.Zero,
		TotalPFEmployer: decimal.Zero,
		TotalESI:        decimal.Zero,
	}
	for i := range rows {
		rows[i].PFEmployer = s.policy.EmployerPF(salary.Salary{
			BasicSalary:   rows[i].BasicSalary,
			ProvidentFund: rows[i].PFEmployee,
		})
		totals.TotalPFEmployee = totals.TotalPFEmployee.Add(rows[i].PFEmployee)
		totals.TotalPFEmployer = totals.TotalPFEmployer.Add(rows[i].PFEmployer)
		totals.TotalESI = totals.TotalESI.Add(rows[i].ESI)
	}

	return report.PFESIReport{
		Report:  nonNil(rows),
		Totals:  totals,
		Filters: filter,
	}, nil
}

func (s *ReportServiceImpl) IncentiveReport(ctx context.Context, filter report.LedgerFilter) (report.IncentiveReport, error) {
	if err := s.authorize(ctx); err != nil {
		return report.IncentiveReport{}, err
	}

	incentives, err := s.reportRepo.Incentives(ctx, filter)
	if err != nil {
		return report.IncentiveReport{}, fmt.Errorf("failed to get incentive report: %w", err)
	}

	return report.IncentiveReport{
		Incentives:  nonNil(incentives),
		TotalAmount: incentive.Total(incentives),
		Count:       len(incentives),
		Filters:     filter,
	}, nil
}

func (s *ReportServiceImpl) DeductionReport(ctx context.Context, filter report.LedgerFilter) (report.DeductionReport, error) {
	if err := s.authorize(ctx); err != nil {
		return report.DeductionReport{}, err
	}

	deductions, err := s.reportRepo.Deductions(ctx, filter)
	if err != nil {
		return report.DeductionReport{}, fmt.Errorf("failed to get deduction report: %w", err)
	}

	return report.DeductionReport{
		Deductions:  nonNil(deductions),
		TotalAmount: deduction.Total(deductions),
		Count:       len(deductions),
		Filters:     filter,
	}, nil
}

func (s *ReportServiceImpl) IncrementReport(ctx context.Context, filter report.IncrementReportFilter) (report.IncrementReport, error) {
	if err := s.authorize(ctx); err != nil {
		return report.IncrementReport{}, err
	}

	increments, err := s.reportRepo.Increments(ctx, filter)
	if err != nil {
		return report.IncrementReport{}, fmt.Errorf("failed to get increment report: %w", err)
	}

	total := decimal.Zero
	for _, inc := range increments {
		total = total.Add(inc.IncrementAmount)
	}

	return report.IncrementReport{
		Increments:           nonNil(increments),
		TotalIncrementAmount: total,
		Count:                len(increments),
		Filters:              filter,
	}, nil
}

func (s *ReportServiceImpl) AdvanceReport(ctx context.Context, filter report.AdvanceReportFilter) (report.AdvanceReport, error) {
	if err := s.authorize(ctx); err != nil {
		return report.AdvanceReport{}, err
	}

	advances, err := s.reportRepo.Advances(ctx, filter)
	if err != nil {
		return report.AdvanceReport{}, fmt.Errorf("failed to get advance report: %w", err)
	}

	totals := report.AdvanceTotals{
		TotalAmount:    decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	for _, a := range advances {
		totals.TotalAmount = totals.TotalAmount.Add(a.Amount)
		totals.TotalPaid = totals.TotalPaid.Add(a.PaidAmount)
		totals.TotalRemaining = totals.TotalRemaining.Add(a.RemainingAmount)
	}

	return report.AdvanceReport{
		Advances: nonNil(advances),
		Totals:   totals,
		Count:    len(advances),
		Filters:  filter,
	}, nil
}

// EmployeeReport lists employees with a per-department salary breakdown.
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context, filter report.EmployeeReportFilter) (report.EmployeeReport, error) {
	if err := s.authorize(ctx); err != nil {
		return report.EmployeeReport{}, err
	}

	employees, err := s.reportRepo.Employees(ctx, filter)
	if err != nil {
		return report.EmployeeReport{}, fmt.Errorf("failed to get employee report: %w", err)
	}
	breakdown, err := s.reportRepo.DepartmentBreakdown(ctx, filter)
	if err != nil {
		return report.EmployeeReport{}, fmt.Errorf("failed to get department breakdown: %w", err)
	}

	return report.EmployeeReport{
		Employees:  nonNil(employees),
		Summary:    nonNil(breakdown),
		TotalCount: len(employees),
		Filters:    filter,
	}, nil
}

// nonNil keeps empty reports serialising as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
