package report

import (
	"context"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
)

// ReportRepository runs the read-only queries behind the reports. Rows come
// back joined with employee names; totals are computed by the service.
type ReportRepository interface {
	Salaries(ctx context.Context, filter SalaryReportFilter) ([]salary.Salary, error)
	AttendanceRows(ctx context.Context, filter AttendanceReportFilter) ([]AttendanceReportRow, error)
	PFESIRows(ctx context.Context, month, year int) ([]PFESIRow, error)
	Incentives(ctx context.Context, filter LedgerFilter) ([]incentive.Incentive, error)
	Deductions(ctx context.Context, filter LedgerFilter) ([]deduction.Deduction, error)
	Increments(ctx context.Context, filter IncrementReportFilter) ([]increment.Increment, error)
	Advances(ctx context.Context, filter AdvanceReportFilter) ([]advance.Advance, error)
	Employees(ctx context.Context, filter EmployeeReportFilter) ([]employee.Employee, error)
	DepartmentBreakdown(ctx context.Context, filter EmployeeReportFilter) ([]DepartmentBreakdown, error)
}
