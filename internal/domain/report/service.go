package report

import (
	"context"
	"errors"
)

var ErrUnauthorized = errors.New("reports are restricted to admin and hr users")

type ReportService interface {
	SalaryReport(ctx context.Context, filter SalaryReportFilter) (SalaryReport, error)
	AttendanceReport(ctx context.Context, filter AttendanceReportFilter) (AttendanceReport, error)
	PFESIReport(ctx context.Context, filter PeriodFilter) (PFESIReport, error)
	IncentiveReport(ctx context.Context, filter LedgerFilter) (IncentiveReport, error)
	DeductionReport(ctx context.Context, filter LedgerFilter) (DeductionReport, error)
	IncrementReport(ctx context.Context, filter IncrementReportFilter) (IncrementReport, error)
	AdvanceReport(ctx context.Context, filter AdvanceReportFilter) (AdvanceReport, error)
	EmployeeReport(ctx context.Context, filter EmployeeReportFilter) (EmployeeReport, error)
}
