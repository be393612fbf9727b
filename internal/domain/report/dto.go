package report

import (
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SALARY REPORT
// ========================================

type SalaryReportFilter struct {
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	Department    string `json:"department,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

func (f *SalaryReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required and must be between 1 and 12"})
	}
	if !validator.IsValidYear(f.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required"})
	}
	if f.PaymentStatus != "" && !validator.IsInSlice(f.PaymentStatus, salary.PaymentStatuses) {
		errs = append(errs, validator.ValidationError{Field: "paymentStatus", Message: "invalid paymentStatus"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryTotals struct {
	Count            int             `json:"count"`
	TotalGrossSalary decimal.Decimal `json:"totalGrossSalary"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	TotalNetSalary   decimal.Decimal `json:"totalNetSalary"`
	TotalIncentives  decimal.Decimal `json:"totalIncentives"`
	TotalAdvances    decimal.Decimal `json:"totalAdvances"`
}

type SalaryReport struct {
	Salaries []salary.Salary    `json:"salaries"`
	Totals   SalaryTotals       `json:"totals"`
	Filters  SalaryReportFilter `json:"filters"`
}

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReportFilter struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Department string `json:"department,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (f *AttendanceReportFilter) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(f.StartDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate is required in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(f.EndDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate is required in YYYY-MM-DD format"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must not be before startDate"})
	}

	if len(errs) > 0 {
		return errs
	}

	f.From, f.To = from, to
	return nil
}

type ReportEmployee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

type AttendanceReportRow struct {
	Employee          ReportEmployee `json:"employee"`
	Present           int            `json:"present"`
	Absent            int            `json:"absent"`
	HalfDay           int            `json:"halfDay"`
	Leave             int            `json:"leave"`
	Holiday           int            `json:"holiday"`
	TotalWorkingHours float64        `json:"totalWorkingHours"`
}

type AttendanceReport struct {
	Report  []AttendanceReportRow  `json:"report"`
	Filters AttendanceReportFilter `json:"filters"`
}

// ========================================
// PF / ESI REPORT
// ========================================

type PeriodFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *PeriodFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required and must be between 1 and 12"})
	}
	if !validator.IsValidYear(f.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PFESIRow struct {
	EmployeeID  string          `json:"employeeId"`
	Name        string          `json:"name"`
	PFNumber    string          `json:"pfNumber,omitempty"`
	ESINumber   string          `json:"esiNumber,omitempty"`
	UANNumber   string          `json:"uanNumber,omitempty"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	HRA         decimal.Decimal `json:"hra"`
	PFEmployee  decimal.Decimal `json:"pfEmployee"`
	PFEmployer  decimal.Decimal `json:"pfEmployer"`
	ESI         decimal.Decimal `json:"esi"`
	GrossSalary decimal.Decimal `json:"grossSalary"`
}

type PFESITotals struct {
	TotalPFEmployee decimal.Decimal `json:"totalPFEmployee"`
	TotalPFEmployer decimal.Decimal `json:"totalPFEmployer"`
	TotalESI        decimal.Decimal `json:"totalESI"`
}

type PFESIReport struct {
	Report  []PFESIRow   `json:"report"`
	Totals  PFESITotals  `json:"totals"`
	Filters PeriodFilter `json:"filters"`
}

// ========================================
// LEDGER REPORTS
// ========================================

type LedgerFilter struct {
	Month  int    `json:"month,omitempty"`
	Year   int    `json:"year,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
}

type IncentiveReport struct {
	Incentives  []incentive.Incentive `json:"incentives"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	Count       int                   `json:"count"`
	Filters     LedgerFilter          `json:"filters"`
}

type DeductionReport struct {
	Deductions  []deduction.Deduction `json:"deductions"`
	TotalAmount decimal.Decimal       `json:"totalAmount"`
	Count       int                   `json:"count"`
	Filters     LedgerFilter          `json:"filters"`
}

type IncrementReportFilter struct {
	Year       int    `json:"year,omitempty"`
	Reason     string `json:"reason,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
}

type IncrementReport struct {
	Increments           []increment.Increment `json:"increments"`
	TotalIncrementAmount decimal.Decimal       `json:"totalIncrementAmount"`
	Count                int                   `json:"count"`
	Filters              IncrementReportFilter `json:"filters"`
}

type AdvanceReportFilter struct {
	Status          string `json:"status,omitempty"`
	RepaymentStatus string `json:"repaymentStatus,omitempty"`
	EmployeeID      string `json:"employeeId,omitempty"`
}

type AdvanceTotals struct {
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
}

type AdvanceReport struct {
	Advances []advance.Advance   `json:"advances"`
	Totals   AdvanceTotals       `json:"totals"`
	Count    int                 `json:"count"`
	Filters  AdvanceReportFilter `json:"filters"`
}

// ========================================
// EMPLOYEE REPORT
// ========================================

type EmployeeReportFilter struct {
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
	SalaryType string `json:"salaryType,omitempty"`
}

type DepartmentBreakdown struct {
	Department  string          `json:"department"`
	Count       int64           `json:"count"`
	AvgSalary   decimal.Decimal `json:"avgSalary"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
}

type EmployeeReport struct {
	Employees  []employee.Employee   `json:"employees"`
	Summary    []DepartmentBreakdown `json:"summary"`
	TotalCount int                   `json:"totalCount"`
	Filters    EmployeeReportFilter  `json:"filters"`
}
