package postgresql

import (
	"context"
	"fmt"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/report"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// collect runs query and scans every row with scan.
func collect[T any](ctx context.Context, q database.Querier, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Salaries returns the period's salaries ordered by employee code
func (r *reportRepositoryImpl) Salaries(ctx context.Context, filter report.SalaryReportFilter) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	f.add("s.month = $%d", filter.Month)
	f.add("s.year = $%d", filter.Year)
	if filter.Department != "" {
		f.add("e.department = $%d", filter.Department)
	}
	if filter.PaymentStatus != "" {
		f.add("s.payment_status = $%d", filter.PaymentStatus)
	}

	query := `SELECT` + salaryColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		` + f.where() + `
		ORDER BY e.employee_id`

	salaries, err := collect(ctx, q, scanSalary, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get salary report: %w", err)
	}
	return salaries, nil
}

// AttendanceRows counts each active employee's attendance in [From, To]
func (r *reportRepositoryImpl) AttendanceRows(ctx context.Context, filter report.AttendanceReportFilter) ([]report.AttendanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	f := sqlFilter{args: []any{
		filter.From, filter.To,
		string(attendance.StatusPresent), string(attendance.StatusAbsent), string(attendance.StatusHalfDay),
		string(attendance.StatusLeave), string(attendance.StatusHoliday),
	}}
	f.add("e.status = $%d", string(employee.StatusActive))
	if filter.Department != "" {
		f.add("e.department = $%d", filter.Department)
	}
	if filter.EmployeeID != "" {
		f.add("e.employee_id = $%d", filter.EmployeeID)
	}

	query := `
		SELECT
			e.employee_id, ` + employeeName + `, e.department, e.designation,
			COUNT(a.id) FILTER (WHERE a.status = $3),
			COUNT(a.id) FILTER (WHERE a.status = $4),
			COUNT(a.id) FILTER (WHERE a.status = $5),
			COUNT(a.id) FILTER (WHERE a.status = $6),
			COUNT(a.id) FILTER (WHERE a.status = $7),
			COALESCE(SUM(a.working_hours), 0)
		FROM employees e
		LEFT JOIN attendances a ON a.employee_id = e.id AND a.date >= $1 AND a.date <= $2
		` + f.where() + `
		GROUP BY e.id
		ORDER BY e.employee_id`

	scan := func(row rowScanner) (report.AttendanceReportRow, error) {
		var rr report.AttendanceReportRow
		err := row.Scan(
			&rr.Employee.ID, &rr.Employee.Name, &rr.Employee.Department, &rr.Employee.Designation,
			&rr.Present, &rr.Absent, &rr.HalfDay, &rr.Leave, &rr.Holiday, &rr.TotalWorkingHours,
		)
		return rr, err
	}

	rows, err := collect(ctx, q, scan, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance report: %w", err)
	}
	return rows, nil
}

// PFESIRows returns the statutory columns of the period's salaries. The
// employer PF column is left for the caller to fill from policy.
func (r *reportRepositoryImpl) PFESIRows(ctx context.Context, month, year int) ([]report.PFESIRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_id, ` + employeeName + `, e.pf_number, e.esi_number, e.uan_number,
			s.basic_salary, s.hra, s.provident_fund, s.esi, s.gross_salary
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.month = $1 AND s.year = $2
		ORDER BY e.employee_id`

	scan := func(row rowScanner) (report.PFESIRow, error) {
		var p report.PFESIRow
		err := row.Scan(
			&p.EmployeeID, &p.Name, &p.PFNumber, &p.ESINumber, &p.UANNumber,
			&p.BasicSalary, &p.HRA, &p.PFEmployee, &p.ESI, &p.GrossSalary,
		)
		return p, err
	}

	rows, err := collect(ctx, q, scan, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get pf/esi report: %w", err)
	}
	return rows, nil
}

func ledgerFilter(alias string, filter report.LedgerFilter) sqlFilter {
	var f sqlFilter
	if filter.Month != 0 {
		f.add(alias+".month = $%d", filter.Month)
	}
	if filter.Year != 0 {
		f.add(alias+".year = $%d", filter.Year)
	}
	if filter.Type != "" {
		f.add(alias+".type = $%d", filter.Type)
	}
	if filter.Status != "" {
		f.add(alias+".status = $%d", filter.Status)
	}
	return f
}

// Incentives lists incentives matching the filter, newest period first
func (r *reportRepositoryImpl) Incentives(ctx context.Context, filter report.LedgerFilter) ([]incentive.Incentive, error) {
	q := GetQuerier(ctx, r.db)
	f := ledgerFilter("i", filter)

	query := `SELECT` + incentiveColumns + `
		FROM incentives i
		JOIN employees e ON e.id = i.employee_id
		` + f.where() + `
		ORDER BY i.year DESC, i.month DESC, e.employee_id`

	items, err := collect(ctx, q, scanIncentive, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get incentive report: %w", err)
	}
	return items, nil
}

// Deductions lists deductions matching the filter, newest period first
func (r *reportRepositoryImpl) Deductions(ctx context.Context, filter report.LedgerFilter) ([]deduction.Deduction, error) {
	q := GetQuerier(ctx, r.db)
	f := ledgerFilter("d", filter)

	query := `SELECT` + deductionColumns + `
		FROM deductions d
		JOIN employees e ON e.id = d.employee_id
		` + f.where() + `
		ORDER BY d.year DESC, d.month DESC, e.employee_id`

	items, err := collect(ctx, q, scanDeduction, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get deduction report: %w", err)
	}
	return items, nil
}

// Increments lists increments by effective date
func (r *reportRepositoryImpl) Increments(ctx context.Context, filter report.IncrementReportFilter) ([]increment.Increment, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	if filter.Year != 0 {
		f.add("EXTRACT(YEAR FROM i.effective_date) = $%d", filter.Year)
	}
	if filter.Reason != "" {
		f.add("i.reason = $%d", filter.Reason)
	}
	if filter.EmployeeID != "" {
		f.add("e.employee_id = $%d", filter.EmployeeID)
	}

	query := `SELECT` + incrementColumns + `
		FROM increments i
		JOIN employees e ON e.id = i.employee_id
		` + f.where() + `
		ORDER BY i.effective_date DESC`

	items, err := collect(ctx, q, scanIncrement, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get increment report: %w", err)
	}
	return items, nil
}

// Advances lists advances by request date
func (r *reportRepositoryImpl) Advances(ctx context.Context, filter report.AdvanceReportFilter) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	if filter.Status != "" {
		f.add("a.approval_status = $%d", filter.Status)
	}
	if filter.RepaymentStatus != "" {
		f.add("a.repayment_status = $%d", filter.RepaymentStatus)
	}
	if filter.EmployeeID != "" {
		f.add("e.employee_id = $%d", filter.EmployeeID)
	}

	query := `SELECT` + advanceColumns + `
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		` + f.where() + `
		ORDER BY a.request_date DESC`

	items, err := collect(ctx, q, scanAdvance, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get advance report: %w", err)
	}
	return items, nil
}

func employeeReportFilter(filter report.EmployeeReportFilter) sqlFilter {
	var f sqlFilter
	if filter.Department != "" {
		f.add("e.department = $%d", filter.Department)
	}
	if filter.Status != "" {
		f.add("e.status = $%d", filter.Status)
	}
	if filter.SalaryType != "" {
		f.add("e.salary_type = $%d", filter.SalaryType)
	}
	return f
}

// Employees lists employees matching the filter by employee code
func (r *reportRepositoryImpl) Employees(ctx context.Context, filter report.EmployeeReportFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	f := employeeReportFilter(filter)

	query := `SELECT` + employeeColumns + `
		FROM employees e
		` + f.where() + `
		ORDER BY e.employee_id`

	items, err := collect(ctx, q, scanEmployee, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee report: %w", err)
	}
	return items, nil
}

// DepartmentBreakdown groups the filtered employees by department
func (r *reportRepositoryImpl) DepartmentBreakdown(ctx context.Context, filter report.EmployeeReportFilter) ([]report.DepartmentBreakdown, error) {
	q := GetQuerier(ctx, r.db)
	f := employeeReportFilter(filter)

	query := `
		SELECT e.department, COUNT(*), ROUND(AVG(e.basic_salary), 2), COALESCE(SUM(e.basic_salary), 0)
		FROM employees e
		` + f.where() + `
		GROUP BY e.department
		ORDER BY e.department`

	scan := func(row rowScanner) (report.DepartmentBreakdown, error) {
		var d report.DepartmentBreakdown
		err := row.Scan(&d.Department, &d.Count, &d.AvgSalary, &d.TotalSalary)
		return d, err
	}

	items, err := collect(ctx, q, scan, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get department breakdown: %w", err)
	}
	return items, nil
}
