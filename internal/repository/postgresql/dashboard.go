package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// Metrics returns the headline counters in a single round trip
func (r *dashboardRepositoryImpl) Metrics(ctx context.Context, today time.Time) (dashboard.Metrics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE status = $1),
			(SELECT COUNT(*) FROM attendances WHERE date = $2 AND status = $3),
			(SELECT COUNT(*) FROM attendances WHERE date = $2 AND status = $4),
			(SELECT COUNT(*) FROM employees WHERE status = $1 AND profile_complete = FALSE),
			(SELECT COUNT(*) FROM salaries WHERE month = $5 AND year = $6 AND payment_status = $7),
			(SELECT COUNT(*) FROM advances WHERE approval_status = $8),
			(SELECT COUNT(*) FROM employees WHERE created_at >= $9)
	`

	var m dashboard.Metrics
	err := q.QueryRow(ctx, query,
		string(employee.StatusActive), today,
		string(attendance.StatusPresent), string(attendance.StatusAbsent),
		int(today.Month()), today.Year(), string(salary.PaymentStatusPending),
		string(advance.ApprovalPending),
		today.AddDate(0, 0, -7),
	).Scan(
		&m.TotalEmployees, &m.PresentToday, &m.AbsentToday, &m.IncompleteProfiles,
		&m.PendingSalary, &m.PendingAdvances, &m.NewEmployees,
	)
	if err != nil {
		return dashboard.Metrics{}, fmt.Errorf("failed to get dashboard metrics: %w", err)
	}
	return m, nil
}

// MonthlySummary groups the month's attendance and salaries by status
func (r *dashboardRepositoryImpl) MonthlySummary(ctx context.Context, month, year int) (dashboard.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)
	start, end := attendance.MonthRange(month, year)

	summary := dashboard.MonthlySummary{
		Month:      month,
		Year:       year,
		Attendance: []dashboard.StatusCount{},
		Salary:     []dashboard.SalaryStatusSummary{},
	}

	rows, err := q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE date >= $1 AND date < $2
		GROUP BY status
		ORDER BY status`, start, end)
	if err != nil {
		return dashboard.MonthlySummary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}
	for rows.Next() {
		var c dashboard.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			rows.Close()
			return dashboard.MonthlySummary{}, err
		}
		summary.Attendance = append(summary.Attendance, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dashboard.MonthlySummary{}, err
	}

	rows, err = q.Query(ctx, `
		SELECT payment_status, COUNT(*), COALESCE(SUM(net_salary), 0)
		FROM salaries
		WHERE month = $1 AND year = $2
		GROUP BY payment_status
		ORDER BY payment_status`, month, year)
	if err != nil {
		return dashboard.MonthlySummary{}, fmt.Errorf("failed to get salary summary: %w", err)
	}
	for rows.Next() {
		var s dashboard.SalaryStatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalAmount); err != nil {
			rows.Close()
			return dashboard.MonthlySummary{}, err
		}
		summary.Salary = append(summary.Salary, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dashboard.MonthlySummary{}, err
	}

	err = q.QueryRow(ctx, `
		SELECT COALESCE(SUM(gross_salary), 0), COALESCE(SUM(total_deductions_amount), 0), COALESCE(SUM(net_salary), 0)
		FROM salaries
		WHERE month = $1 AND year = $2`, month, year).Scan(
		&summary.Payroll.TotalGross, &summary.Payroll.TotalDeductions, &summary.Payroll.TotalNet,
	)
	if err != nil {
		return dashboard.MonthlySummary{}, fmt.Errorf("failed to get payroll totals: %w", err)
	}
	return summary, nil
}

// DepartmentSummary aggregates active employees and their basic salaries per department
func (r *dashboardRepositoryImpl) DepartmentSummary(ctx context.Context) ([]dashboard.DepartmentSummary, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT department, COUNT(*), ROUND(AVG(basic_salary), 2), COALESCE(SUM(basic_salary), 0)
		FROM employees
		WHERE status = $1
		GROUP BY department
		ORDER BY department`, string(employee.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to get department summary: %w", err)
	}
	defer rows.Close()

	result := []dashboard.DepartmentSummary{}
	for rows.Next() {
		var d dashboard.DepartmentSummary
		if err := rows.Scan(&d.Department, &d.TotalEmployees, &d.AvgSalary, &d.TotalSalary); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// AttendanceTrend counts records per day and status since the given date
func (r *dashboardRepositoryImpl) AttendanceTrend(ctx context.Context, since time.Time) ([]dashboard.TrendPoint, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD'), status, COUNT(*)
		FROM attendances
		WHERE date >= $1
		GROUP BY date, status
		ORDER BY date, status`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance trend: %w", err)
	}
	defer rows.Close()

	points := []dashboard.TrendPoint{}
	for rows.Next() {
		var p dashboard.TrendPoint
		if err := rows.Scan(&p.Date, &p.Status, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Birthdays lists active employees born in the given month, by day of month
func (r *dashboardRepositoryImpl) Birthdays(ctx context.Context, month, limit int) ([]dashboard.Birthday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id, first_name, last_name, date_of_birth
		FROM employees
		WHERE status = $1 AND date_of_birth IS NOT NULL AND EXTRACT(MONTH FROM date_of_birth) = $2
		ORDER BY EXTRACT(DAY FROM date_of_birth)
		LIMIT $3`, string(employee.StatusActive), month, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get birthdays: %w", err)
	}
	defer rows.Close()

	birthdays := []dashboard.Birthday{}
	for rows.Next() {
		var b dashboard.Birthday
		if err := rows.Scan(&b.EmployeeID, &b.FirstName, &b.LastName, &b.DateOfBirth); err != nil {
			return nil, err
		}
		birthdays = append(birthdays, b)
	}
	return birthdays, rows.Err()
}

// PendingApprovals counts the items waiting on an admin
func (r *dashboardRepositoryImpl) PendingApprovals(ctx context.Context) (dashboard.PendingApprovals, error) {
	q := GetQuerier(ctx, r.db)

	var p dashboard.PendingApprovals
	err := q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM advances WHERE approval_status = $1),
			(SELECT COUNT(*) FROM employees WHERE status = $2 AND profile_complete = FALSE)`,
		string(advance.ApprovalPending), string(employee.StatusActive),
	).Scan(&p.Advances, &p.IncompleteProfiles)
	if err != nil {
		return dashboard.PendingApprovals{}, fmt.Errorf("failed to get pending approvals: %w", err)
	}
	return p, nil
}
