package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const constraintSalaryPeriod = "uk_salary_employee_period"

const salaryColumns = `
	s.id, s.employee_id, s.month, s.year,
	s.basic_salary, s.hra, s.other_allowances, s.overtime_hours, s.overtime_amount,
	s.night_duty_allowance, s.total_incentives,
	s.provident_fund, s.esi, s.professional_tax, s.tds, s.total_advances, s.total_deductions,
	s.gross_salary, s.total_deductions_amount, s.net_salary,
	s.attendance_summary, s.incentive_ids, s.deduction_ids, s.advance_ids,
	s.payment_status, s.payment_date, s.payment_mode, s.transaction_id,
	s.synced_to_sheets, s.sheets_sync_date, s.remarks, s.generated_by, s.approved_by,
	s.created_at, s.updated_at,
	e.employee_id, ` + employeeName + `, e.department, e.designation`

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

func scanSalary(row rowScanner) (salary.Salary, error) {
	var (
		s       salary.Salary
		summary []byte
	)
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Year,
		&s.BasicSalary, &s.HRA, &s.OtherAllowances, &s.OvertimeHours, &s.OvertimeAmount,
		&s.NightDutyAllowance, &s.TotalIncentives,
		&s.ProvidentFund, &s.ESI, &s.ProfessionalTax, &s.TDS, &s.TotalAdvances, &s.TotalDeductions,
		&s.GrossSalary, &s.TotalDeductionsAmount, &s.NetSalary,
		&summary, &s.IncentiveIDs, &s.DeductionIDs, &s.AdvanceIDs,
		&s.PaymentStatus, &s.PaymentDate, &s.PaymentMode, &s.TransactionID,
		&s.SyncedToSheets, &s.SheetsSyncDate, &s.Remarks, &s.GeneratedBy, &s.ApprovedBy,
		&s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeCode, &s.EmployeeName, &s.Department, &s.Designation,
	)
	if err != nil {
		return salary.Salary{}, err
	}
	if err := fromJSON(summary, &s.AttendanceSummary); err != nil {
		return salary.Salary{}, err
	}
	return s, nil
}

// Create implements salary.SalaryRepository. The (employee, month, year)
// constraint decides whether the row is inserted; totals are recomputed first.
func (r *salaryRepository) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)
	s = salary.Normalize(s)

	summary, err := toJSON(s.AttendanceSummary)
	if err != nil {
		return salary.Salary{}, err
	}

	query := `
		WITH s AS (
			INSERT INTO salaries (
				employee_id, month, year,
				basic_salary, hra, other_allowances, overtime_hours, overtime_amount,
				night_duty_allowance, total_incentives,
				provident_fund, esi, professional_tax, tds, total_advances, total_deductions,
				gross_salary, total_deductions_amount, net_salary,
				attendance_summary, incentive_ids, deduction_ids, advance_ids,
				payment_status, remarks, generated_by, created_at, updated_at
			) VALUES (
				$1, $2, $3,
				$4, $5, $6, $7, $8,
				$9, $10,
				$11, $12, $13, $14, $15, $16,
				$17, $18, $19,
				$20, $21, $22, $23,
				$24, $25, $26, NOW(), NOW()
			)
			ON CONFLICT ON CONSTRAINT ` + constraintSalaryPeriod + ` DO NOTHING
			RETURNING *
		)
		SELECT` + salaryColumns + `
		FROM s
		JOIN employees e ON e.id = s.employee_id
	`

	created, err := scanSalary(q.QueryRow(ctx, query,
		s.EmployeeID, s.Month, s.Year,
		s.BasicSalary, s.HRA, s.OtherAllowances, s.OvertimeHours, s.OvertimeAmount,
		s.NightDutyAllowance, s.TotalIncentives,
		s.ProvidentFund, s.ESI, s.ProfessionalTax, s.TDS, s.TotalAdvances, s.TotalDeductions,
		s.GrossSalary, s.TotalDeductionsAmount, s.NetSalary,
		summary, s.IncentiveIDs, s.DeductionIDs, s.AdvanceIDs,
		string(s.PaymentStatus), s.Remarks, s.GeneratedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryAlreadyExists
		}
		return salary.Salary{}, fmt.Errorf("create salary: %w", err)
	}
	return created, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	return r.get(ctx, id, "")
}

// GetByIDForUpdate implements salary.SalaryRepository.
func (r *salaryRepository) GetByIDForUpdate(ctx context.Context, id string) (salary.Salary, error) {
	return r.get(ctx, id, "FOR UPDATE OF s")
}

func (r *salaryRepository) get(ctx context.Context, id, lock string) (salary.Salary, error) {
	if !isRowID(id) {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + salaryColumns + `
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1 ` + lock

	s, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("get salary %s: %w", id, err)
	}
	return s, nil
}

// ExistsForPeriod implements salary.SalaryRepository.
func (r *salaryRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM salaries WHERE employee_id = $1 AND month = $2 AND year = $3)`,
		employeeID, month, year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check salary period: %w", err)
	}
	return exists, nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepository) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.Month != 0 {
		conditions = append(conditions, fmt.Sprintf("s.month = $%d", argIndex))
		args = append(args, filter.Month)
		argIndex++
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("s.year = $%d", argIndex))
		args = append(args, filter.Year)
		argIndex++
	}
	if filter.PaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("s.payment_status = $%d", argIndex))
		args = append(args, filter.PaymentStatus)
		argIndex++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIndex))
		args = append(args, filter.Department)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM salaries s JOIN employees e ON e.id = s.employee_id " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count salaries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		%s
		ORDER BY s.year DESC, s.month DESC, e.employee_id
		LIMIT $%d OFFSET $%d`, salaryColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list salaries: %w", err)
	}
	defer rows.Close()

	salaries := make([]salary.Salary, 0, filter.Limit)
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, 0, err
		}
		salaries = append(salaries, s)
	}
	return salaries, total, rows.Err()
}

// UpdatePayment implements salary.SalaryRepository. Only the payment fields
// and remarks are written; the amounts are immutable.
func (r *salaryRepository) UpdatePayment(ctx context.Context, s salary.Salary, from salary.PaymentStatus) (salary.Salary, error) {
	if !isRowID(s.ID) {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	q := GetQuerier(ctx, r.db)
	s = salary.Normalize(s)

	query := `
		WITH s AS (
			UPDATE salaries SET
				payment_status = $1, payment_date = $2, payment_mode = $3, transaction_id = $4,
				remarks = $5, approved_by = $6, updated_at = NOW()
			WHERE id = $7 AND payment_status = $8
			RETURNING *
		)
		SELECT` + salaryColumns + `
		FROM s
		JOIN employees e ON e.id = s.employee_id
	`

	updated, err := scanSalary(q.QueryRow(ctx, query,
		string(s.PaymentStatus), s.PaymentDate, s.PaymentMode, s.TransactionID,
		s.Remarks, s.ApprovedBy, s.ID, string(from),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, fmt.Errorf("%w: salary is no longer %s", salary.ErrInvalidStatusTransition, from)
		}
		return salary.Salary{}, fmt.Errorf("update salary payment: %w", err)
	}
	return updated, nil
}

// MarkSynced implements salary.SalaryRepository.
func (r *salaryRepository) MarkSynced(ctx context.Context, id string, at time.Time) error {
	if !isRowID(id) {
		return salary.ErrSalaryNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE salaries SET synced_to_sheets = TRUE, sheets_sync_date = $1, updated_at = NOW() WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("mark salary synced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}
	return nil
}
