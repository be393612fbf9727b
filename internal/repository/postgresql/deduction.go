package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const deductionColumns = `
	d.id, d.employee_id, d.month, d.year, d.amount, d.type, d.reason, d.remarks,
	d.added_by, d.approved_by, d.status, d.deducted_in_salary, d.created_at, d.updated_at,
	e.employee_id, ` + employeeName

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.DeductionRepository {
	return &deductionRepository{db: db}
}

func scanDeduction(row rowScanner) (deduction.Deduction, error) {
	var d deduction.Deduction
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.Month, &d.Year, &d.Amount, &d.Type, &d.Reason, &d.Remarks,
		&d.AddedBy, &d.ApprovedBy, &d.Status, &d.DeductedInSalary, &d.CreatedAt, &d.UpdatedAt,
		&d.EmployeeCode, &d.EmployeeName,
	)
	return d, err
}

// Create implements deduction.DeductionRepository.
func (r *deductionRepository) Create(ctx context.Context, d deduction.Deduction) (deduction.Deduction, error) {
	q := GetQuerier(ctx, r.db)
	d = deduction.Normalize(d)

	query := `
		WITH d AS (
			INSERT INTO deductions (
				employee_id, month, year, amount, type, reason, remarks,
				added_by, approved_by, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING *
		)
		SELECT` + deductionColumns + `
		FROM d
		JOIN employees e ON e.id = d.employee_id
	`

	created, err := scanDeduction(q.QueryRow(ctx, query,
		d.EmployeeID, d.Month, d.Year, d.Amount, d.Type, d.Reason, d.Remarks,
		d.AddedBy, d.ApprovedBy, string(d.Status),
	))
	if err != nil {
		return deduction.Deduction{}, fmt.Errorf("create deduction: %w", err)
	}
	return created, nil
}

// List implements deduction.DeductionRepository.
func (r *deductionRepository) List(ctx context.Context, filter deduction.DeductionFilter) ([]deduction.Deduction, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("d.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.Month != 0 {
		conditions = append(conditions, fmt.Sprintf("d.month = $%d", argIndex))
		args = append(args, filter.Month)
		argIndex++
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("d.year = $%d", argIndex))
		args = append(args, filter.Year)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM deductions d "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deductions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM deductions d
		JOIN employees e ON e.id = d.employee_id
		%s
		ORDER BY d.year DESC, d.month DESC, d.created_at DESC
		LIMIT $%d OFFSET $%d`, deductionColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deductions: %w", err)
	}
	defer rows.Close()

	items := make([]deduction.Deduction, 0, filter.Limit)
	for rows.Next() {
		d, err := scanDeduction(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// ListApprovedForPeriod implements deduction.DeductionRepository.
func (r *deductionRepository) ListApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]deduction.Deduction, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + deductionColumns + `
		FROM deductions d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1 AND d.month = $2 AND d.year = $3 AND d.status = $4
		ORDER BY d.created_at
		FOR UPDATE OF d`

	rows, err := q.Query(ctx, query, employeeID, month, year, string(deduction.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("list approved deductions: %w", err)
	}
	defer rows.Close()

	var items []deduction.Deduction
	for rows.Next() {
		d, err := scanDeduction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// MarkDeducted implements deduction.DeductionRepository.
func (r *deductionRepository) MarkDeducted(ctx context.Context, ids []string, salaryID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE deductions
		SET status = $1, deducted_in_salary = $2, updated_at = NOW()
		WHERE id = ANY($3::uuid[]) AND status = $4
	`

	tag, err := q.Exec(ctx, query, string(deduction.StatusDeducted), salaryID, ids, string(deduction.StatusApproved))
	if err != nil {
		return fmt.Errorf("mark deductions deducted: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("mark deductions deducted: %d of %d rows updated", tag.RowsAffected(), len(ids))
	}
	return nil
}
