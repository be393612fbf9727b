package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const incentiveColumns = `
	i.id, i.employee_id, i.month, i.year, i.amount, i.type, i.description, i.remarks,
	i.added_by, i.approved_by, i.status, i.paid_in_salary, i.created_at, i.updated_at,
	e.employee_id, ` + employeeName

type incentiveRepository struct {
	db *database.DB
}

func NewIncentiveRepository(db *database.DB) incentive.IncentiveRepository {
	return &incentiveRepository{db: db}
}

func scanIncentive(row rowScanner) (incentive.Incentive, error) {
	var i incentive.Incentive
	err := row.Scan(
		&i.ID, &i.EmployeeID, &i.Month, &i.Year, &i.Amount, &i.Type, &i.Description, &i.Remarks,
		&i.AddedBy, &i.ApprovedBy, &i.Status, &i.PaidInSalary, &i.CreatedAt, &i.UpdatedAt,
		&i.EmployeeCode, &i.EmployeeName,
	)
	return i, err
}

// Create implements incentive.IncentiveRepository.
func (r *incentiveRepository) Create(ctx context.Context, in incentive.Incentive) (incentive.Incentive, error) {
	q := GetQuerier(ctx, r.db)
	in = incentive.Normalize(in)

	query := `
		WITH i AS (
			INSERT INTO incentives (
				employee_id, month, year, amount, type, description, remarks,
				added_by, approved_by, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING *
		)
		SELECT` + incentiveColumns + `
		FROM i
		JOIN employees e ON e.id = i.employee_id
	`

	created, err := scanIncentive(q.QueryRow(ctx, query,
		in.EmployeeID, in.Month, in.Year, in.Amount, in.Type, in.Description, in.Remarks,
		in.AddedBy, in.ApprovedBy, string(in.Status),
	))
	if err != nil {
		return incentive.Incentive{}, fmt.Errorf("create incentive: %w", err)
	}
	return created, nil
}

// List implements incentive.IncentiveRepository.
func (r *incentiveRepository) List(ctx context.Context, filter incentive.IncentiveFilter) ([]incentive.Incentive, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("i.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.Month != 0 {
		conditions = append(conditions, fmt.Sprintf("i.month = $%d", argIndex))
		args = append(args, filter.Month)
		argIndex++
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("i.year = $%d", argIndex))
		args = append(args, filter.Year)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM incentives i "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count incentives: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM incentives i
		JOIN employees e ON e.id = i.employee_id
		%s
		ORDER BY i.year DESC, i.month DESC, i.created_at DESC
		LIMIT $%d OFFSET $%d`, incentiveColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list incentives: %w", err)
	}
	defer rows.Close()

	items := make([]incentive.Incentive, 0, filter.Limit)
	for rows.Next() {
		i, err := scanIncentive(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}

// ListApprovedForPeriod implements incentive.IncentiveRepository.
func (r *incentiveRepository) ListApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]incentive.Incentive, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + incentiveColumns + `
		FROM incentives i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.employee_id = $1 AND i.month = $2 AND i.year = $3 AND i.status = $4
		ORDER BY i.created_at
		FOR UPDATE OF i`

	rows, err := q.Query(ctx, query, employeeID, month, year, string(incentive.StatusApproved))
	if err != nil {
		return nil, fmt.Errorf("list approved incentives: %w", err)
	}
	defer rows.Close()

	var items []incentive.Incentive
	for rows.Next() {
		i, err := scanIncentive(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// MarkPaid implements incentive.IncentiveRepository.
func (r *incentiveRepository) MarkPaid(ctx context.Context, ids []string, salaryID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE incentives
		SET status = $1, paid_in_salary = $2, updated_at = NOW()
		WHERE id = ANY($3::uuid[]) AND status = $4
	`

	tag, err := q.Exec(ctx, query, string(incentive.StatusPaid), salaryID, ids, string(incentive.StatusApproved))
	if err != nil {
		return fmt.Errorf("mark incentives paid: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("mark incentives paid: %d of %d rows updated", tag.RowsAffected(), len(ids))
	}
	return nil
}
