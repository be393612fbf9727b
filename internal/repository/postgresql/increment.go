package postgresql

import (
	"context"
	"fmt"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const incrementColumns = `
	i.id, i.employee_id, i.effective_date, i.previous_salary, i.new_salary, i.increment_amount,
	i.increment_percentage, i.reason, i.remarks, i.approved_by, i.status, i.created_at, i.updated_at,
	e.employee_id, ` + employeeName

type incrementRepository struct {
	db *database.DB
}

func NewIncrementRepository(db *database.DB) increment.IncrementRepository {
	return &incrementRepository{db: db}
}

func scanIncrement(row rowScanner) (increment.Increment, error) {
	var i increment.Increment
	err := row.Scan(
		&i.ID, &i.EmployeeID, &i.EffectiveDate, &i.PreviousSalary, &i.NewSalary, &i.IncrementAmount,
		&i.IncrementPercentage, &i.Reason, &i.Remarks, &i.ApprovedBy, &i.Status, &i.CreatedAt, &i.UpdatedAt,
		&i.EmployeeCode, &i.EmployeeName,
	)
	return i, err
}

// Create implements increment.IncrementRepository.
func (r *incrementRepository) Create(ctx context.Context, in increment.Increment) (increment.Increment, error) {
	q := GetQuerier(ctx, r.db)
	in = increment.Normalize(in)

	query := `
		WITH i AS (
			INSERT INTO increments (
				employee_id, effective_date, previous_salary, new_salary, increment_amount,
				increment_percentage, reason, remarks, approved_by, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING *
		)
		SELECT` + incrementColumns + `
		FROM i
		JOIN employees e ON e.id = i.employee_id
	`

	created, err := scanIncrement(q.QueryRow(ctx, query,
		in.EmployeeID, in.EffectiveDate, in.PreviousSalary, in.NewSalary, in.IncrementAmount,
		in.IncrementPercentage, in.Reason, in.Remarks, in.ApprovedBy, string(in.Status),
	))
	if err != nil {
		return increment.Increment{}, fmt.Errorf("create increment: %w", err)
	}
	return created, nil
}

// List implements increment.IncrementRepository.
func (r *incrementRepository) List(ctx context.Context, filter increment.IncrementFilter) ([]increment.Increment, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ""
	var args []any
	if filter.EmployeeID != "" {
		whereClause = "WHERE i.employee_id = $1"
		args = append(args, filter.EmployeeID)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM increments i "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count increments: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM increments i
		JOIN employees e ON e.id = i.employee_id
		%s
		ORDER BY i.effective_date DESC, i.created_at DESC
		LIMIT $%d OFFSET $%d`, incrementColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list increments: %w", err)
	}
	defer rows.Close()

	items := make([]increment.Increment, 0, filter.Limit)
	for rows.Next() {
		i, err := scanIncrement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}
	return items, total, rows.Err()
}
