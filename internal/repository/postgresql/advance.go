package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const advanceColumns = `
	a.id, a.employee_id, a.request_date, a.amount, a.reason, a.approval_status, a.approved_by,
	a.approval_date, a.remarks, a.repayment_status, a.repayment_mode, a.installments,
	a.installment_amount, a.paid_amount, a.remaining_amount, a.repayments,
	a.payment_date, a.payment_mode, a.transaction_id, a.created_at, a.updated_at,
	e.employee_id, ` + employeeName

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

func scanAdvance(row rowScanner) (advance.Advance, error) {
	var (
		a          advance.Advance
		repayments []byte
	)
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.RequestDate, &a.Amount, &a.Reason, &a.ApprovalStatus, &a.ApprovedBy,
		&a.ApprovalDate, &a.Remarks, &a.RepaymentStatus, &a.RepaymentMode, &a.Installments,
		&a.InstallmentAmount, &a.PaidAmount, &a.RemainingAmount, &repayments,
		&a.PaymentDate, &a.PaymentMode, &a.TransactionID, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeCode, &a.EmployeeName,
	)
	if err != nil {
		return advance.Advance{}, err
	}
	if err := fromJSON(repayments, &a.Repayments); err != nil {
		return advance.Advance{}, err
	}
	if a.Repayments == nil {
		a.Repayments = []advance.Repayment{}
	}
	return a, nil
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)
	a = advance.Normalize(a)

	repayments, err := toJSON(a.Repayments)
	if err != nil {
		return advance.Advance{}, err
	}

	query := `
		WITH a AS (
			INSERT INTO advances (
				employee_id, request_date, amount, reason, approval_status, approved_by, approval_date,
				remarks, repayment_status, repayment_mode, installments, installment_amount,
				paid_amount, remaining_amount, repayments, payment_date, payment_mode, transaction_id,
				created_at, updated_at
			) VALUES (
				$1, COALESCE($2, NOW()), $3, $4, $5, $6, $7,
				$8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17, $18,
				NOW(), NOW()
			)
			RETURNING *
		)
		SELECT` + advanceColumns + `
		FROM a
		JOIN employees e ON e.id = a.employee_id
	`

	var requestDate any
	if !a.RequestDate.IsZero() {
		requestDate = a.RequestDate
	}

	created, err := scanAdvance(q.QueryRow(ctx, query,
		a.EmployeeID, requestDate, a.Amount, a.Reason, string(a.ApprovalStatus), a.ApprovedBy, a.ApprovalDate,
		a.Remarks, string(a.RepaymentStatus), string(a.RepaymentMode), a.Installments, a.InstallmentAmount,
		a.PaidAmount, a.RemainingAmount, repayments, a.PaymentDate, a.PaymentMode, a.TransactionID,
	))
	if err != nil {
		return advance.Advance{}, fmt.Errorf("create advance: %w", err)
	}
	return created, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	return r.get(ctx, id, "")
}

// GetByIDForUpdate implements advance.AdvanceRepository.
func (r *advanceRepository) GetByIDForUpdate(ctx context.Context, id string) (advance.Advance, error) {
	return r.get(ctx, id, "FOR UPDATE OF a")
}

func (r *advanceRepository) get(ctx context.Context, id, lock string) (advance.Advance, error) {
	if !isRowID(id) {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + advanceColumns + `
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 ` + lock

	a, err := scanAdvance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("get advance %s: %w", id, err)
	}
	return a, nil
}

// Update implements advance.AdvanceRepository. The derived balance columns are
// always rewritten from the normalized repayment ledger.
func (r *advanceRepository) Update(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)
	a = advance.Normalize(a)

	repayments, err := toJSON(a.Repayments)
	if err != nil {
		return advance.Advance{}, err
	}

	query := `
		WITH a AS (
			UPDATE advances SET
				approval_status = $1, approved_by = $2, approval_date = $3, remarks = $4,
				repayment_status = $5, repayment_mode = $6, installments = $7, installment_amount = $8,
				paid_amount = $9, remaining_amount = $10, repayments = $11,
				payment_date = $12, payment_mode = $13, transaction_id = $14, updated_at = NOW()
			WHERE id = $15
			RETURNING *
		)
		SELECT` + advanceColumns + `
		FROM a
		JOIN employees e ON e.id = a.employee_id
	`

	updated, err := scanAdvance(q.QueryRow(ctx, query,
		string(a.ApprovalStatus), a.ApprovedBy, a.ApprovalDate, a.Remarks,
		string(a.RepaymentStatus), string(a.RepaymentMode), a.Installments, a.InstallmentAmount,
		a.PaidAmount, a.RemainingAmount, repayments,
		a.PaymentDate, a.PaymentMode, a.TransactionID, a.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("update advance %s: %w", a.ID, err)
	}
	return updated, nil
}

// List implements advance.AdvanceRepository.
func (r *advanceRepository) List(ctx context.Context, filter advance.AdvanceFilter) ([]advance.Advance, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}
	if filter.ApprovalStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.approval_status = $%d", argIndex))
		args = append(args, filter.ApprovalStatus)
		argIndex++
	}
	if filter.RepaymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.repayment_status = $%d", argIndex))
		args = append(args, filter.RepaymentStatus)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM advances a "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count advances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.request_date DESC
		LIMIT $%d OFFSET $%d`, advanceColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list advances: %w", err)
	}
	defer rows.Close()

	advances := make([]advance.Advance, 0, filter.Limit)
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, 0, err
		}
		advances = append(advances, a)
	}
	return advances, total, rows.Err()
}

// ListDueForSalaryDeduction implements advance.AdvanceRepository. Rows are
// locked until the surrounding transaction ends.
func (r *advanceRepository) ListDueForSalaryDeduction(ctx context.Context, employeeID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + advanceColumns + `
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.approval_status = $2
		  AND a.repayment_mode = $3
		  AND a.repayment_status IN ($4, $5)
		ORDER BY a.request_date ASC
		FOR UPDATE OF a`

	rows, err := q.Query(ctx, query, employeeID,
		string(advance.ApprovalApproved), string(advance.RepaymentModeSalaryDeduction),
		string(advance.RepaymentNotStarted), string(advance.RepaymentInProgress))
	if err != nil {
		return nil, fmt.Errorf("list advances due: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}
