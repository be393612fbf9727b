package deduction

import "context"

type DeductionRepository interface {
	Create(ctx context.Context, d Deduction) (Deduction, error)
	List(ctx context.Context, filter DeductionFilter) ([]Deduction, int64, error)
	// ListApprovedForPeriod locks and returns the approved deductions of the period
	ListApprovedForPeriod(ctx context.Context, employeeID string, month, year int) ([]Deduction, error)
	// MarkDeducted moves approved deductions to Deducted and links them to the salary
	MarkDeducted(ctx context.Context, ids []string, salaryID string) error
}

type DeductionService interface {
	AddDeduction(ctx context.Context, req CreateDeductionRequest) (Deduction, error)
	ListDeductions(ctx context.Context, filter DeductionFilter) ([]Deduction, int64, error)
}
