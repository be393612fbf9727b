package advance

import "context"

type AdvanceRepository interface {
	Create(ctx context.Context, a Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	// GetByIDForUpdate locks the advance until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id string) (Advance, error)
	// Update persists the advance after normalising it
	Update(ctx context.Context, a Advance) (Advance, error)
	List(ctx context.Context, filter AdvanceFilter) ([]Advance, int64, error)
	// ListDueForSalaryDeduction locks and returns the employee's advances that
	// are still being recovered through salary
	ListDueForSalaryDeduction(ctx context.Context, employeeID string) ([]Advance, error)
}
