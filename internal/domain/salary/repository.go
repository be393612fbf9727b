package salary

import (
	"context"
	"time"
)

type SalaryRepository interface {
	// Create inserts the salary unless one exists for the same employee and
	// period, in which case it returns ErrSalaryAlreadyExists.
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string) (Salary, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id string) (Salary, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	List(ctx context.Context, filter SalaryFilter) ([]Salary, int64, error)
	// UpdatePayment writes the payment fields only while the stored status is
	// still from. A row that moved on yields ErrInvalidStatusTransition.
	UpdatePayment(ctx context.Context, s Salary, from PaymentStatus) (Salary, error)
	MarkSynced(ctx context.Context, id string, at time.Time) error
}
