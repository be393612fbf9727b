package increment

import (
	"context"
	"errors"
)

var (
	ErrIncrementNotFound = errors.New("increment not found")
	ErrSameSalary        = errors.New("new salary equals the current basic salary")
	ErrUnauthorized      = errors.New("unauthorized to access these increments")
)

type IncrementRepository interface {
	Create(ctx context.Context, i Increment) (Increment, error)
	List(ctx context.Context, filter IncrementFilter) ([]Increment, int64, error)
}

type IncrementService interface {
	// ApplyIncrement records the increment and updates the employee's basic salary
	ApplyIncrement(ctx context.Context, req CreateIncrementRequest) (Increment, error)
	ListIncrements(ctx context.Context, filter IncrementFilter) ([]Increment, int64, error)
}
