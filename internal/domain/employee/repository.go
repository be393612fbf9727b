package employee

import (
	"context"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	// Create inserts e if its employee id is free. A taken id yields ErrEmployeeIDTaken.
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedBy *string) error
	UpdateBasicSalary(ctx context.Context, id string, basic decimal.Decimal, updatedBy *string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListIncomplete(ctx context.Context) ([]Employee, error)
	Stats(ctx context.Context) (Stats, error)
}

// Resolve looks an employee up by business code ("NM...") or by row id.
func Resolve(ctx context.Context, repo EmployeeRepository, ref string) (Employee, error) {
	switch {
	case validator.IsValidEmployeeCode(ref):
		return repo.GetByEmployeeID(ctx, ref)
	case validator.IsValidUUID(ref):
		return repo.GetByID(ctx, ref)
	default:
		return Employee{}, ErrEmployeeNotFound
	}
}
