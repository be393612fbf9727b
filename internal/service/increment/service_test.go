package increment

import (
	"context"
	"errors"
	"testing"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empRowID = "0192e3a4-5b6c-7d8e-9f00-000000000001"
	empCode  = "NM100000001"
	userID   = "0192e3a4-5b6c-7d8e-9f00-0000000000aa"
)

type passThroughTransactor struct{ calls int }

func (t *passThroughTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeIncrementRepo struct {
	created []increment.Increment
}

func (r *fakeIncrementRepo) Create(ctx context.Context, i increment.Increment) (increment.Increment, error) {
	i = increment.Normalize(i)
	r.created = append(r.created, i)
	return i, nil
}

func (r *fakeIncrementRepo) List(ctx context.Context, filter increment.IncrementFilter) ([]increment.Increment, int64, error) {
	return r.created, int64(len(r.created)), nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	emp       employee.Employee
	updateErr error
	newBasic  decimal.Decimal

	locked  int
	settled *decimal.Decimal
}

func (r *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, code string) (employee.Employee, error) {
	if code != r.emp.EmployeeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.emp, nil
}

// GetByIDForUpdate returns the row as committed. settled stands in for a
// salary another transaction wrote after the unlocked lookup.
func (r *fakeEmployeeRepo) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	if id != r.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	r.locked++
	emp := r.emp
	if r.settled != nil {
		emp.BasicSalary = *r.settled
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) UpdateBasicSalary(ctx context.Context, id string, basic decimal.Decimal, updatedBy *string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.newBasic = basic
	return nil
}

func actorContext(t *testing.T, role user.Role) context.Context {
	t.Helper()
	ctx, err := jwt.ContextWithActor(context.Background(), jwt.NewJWTService("test-secret", "1h").JWTAuth(), user.User{
		ID:   userID,
		Role: role,
	})
	require.NoError(t, err)
	return ctx
}

func newEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{emp: employee.Employee{ID: empRowID, EmployeeID: empCode, BasicSalary: decimal.NewFromInt(20000)}}
}

func request(newSalary int64) increment.CreateIncrementRequest {
	return increment.CreateIncrementRequest{
		Employee:      empCode,
		EffectiveDate: "2025-04-01",
		NewSalary:     decimal.NewFromInt(newSalary),
		Reason:        "Annual",
	}
}

func TestApplyIncrement(t *testing.T) {
	incRepo := &fakeIncrementRepo{}
	empRepo := newEmployeeRepo()
	tx := &passThroughTransactor{}
	svc := NewIncrementService(tx, incRepo, empRepo)

	applied, err := svc.ApplyIncrement(actorContext(t, user.RoleHR), request(22000))
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, empRepo.locked)
	assert.Equal(t, increment.StatusApproved, applied.Status)
	assert.True(t, applied.PreviousSalary.Equal(decimal.NewFromInt(20000)))
	assert.True(t, applied.IncrementAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, applied.IncrementPercentage.Equal(decimal.NewFromInt(10)))
	assert.True(t, empRepo.newBasic.Equal(decimal.NewFromInt(22000)))
}

func TestApplyIncrement_SameSalary(t *testing.T) {
	incRepo := &fakeIncrementRepo{}
	svc := NewIncrementService(&passThroughTransactor{}, incRepo, newEmployeeRepo())

	_, err := svc.ApplyIncrement(actorContext(t, user.RoleHR), request(20000))
	assert.ErrorIs(t, err, increment.ErrSameSalary)
	assert.Empty(t, incRepo.created)
}

func TestApplyIncrement_SalaryUpdateFailurePropagates(t *testing.T) {
	empRepo := newEmployeeRepo()
	empRepo.updateErr = errors.New("connection reset")
	svc := NewIncrementService(&passThroughTransactor{}, &fakeIncrementRepo{}, empRepo)

	_, err := svc.ApplyIncrement(actorContext(t, user.RoleAdmin), request(25000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update basic salary")
}

func TestApplyIncrement_EmployeeRole(t *testing.T) {
	svc := NewIncrementService(&passThroughTransactor{}, &fakeIncrementRepo{}, newEmployeeRepo())

	_, err := svc.ApplyIncrement(actorContext(t, user.RoleEmployee), request(25000))
	assert.ErrorIs(t, err, increment.ErrUnauthorized)
}

func TestApplyIncrement_PreviousSalaryReadUnderLock(t *testing.T) {
	incRepo := &fakeIncrementRepo{}
	empRepo := newEmployeeRepo()
	settled := decimal.NewFromInt(21000)
	empRepo.settled = &settled
	svc := NewIncrementService(&passThroughTransactor{}, incRepo, empRepo)

	applied, err := svc.ApplyIncrement(actorContext(t, user.RoleHR), request(23100))
	require.NoError(t, err)
	assert.True(t, applied.PreviousSalary.Equal(settled))
	assert.True(t, applied.IncrementAmount.Equal(decimal.NewFromInt(2100)))

	_, err = svc.ApplyIncrement(actorContext(t, user.RoleHR), request(21000))
	assert.ErrorIs(t, err, increment.ErrSameSalary)
	assert.Len(t, incRepo.created, 1)
}
