package deduction

import (
	"context"
	"testing"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
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

type fakeDeductionRepo struct {
	deduction.DeductionRepository
	created []deduction.Deduction
	filter  deduction.DeductionFilter
}

func (r *fakeDeductionRepo) Create(ctx context.Context, d deduction.Deduction) (deduction.Deduction, error) {
	d = deduction.Normalize(d)
	r.created = append(r.created, d)
	return d, nil
}

func (r *fakeDeductionRepo) List(ctx context.Context, filter deduction.DeductionFilter) ([]deduction.Deduction, int64, error) {
	r.filter = filter
	return r.created, int64(len(r.created)), nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (r *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, code string) (employee.Employee, error) {
	if code != empCode {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: empRowID, EmployeeID: empCode}, nil
}

func actorContext(t *testing.T, role user.Role, employeeRef *string) context.Context {
	t.Helper()
	ctx, err := jwt.ContextWithActor(context.Background(), jwt.NewJWTService("test-secret", "1h").JWTAuth(), user.User{
		ID:          userID,
		Role:        role,
		EmployeeRef: employeeRef,
	})
	require.NoError(t, err)
	return ctx
}

func TestAddDeduction(t *testing.T) {
	repo := &fakeDeductionRepo{}
	svc := NewDeductionService(repo, &fakeEmployeeRepo{})

	req := deduction.CreateDeductionRequest{
		Employee: empCode,
		Month:    3,
		Year:     2025,
		Amount:   decimal.NewFromInt(500),
		Type:     "Damage",
		Reason:   "  broken mirror  ",
	}

	created, err := svc.AddDeduction(actorContext(t, user.RoleAdmin, nil), req)
	require.NoError(t, err)
	assert.Equal(t, deduction.StatusApproved, created.Status)
	assert.Equal(t, "broken mirror", created.Reason)
	assert.Equal(t, userID, *created.ApprovedBy)

	req.Reason = ""
	_, err = svc.AddDeduction(actorContext(t, user.RoleAdmin, nil), req)
	assert.Error(t, err)
	assert.Len(t, repo.created, 1)
}

func TestListDeductions_RequiresLinkedEmployee(t *testing.T) {
	svc := NewDeductionService(&fakeDeductionRepo{}, &fakeEmployeeRepo{})

	_, _, err := svc.ListDeductions(actorContext(t, user.RoleEmployee, nil), deduction.DeductionFilter{})
	assert.ErrorIs(t, err, deduction.ErrUnauthorized)
}
