package incentive

import (
	"context"
	"testing"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
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

type fakeIncentiveRepo struct {
	incentive.IncentiveRepository
	created []incentive.Incentive
	filter  incentive.IncentiveFilter
}

func (r *fakeIncentiveRepo) Create(ctx context.Context, i incentive.Incentive) (incentive.Incentive, error) {
	i = incentive.Normalize(i)
	r.created = append(r.created, i)
	return i, nil
}

func (r *fakeIncentiveRepo) List(ctx context.Context, filter incentive.IncentiveFilter) ([]incentive.Incentive, int64, error) {
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

func validRequest() incentive.CreateIncentiveRequest {
	return incentive.CreateIncentiveRequest{
		Employee: empCode,
		Month:    3,
		Year:     2025,
		Amount:   decimal.RequireFromString("1250.456"),
		Type:     "Performance",
	}
}

func TestAddIncentive_ApprovedOnEntry(t *testing.T) {
	repo := &fakeIncentiveRepo{}
	svc := NewIncentiveService(repo, &fakeEmployeeRepo{})

	created, err := svc.AddIncentive(actorContext(t, user.RoleHR, nil), validRequest())
	require.NoError(t, err)

	assert.Equal(t, incentive.StatusApproved, created.Status)
	assert.Equal(t, empRowID, created.EmployeeID)
	assert.Equal(t, userID, *created.AddedBy)
	assert.Equal(t, userID, *created.ApprovedBy)
	assert.Equal(t, "1250.46", created.Amount.StringFixed(2))
}

func TestAddIncentive_Rejections(t *testing.T) {
	svc := NewIncentiveService(&fakeIncentiveRepo{}, &fakeEmployeeRepo{})

	t.Run("employee role", func(t *testing.T) {
		ref := empRowID
		_, err := svc.AddIncentive(actorContext(t, user.RoleEmployee, &ref), validRequest())
		assert.ErrorIs(t, err, incentive.ErrUnauthorized)
	})

	t.Run("unknown employee", func(t *testing.T) {
		req := validRequest()
		req.Employee = "NM999999999"
		_, err := svc.AddIncentive(actorContext(t, user.RoleAdmin, nil), req)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("invalid type", func(t *testing.T) {
		req := validRequest()
		req.Type = "Bonus"
		_, err := svc.AddIncentive(actorContext(t, user.RoleAdmin, nil), req)
		assert.Error(t, err)
	})
}

func TestListIncentives_EmployeeSeesOwn(t *testing.T) {
	repo := &fakeIncentiveRepo{}
	svc := NewIncentiveService(repo, &fakeEmployeeRepo{})
	ref := "0192e3a4-5b6c-7d8e-9f00-000000000009"

	_, _, err := svc.ListIncentives(actorContext(t, user.RoleEmployee, &ref), incentive.IncentiveFilter{EmployeeID: empCode})
	require.NoError(t, err)
	assert.Equal(t, ref, repo.filter.EmployeeID)

	_, _, err = svc.ListIncentives(actorContext(t, user.RoleHR, nil), incentive.IncentiveFilter{EmployeeID: empCode, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, empRowID, repo.filter.EmployeeID)
	assert.Equal(t, 20, repo.filter.Limit)
}
