package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")
	employeeRef := "0192e3a4-5b6c-7d8e-9f00-112233445566"

	token, exp, err := svc.GenerateAccessToken(user.User{
		ID:            "u-1",
		Email:         "hr@nmep.in",
		EmployeeRef:   &employeeRef,
		EmployeeCode:  "NM123456789",
		Role:          user.RoleHR,
		HRPermissions: user.HRPermissions{CanManageSalary: true},
	})
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u-1", actor.UserID)
	assert.Equal(t, employeeRef, actor.EmployeeID)
	assert.Equal(t, "NM123456789", actor.EmployeeCode)
	assert.Equal(t, user.RoleHR, actor.Role)
	assert.True(t, actor.Can(user.PermissionManageSalary))
	assert.False(t, actor.Can(user.PermissionEdit))
	assert.Equal(t, "access", claims["type"])
}

func TestContextWithActor(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	ctx, err := ContextWithActor(context.Background(), svc.JWTAuth(), user.User{ID: "u-2", Role: user.RoleAdmin})
	require.NoError(t, err)

	actor, err := ActorFromContext(ctx)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.True(t, actor.Can(user.PermissionManageSalary))
	assert.Empty(t, actor.EmployeeID)
}

func TestActorFromContext_Missing(t *testing.T) {
	_, err := ActorFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoActor)
}

func TestRevokeAndPrune(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")
	now := time.Now()

	svc.RevokeToken("expired", now.Add(-time.Minute).Unix())
	svc.RevokeToken("live", now.Add(time.Hour).Unix())

	assert.True(t, svc.IsTokenRevoked("expired"))
	assert.Equal(t, 1, svc.PruneRevoked(now))
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}

func TestWithActor_OverridesTokenClaims(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")
	ctx, err := ContextWithActor(context.Background(), svc.JWTAuth(), user.User{
		ID:            "u-3",
		Role:          user.RoleHR,
		HRPermissions: user.HRPermissions{CanManageSalary: true},
	})
	require.NoError(t, err)

	employeeRef := "0192e3a4-5b6c-7d8e-9f00-112233445566"
	ctx = WithActor(ctx, user.User{ID: "u-3", Role: user.RoleHR, EmployeeRef: &employeeRef, EmployeeCode: "NM123456789"})

	actor, err := ActorFromContext(ctx)
	require.NoError(t, err)
	assert.False(t, actor.Can(user.PermissionManageSalary))
	assert.Equal(t, employeeRef, actor.EmployeeID)
	assert.Equal(t, "NM123456789", actor.EmployeeCode)
}
