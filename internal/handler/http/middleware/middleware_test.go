package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestAs(t *testing.T, jwtService jwt.Service, u user.User) (*http.Request, string) {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(u)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req, token
}

func serve(h http.Handler, req *http.Request) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	admin := user.User{ID: "0192e3a4-5b6c-7d8e-9f00-0000000000a1", Role: user.RoleAdmin, IsActive: true}
	users := &fakeUserRepo{users: map[string]user.User{admin.ID: admin}}
	h := jwtauth.Verifier(jwtService.JWTAuth())(AuthRequired(jwtService, users)(okHandler))

	req, token := requestAs(t, jwtService, admin)
	assert.Equal(t, http.StatusOK, serve(h, req))

	jwtService.RevokeToken(token, 0)
	req, _ = requestAs(t, jwtService, admin)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, serve(h, req))

	assert.Equal(t, http.StatusUnauthorized, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestAuthRequired_ReloadsStoredUser(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	hr := user.User{
		ID:            "0192e3a4-5b6c-7d8e-9f00-0000000000b2",
		Role:          user.RoleHR,
		IsActive:      true,
		HRPermissions: user.HRPermissions{CanManageSalary: true},
	}
	users := &fakeUserRepo{users: map[string]user.User{hr.ID: hr}}
	guarded := RequireHRPermission(user.PermissionManageSalary)(okHandler)
	h := jwtauth.Verifier(jwtService.JWTAuth())(AuthRequired(jwtService, users)(guarded))

	req, token := requestAs(t, jwtService, hr)
	assert.Equal(t, http.StatusOK, serve(h, req))

	revoked := hr
	revoked.HRPermissions = user.DefaultHRPermissions()
	users.users[hr.ID] = revoked
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, serve(h, req), "permission removed after the token was issued")

	deactivated := hr
	deactivated.IsActive = false
	users.users[hr.ID] = deactivated
	assert.Equal(t, http.StatusUnauthorized, serve(h, req))

	delete(users.users, hr.ID)
	assert.Equal(t, http.StatusUnauthorized, serve(h, req))
}

func withActor(t *testing.T, u user.User) *http.Request {
	t.Helper()
	ctx, err := jwt.ContextWithActor(context.Background(), jwt.NewJWTService("test-secret", "1h").JWTAuth(), u)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(user.RoleAdmin, user.RoleHR)(okHandler)

	assert.Equal(t, http.StatusOK, serve(h, withActor(t, user.User{ID: "u1", Role: user.RoleHR})))
	assert.Equal(t, http.StatusForbidden, serve(h, withActor(t, user.User{ID: "u2", Role: user.RoleEmployee})))
	assert.Equal(t, http.StatusUnauthorized, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestRequireHRPermission(t *testing.T) {
	h := RequireHRPermission(user.PermissionManageSalary)(okHandler)

	assert.Equal(t, http.StatusOK, serve(h, withActor(t, user.User{ID: "a", Role: user.RoleAdmin})))
	assert.Equal(t, http.StatusOK, serve(h, withActor(t, user.User{ID: "h", Role: user.RoleHR, HRPermissions: user.HRPermissions{CanManageSalary: true}})))
	assert.Equal(t, http.StatusForbidden, serve(h, withActor(t, user.User{ID: "h", Role: user.RoleHR, HRPermissions: user.DefaultHRPermissions()})))
	assert.Equal(t, http.StatusForbidden, serve(h, withActor(t, user.User{ID: "e", Role: user.RoleEmployee, HRPermissions: user.HRPermissions{CanManageSalary: true}})))
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(60, 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		codes = append(codes, serve(h, req))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	assert.Equal(t, http.StatusOK, serve(h, other))
}
