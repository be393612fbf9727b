package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
)

// RequireRole allows only the listed roles through.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := jwt.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !slices.Contains(roles, actor.Role) {
				response.Forbidden(w, fmt.Sprintf("Role '%s' is not allowed to perform this action", actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireHRPermission lets admins through, hr users holding the permission,
// and nobody else.
func RequireHRPermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := jwt.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !actor.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
