package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/auth"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified, unrevoked access token.
// The token's user is reloaded on every request: deactivated or deleted
// accounts are turned away and the stored role and permissions become the
// caller. It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service, users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.Unauthorized(w, "Token has been revoked")
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					err = auth.ErrInvalidToken
				}
				response.HandleError(w, err)
				return
			}
			if !u.IsActive {
				response.HandleError(w, user.ErrUserInactive)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.WithActor(r.Context(), u)))
		}
		return http.HandlerFunc(hfn)
	}
}
