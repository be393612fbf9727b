package jwt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
)

var ErrNoActor = errors.New("no authenticated user in context")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
	// PruneRevoked forgets revoked tokens that have expired by now.
	PruneRevoked(now time.Time) int
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":       u.ID,
		"email":         u.Email,
		"employee_id":   returnValueOrNil(u.EmployeeRef),
		"employee_code": u.EmployeeCode,
		"role":          string(u.Role),
		"hr_permissions": map[string]bool{
			string(user.PermissionEdit):             u.HRPermissions.CanEdit,
			string(user.PermissionViewDocuments):    u.HRPermissions.CanViewDocuments,
			string(user.PermissionManageSalary):     u.HRPermissions.CanManageSalary,
			string(user.PermissionManageAttendance): u.HRPermissions.CanManageAttendance,
		},
		"type": "access",
		"exp":  expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) PruneRevoked(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	pruned := 0
	for token, exp := range j.revokedTokens {
		if exp <= now.Unix() {
			delete(j.revokedTokens, token)
			pruned++
		}
	}
	return pruned
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// Actor is the authenticated caller as read from the access token claims.
type Actor struct {
	UserID        string
	Email         string
	EmployeeID    string // employee row id, empty when the user has no employee record
	EmployeeCode  string
	Role          user.Role
	HRPermissions user.HRPermissions
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

func (a Actor) IsStaff() bool {
	return a.Role == user.RoleAdmin || a.Role == user.RoleHR
}

func (a Actor) Can(p user.Permission) bool {
	return user.Allows(a.Role, a.HRPermissions, p)
}

type actorKey struct{}

// ActorFromUser builds the caller from a stored user record.
func ActorFromUser(u user.User) Actor {
	actor := Actor{
		UserID:        u.ID,
		Email:         u.Email,
		EmployeeCode:  u.EmployeeCode,
		Role:          u.Role,
		HRPermissions: u.HRPermissions,
	}
	if u.EmployeeRef != nil {
		actor.EmployeeID = *u.EmployeeRef
	}
	return actor
}

// WithActor returns ctx carrying the caller built from u. It takes precedence
// over the token claims, so role and permission changes apply to tokens
// issued before them.
func WithActor(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, actorKey{}, ActorFromUser(u))
}

// ActorFromContext returns the caller stored by WithActor, falling back to
// the jwtauth token in ctx.
func ActorFromContext(ctx context.Context) (Actor, error) {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor, nil
	}
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrNoActor
	}
	return ActorFromClaims(claims)
}

func ActorFromClaims(claims map[string]interface{}) (Actor, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Actor{}, ErrNoActor
	}

	actor := Actor{UserID: userID}
	actor.Email, _ = claims["email"].(string)
	actor.EmployeeID, _ = claims["employee_id"].(string)
	actor.EmployeeCode, _ = claims["employee_code"].(string)
	if role, ok := claims["role"].(string); ok {
		actor.Role = user.Role(role)
	}

	// Claims hold a Go map before encoding and a decoded JSON object after.
	if raw, ok := claims["hr_permissions"]; ok && raw != nil {
		b, err := json.Marshal(raw)
		if err != nil {
			return Actor{}, err
		}
		if err := json.Unmarshal(b, &actor.HRPermissions); err != nil {
			return Actor{}, err
		}
	}

	return actor, nil
}

// ContextWithActor returns ctx carrying a signed token for u. Used by
// background jobs and tests that call services directly.
func ContextWithActor(ctx context.Context, ja *jwtauth.JWTAuth, u user.User) (context.Context, error) {
	svc := &JWTService{tokenAuth: ja, accessTokenExpirationTime: "1h"}
	tokenString, _, err := svc.GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}
	tok, err := ja.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	return jwtauth.NewContext(ctx, tok, nil), nil
}
