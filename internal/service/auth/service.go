package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/auth"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/email"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

type AuthServiceImpl struct {
	user.UserRepository
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
	emailService email.EmailService
	frontendURL  string
	now          func() time.Time
}

func NewAuthService(
	userRepository user.UserRepository,
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		employeeRepo:   employeeRepository,
		jwtService:     jwtService,
		emailService:   emailService,
		frontendURL:    strings.TrimRight(frontendURL, "/"),
		now:            time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) issueToken(u user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateAccessToken(u)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		Token:     token,
		ExpiresIn: expiresAt,
		User:      user.ToResponse(u),
	}, nil
}

// touchLogin records the login time; a failure does not block the login.
func (a *AuthServiceImpl) touchLogin(ctx context.Context, u *user.User) {
	at := a.now()
	if err := a.UpdateLastLogin(ctx, u.ID, at); err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID, "error", err)
		return
	}
	u.LastLogin = &at
}

func randomString(alphabet string, n int) (string, error) {
	var sb strings.Builder
	limit := big.NewInt(int64(len(alphabet)))
	for range n {
		i, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[i.Int64()])
	}
	return sb.String(), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !actor.IsStaff() {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	emp, err := a.employeeRepo.GetByEmployeeID(ctx, strings.ToUpper(strings.TrimSpace(req.EmployeeID)))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.UserResponse{}, auth.ErrEmployeeNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	tempPassword, err := randomString(passwordAlphabet, auth.TempPasswordSize)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := a.hashPassword(tempPassword)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		EmployeeCode: emp.EmployeeID,
		EmployeeRef:  &emp.ID,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         user.Role(req.Role),
		IsActive:     true,
	}
	if newUser.Role == user.RoleHR {
		newUser.HRPermissions = user.DefaultHRPermissions()
	}

	created, err := a.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := a.emailService.SendWelcome(created.Email, emp.FullName(), emp.EmployeeID, tempPassword, a.frontendURL+"/login"); err != nil {
		slog.Error("failed to send welcome email", "user_id", created.ID, "error", err)
	}

	return user.ToResponse(created), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	a.touchLogin(ctx, &u)
	return a.issueToken(u)
}

// SendOTP implements auth.AuthService. The code is stored bcrypt-hashed and
// the call fails when the email cannot be delivered.
func (a *AuthServiceImpl) SendOTP(ctx context.Context, req auth.SendOTPRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return user.ErrUserInactive
	}

	otp, err := randomString("0123456789", auth.OTPLength)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash otp: %w", err)
	}
	if err := a.SetOTP(ctx, u.ID, string(hashed), a.now().Add(auth.OTPTTL)); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := a.emailService.SendOTP(u.Email, u.EmployeeName, otp, auth.OTPTTL); err != nil {
		slog.Error("failed to send otp email", "user_id", u.ID, "error", err)
		return auth.ErrNotificationFailed
	}
	return nil
}

// VerifyOTP implements auth.AuthService.
func (a *AuthServiceImpl) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidOTP
		}
		return auth.TokenResponse{}, err
	}

	if u.OTPHash == nil || u.OTPExpiresAt == nil {
		return auth.TokenResponse{}, auth.ErrInvalidOTP
	}
	if a.now().After(*u.OTPExpiresAt) {
		return auth.TokenResponse{}, auth.ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.OTPHash), []byte(req.OTP)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidOTP
	}
	if !u.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	if err := a.ClearOTP(ctx, u.ID); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to clear otp: %w", err)
	}
	u.OTPHash, u.OTPExpiresAt = nil, nil

	a.touchLogin(ctx, &u)
	return a.issueToken(u)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := a.GetByID(ctx, actor.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// UpdatePassword implements auth.AuthService.
func (a *AuthServiceImpl) UpdatePassword(ctx context.Context, req auth.UpdatePasswordRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.GetByID(ctx, actor.UserID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.TokenResponse{}, auth.ErrIncorrectPassword
	}

	hashed, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to update password: %w", err)
	}
	u.PasswordHash = hashed

	return a.issueToken(u)
}

// ForgotPassword implements auth.AuthService. Unknown emails succeed silently
// so the endpoint cannot be used to probe for accounts.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	expiresAt := a.now().Add(auth.ResetTokenTTL)
	if err := a.SetResetToken(ctx, u.ID, hashToken(token), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := a.frontendURL + "/reset-password/" + token
	if err := a.emailService.SendPasswordReset(u.Email, link, expiresAt.Format(time.RFC1123)); err != nil {
		slog.Error("failed to send password reset email", "user_id", u.ID, "error", err)
		return auth.ErrNotificationFailed
	}
	return nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.GetByResetTokenHash(ctx, hashToken(req.Token), a.now())
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidResetToken
		}
		return auth.TokenResponse{}, err
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to update password: %w", err)
	}
	u.PasswordHash = hashed
	u.ResetTokenHash, u.ResetTokenExpiry = nil, nil

	return a.issueToken(u)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	parsed, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	a.jwtService.RevokeToken(token, parsed.Expiration().Unix())
	return nil
}

// UpdateHRPermissions implements auth.AuthService.
func (a *AuthServiceImpl) UpdateHRPermissions(ctx context.Context, req auth.UpdateHRPermissionsRequest) (user.UserResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !actor.IsAdmin() {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	target, err := a.GetByID(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if target.Role != user.RoleHR {
		return user.UserResponse{}, user.ErrNotHRUser
	}

	updated, err := a.UserRepository.UpdateHRPermissions(ctx, target.ID, req.HRPermissions)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update hr permissions: %w", err)
	}
	return user.ToResponse(updated), nil
}
