package auth

import (
	"context"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
)

const (
	OTPLength        = 6
	OTPTTL           = 10 * time.Minute
	ResetTokenTTL    = time.Hour
	TempPasswordSize = 10
)

type AuthService interface {
	// Register creates a login for an existing employee and mails a temporary password.
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	SendOTP(ctx context.Context, req SendOTPRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (TokenResponse, error)
	Me(ctx context.Context) (user.UserResponse, error)
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (TokenResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	UpdateHRPermissions(ctx context.Context, req UpdateHRPermissionsRequest) (user.UserResponse, error)
}
