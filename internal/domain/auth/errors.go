package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrNotificationFailed = errors.New("email could not be sent")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmployeeNotFound   = errors.New("employee not found")
)
