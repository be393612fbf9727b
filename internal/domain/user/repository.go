package user

import (
	"context"
	"time"
)

type UserRepository interface {
	// Create inserts the user, returning ErrUserEmailExists on a duplicate email.
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByResetTokenHash(ctx context.Context, hash string, now time.Time) (User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	UpdateHRPermissions(ctx context.Context, id string, perms HRPermissions) (User, error)
	// ClearExpiredSecrets drops OTPs and reset tokens that expired before now.
	ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error)
}
