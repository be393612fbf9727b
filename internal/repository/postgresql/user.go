package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
)

const constraintUserEmail = "uk_users_email"

const userColumns = `
	u.id, u.employee_code, u.employee_ref, u.email, u.password_hash, u.role, u.is_active,
	u.hr_permissions, u.last_login, u.otp_hash, u.otp_expires_at, u.reset_token_hash, u.reset_token_expiry,
	u.created_at, u.updated_at, ` + employeeName

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row rowScanner) (user.User, error) {
	var (
		u     user.User
		perms []byte
	)
	err := row.Scan(
		&u.ID, &u.EmployeeCode, &u.EmployeeRef, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&perms, &u.LastLogin, &u.OTPHash, &u.OTPExpiresAt, &u.ResetTokenHash, &u.ResetTokenExpiry,
		&u.CreatedAt, &u.UpdatedAt, &u.EmployeeName,
	)
	if err != nil {
		return user.User{}, err
	}
	if err := fromJSON(perms, &u.HRPermissions); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, args ...any) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.id = u.employee_ref
		WHERE ` + where

	u, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	newUser = user.Normalize(newUser)

	perms, err := toJSON(newUser.HRPermissions)
	if err != nil {
		return user.User{}, err
	}

	query := `
		WITH u AS (
			INSERT INTO users (
				employee_code, employee_ref, email, password_hash, role, is_active, hr_permissions,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING *
		)
		SELECT` + userColumns + `
		FROM u
		LEFT JOIN employees e ON e.id = u.employee_ref
	`

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.EmployeeCode, newUser.EmployeeRef, newUser.Email, newUser.PasswordHash,
		string(newUser.Role), newUser.IsActive, perms,
	))
	if err != nil {
		if database.IsUniqueViolation(err, constraintUserEmail) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	if !isRowID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	return r.getOne(ctx, "u.id = $1", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "u.email = lower($1)", email)
}

// GetByResetTokenHash implements user.UserRepository. Expired tokens do not match.
func (r *userRepositoryImpl) GetByResetTokenHash(ctx context.Context, hash string, now time.Time) (user.User, error) {
	return r.getOne(ctx, "u.reset_token_hash = $1 AND u.reset_token_expiry > $2", hash, now)
}

func (r *userRepositoryImpl) exec(ctx context.Context, query string, args ...any) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.exec(ctx, `UPDATE users SET last_login = $1, updated_at = NOW() WHERE id = $2`, at, id)
}

// UpdatePassword implements user.UserRepository. Any pending reset token is consumed.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $2`, passwordHash, id)
}

// SetOTP implements user.UserRepository.
func (r *userRepositoryImpl) SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	return r.exec(ctx, `UPDATE users SET otp_hash = $1, otp_expires_at = $2, updated_at = NOW() WHERE id = $3`,
		otpHash, expiresAt, id)
}

// ClearOTP implements user.UserRepository.
func (r *userRepositoryImpl) ClearOTP(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET otp_hash = NULL, otp_expires_at = NULL, updated_at = NOW() WHERE id = $1`, id)
}

// SetResetToken implements user.UserRepository.
func (r *userRepositoryImpl) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	return r.exec(ctx, `UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2, updated_at = NOW() WHERE id = $3`,
		tokenHash, expiresAt, id)
}

// UpdateHRPermissions implements user.UserRepository.
func (r *userRepositoryImpl) UpdateHRPermissions(ctx context.Context, id string, perms user.HRPermissions) (user.User, error) {
	if !isRowID(id) {
		return user.User{}, user.ErrUserNotFound
	}
	q := GetQuerier(ctx, r.db)

	raw, err := toJSON(perms)
	if err != nil {
		return user.User{}, err
	}

	query := `
		WITH u AS (
			UPDATE users SET hr_permissions = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING *
		)
		SELECT` + userColumns + `
		FROM u
		LEFT JOIN employees e ON e.id = u.employee_ref
	`

	updated, err := scanUser(q.QueryRow(ctx, query, raw, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("update hr permissions: %w", err)
	}
	return updated, nil
}

// ClearExpiredSecrets implements user.UserRepository.
func (r *userRepositoryImpl) ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE users SET
			otp_hash           = CASE WHEN otp_expires_at < $1 THEN NULL ELSE otp_hash END,
			otp_expires_at     = CASE WHEN otp_expires_at < $1 THEN NULL ELSE otp_expires_at END,
			reset_token_hash   = CASE WHEN reset_token_expiry < $1 THEN NULL ELSE reset_token_hash END,
			reset_token_expiry = CASE WHEN reset_token_expiry < $1 THEN NULL ELSE reset_token_expiry END,
			updated_at         = NOW()
		WHERE otp_expires_at < $1 OR reset_token_expiry < $1
	`

	tag, err := q.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("clear expired secrets: %w", err)
	}
	return tag.RowsAffected(), nil
}
