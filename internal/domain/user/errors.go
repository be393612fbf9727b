package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("user already exists with this email")
	ErrUserInactive            = errors.New("your account has been deactivated")
	ErrNotHRUser               = errors.New("permissions can only be set for hr users")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
