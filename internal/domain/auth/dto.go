package auth

import (
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	EmployeeID string `json:"employeeId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	errs = append(errs, validateEmail(r.Email)...)

	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if !validator.IsInSlice(r.Role, user.Roles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of " + strings.Join(user.Roles, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateEmail(r.Email)...)
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

func (r *SendOTPRequest) Validate() error {
	if errs := validateEmail(r.Email); len(errs) > 0 {
		return errs
	}
	return nil
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateEmail(r.Email)...)
	if len(r.OTP) != OTPLength || !validator.IsNumeric(r.OTP) {
		errs = append(errs, validator.ValidationError{
			Field:   "otp",
			Message: "otp must be a 6 digit code",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "currentPassword",
			Message: "currentPassword is required",
		})
	}
	errs = append(errs, validatePassword("newPassword", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	if errs := validateEmail(r.Email); len(errs) > 0 {
		return errs
	}
	return nil
}

type ResetPasswordRequest struct {
	Token    string `json:"-"`
	Password string `json:"password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}
	errs = append(errs, validatePassword("password", r.Password)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateHRPermissionsRequest struct {
	UserID        string             `json:"-"`
	HRPermissions user.HRPermissions `json:"hrPermissions"`
}

type TokenResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expiresIn"`
	User      user.UserResponse `json:"user"`
}

func validateEmail(email string) validator.ValidationErrors {
	if validator.IsEmpty(email) {
		return validator.ValidationErrors{{Field: "email", Message: "email is required"}}
	}
	if len(email) > 254 || !validator.IsValidEmail(email) {
		return validator.ValidationErrors{{Field: "email", Message: "email must be a valid email address"}}
	}
	return nil
}

func validatePassword(field, password string) validator.ValidationErrors {
	if validator.IsEmpty(password) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if len(password) < 6 {
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 6 characters long"}}
	}
	if len(password) > 72 {
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	}
	return nil
}
