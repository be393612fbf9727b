package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

var Roles = []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}

type User struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employeeId"`
	// EmployeeRef is the id of the linked employee row.
	EmployeeRef   *string       `json:"employee,omitempty"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Role          Role          `json:"role"`
	IsActive      bool          `json:"isActive"`
	HRPermissions HRPermissions `json:"hrPermissions"`
	LastLogin     *time.Time    `json:"lastLogin,omitempty"`

	OTPHash          *string    `json:"-"`
	OTPExpiresAt     *time.Time `json:"-"`
	ResetTokenHash   *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Join
	EmployeeName string `json:"employeeName,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsHR() bool {
	return u.Role == RoleHR
}

// Normalize lowercases the email and fills role defaults.
func Normalize(u User) User {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.EmployeeCode = strings.ToUpper(strings.TrimSpace(u.EmployeeCode))
	if u.Role == "" {
		u.Role = RoleEmployee
	}
	return u
}
