package user

import "time"

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID            string        `json:"id"`
	EmployeeID    string        `json:"employeeId"`
	Employee      *string       `json:"employee,omitempty"`
	EmployeeName  string        `json:"employeeName,omitempty"`
	Email         string        `json:"email"`
	Role          Role          `json:"role"`
	IsActive      bool          `json:"isActive"`
	HRPermissions HRPermissions `json:"hrPermissions"`
	LastLogin     *time.Time    `json:"lastLogin,omitempty"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		EmployeeID:    u.EmployeeCode,
		Employee:      u.EmployeeRef,
		EmployeeName:  u.EmployeeName,
		Email:         u.Email,
		Role:          u.Role,
		IsActive:      u.IsActive,
		HRPermissions: u.HRPermissions,
		LastLogin:     u.LastLogin,
	}
}
