package user

type Permission string

const (
	PermissionEdit             Permission = "canEdit"
	PermissionViewDocuments    Permission = "canViewDocuments"
	PermissionManageSalary     Permission = "canManageSalary"
	PermissionManageAttendance Permission = "canManageAttendance"
)

// HRPermissions are the fine-grained grants of an hr user.
type HRPermissions struct {
	CanEdit             bool `json:"canEdit"`
	CanViewDocuments    bool `json:"canViewDocuments"`
	CanManageSalary     bool `json:"canManageSalary"`
	CanManageAttendance bool `json:"canManageAttendance"`
}

func DefaultHRPermissions() HRPermissions {
	return HRPermissions{
		CanEdit:             false,
		CanViewDocuments:    true,
		CanManageSalary:     false,
		CanManageAttendance: true,
	}
}

func (p HRPermissions) Has(permission Permission) bool {
	switch permission {
	case PermissionEdit:
		return p.CanEdit
	case PermissionViewDocuments:
		return p.CanViewDocuments
	case PermissionManageSalary:
		return p.CanManageSalary
	case PermissionManageAttendance:
		return p.CanManageAttendance
	}
	return false
}

// Allows checks a permission for a role. Admins hold every permission, hr users
// hold the ones granted to them and employees hold none.
func Allows(role Role, perms HRPermissions, permission Permission) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleHR:
		return perms.Has(permission)
	default:
		return false
	}
}
