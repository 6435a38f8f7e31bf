package user

type Permission string

const (
	// Payroll
	PermissionSalaryView    Permission = "salary.view"
	PermissionSalaryPrepare Permission = "salary.prepare"

	// Tariffs
	PermissionSettingsView   Permission = "settings.view"
	PermissionSettingsManage Permission = "settings.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionSalaryView,
		PermissionSalaryPrepare,
		PermissionSettingsView,
		PermissionSettingsManage,
	},
	RoleAccountant: {
		PermissionSalaryView,
		PermissionSalaryPrepare,
		PermissionSettingsView,
		PermissionSettingsManage,
	},
	RoleSupervisor: {
		PermissionSalaryView,
		PermissionSettingsView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
