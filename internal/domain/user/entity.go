package user

type Role string

const (
	RoleAdmin      Role = "admin"      // Tenant admin - full access
	RoleAccountant Role = "accountant" // Prepares and finalizes slips
	RoleSupervisor Role = "supervisor" // Read-only payroll view
)

// Principal is the caller identified by an access token. Users themselves
// live in the identity service.
type Principal struct {
	UserID   string
	TenantID string
	Role     Role
}

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleAccountant, RoleSupervisor:
		return r, nil
	}
	return "", ErrInvalidRole
}

// CanPrepareSlips checks if the role may save slips and run drafts
func (p Principal) CanPrepareSlips() bool {
	return HasPermission(p.Role, PermissionSalaryPrepare)
}

// CanManageSettings checks if the role may change tariffs
func (p Principal) CanManageSettings() bool {
	return HasPermission(p.Role, PermissionSettingsManage)
}
