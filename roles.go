package jobnest

// SeekerDashboardPath and ProviderDashboardPath are where role-mismatched
// navigation is redirected.
const (
	SeekerDashboardPath   = "/seeker-dashboard"
	ProviderDashboardPath = "/provider-dashboard"
)

// IsValid checks if the role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSeeker, RoleProvider:
		return true
	default:
		return false
	}
}

// DashboardPath returns the role's own dashboard route. Unknown roles fall
// back to the login route.
func (r Role) DashboardPath() string {
	switch r {
	case RoleSeeker:
		return SeekerDashboardPath
	case RoleProvider:
		return ProviderDashboardPath
	default:
		return LoginPath
	}
}

// AllRoles returns the supported roles.
func AllRoles() []Role {
	return []Role{RoleSeeker, RoleProvider}
}

// ParseRole safely parses a string into a Role.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}
