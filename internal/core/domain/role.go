package domain

// Role identifies which account table and dashboard a caller uses.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
)

// ParseAccountRole maps a login role onto one of the three account tables.
// super_admin is not backed by a table and is rejected here.
func ParseAccountRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// IsAdministrative reports whether the role may manage other accounts.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
