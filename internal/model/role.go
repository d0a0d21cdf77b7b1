package model

// Role is a user's role inside a single organization. Roles are strictly
// ordered: owner > admin > member. Anything else ranks below member and
// satisfies no requirement.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Rank returns the role's position in the hierarchy. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleMember:
		return 1
	case RoleAdmin:
		return 2
	case RoleOwner:
		return 3
	default:
		return 0
	}
}

// Meets reports whether r satisfies the required role, i.e. ranks at least
// as high.
func (r Role) Meets(required Role) bool {
	return r.Rank() >= required.Rank()
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// ParseRole maps a raw string to a Role, falling back to member for
// anything unrecognized.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RoleMember
	}
	return r
}
