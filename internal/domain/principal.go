package domain

import "slices"

// Role names a group of permissions granted to a user (e.g. "Admin", "Hr").
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleHr    Role = "Hr"
	RoleUser  Role = "User"
)

// Credential is one entry of the credential store. Passwords are stored in plaintext.
type Credential struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	Roles    []Role `yaml:"roles" validate:"required,min=1,dive,required"`
}

// Principal represents an authenticated user for the lifetime of a single request.
type Principal struct {
	Username string
	Roles    []Role
}

// HasRole reports whether the principal has the given role.
func (p Principal) HasRole(r Role) bool {
	return slices.Contains(p.Roles, r)
}

// HasAnyRole reports whether the principal holds at least one of roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	return slices.ContainsFunc(roles, p.HasRole)
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
