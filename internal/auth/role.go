package auth

import (
	"strings"

	"github.com/lukmanhakim/user-portal/internal"
)

// Authority strings granted through roles.
const (
	AuthorityUserRead   = "user:read"
	AuthorityUserCreate = "user:create"
	AuthorityUserUpdate = "user:update"
	AuthorityUserDelete = "user:delete"
)

// Role is a closed set: values only come out of ParseRole, so an unknown role
// string is a boundary validation error instead of a runtime lookup failure.
type Role string

const (
	RoleUser       Role = "ROLE_USER"
	RoleHR         Role = "ROLE_HR"
	RoleManager    Role = "ROLE_MANAGER"
	RoleAdmin      Role = "ROLE_ADMIN"
	RoleSuperAdmin Role = "ROLE_SUPER_ADMIN"
)

// roleAuthorities is fixed at startup and never mutated. Each role carries a
// strictly larger, ordered permission set than the one below it.
var roleAuthorities = map[Role][]string{
	RoleUser:       {},
	RoleHR:         {AuthorityUserRead},
	RoleManager:    {AuthorityUserRead, AuthorityUserUpdate},
	RoleAdmin:      {AuthorityUserRead, AuthorityUserCreate, AuthorityUserUpdate},
	RoleSuperAdmin: {AuthorityUserRead, AuthorityUserCreate, AuthorityUserUpdate, AuthorityUserDelete},
}

// ParseRole validates a role name from the boundary. It accepts both the
// stored form ("ROLE_ADMIN") and the short form clients send ("admin").
func ParseRole(name string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(normalized, "ROLE_") {
		normalized = "ROLE_" + normalized
	}

	role := Role(normalized)
	if _, ok := roleAuthorities[role]; !ok {
		return "", internal.ErrUnknownRole
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

// Authorities returns the ordered permission set for the role. The returned
// slice is a copy; callers cannot reach the shared table through it.
func (r Role) Authorities() []string {
	src, ok := roleAuthorities[r]
	if !ok {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
