package models

import "fmt"

type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "ProjectManager"
	RoleTeamMember     Role = "TeamMember"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleProjectManager, RoleTeamMember}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleTeamMember:
		return true
	}
	return false
}

// ParseRole converts a string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}
