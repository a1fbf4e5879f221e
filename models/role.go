package models

import "strings"

// Role identifies which side of the marketplace an account is acting as.
// A single account may hold both roles; the active role gates which catalog
// is fetched and which mutations are permitted.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleOwner  Role = "owner"
)

// ParseRole maps a wire value to a Role. Returns false for unknown values.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleFarmer):
		return RoleFarmer, true
	case string(RoleOwner):
		return RoleOwner, true
	}
	return "", false
}

// ParseRoles maps a list of wire values to Roles, dropping unknown entries.
func ParseRoles(values []string) []Role {
	out := make([]Role, 0, len(values))
	for _, v := range values {
		if r, ok := ParseRole(v); ok {
			out = append(out, r)
		}
	}
	return out
}

// Wire returns the value sent to the backend.
func (r Role) Wire() string { return string(r) }

// Label returns the display name for the role.
func (r Role) Label() string {
	switch r {
	case RoleFarmer:
		return "Farmer"
	case RoleOwner:
		return "Owner"
	}
	return string(r)
}

// RolesContain reports whether roles includes r.
func RolesContain(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}
