package models

import (
	"sort"
	"strings"
)

// Role is a user role carried in access tokens.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Roles is a set of roles kept sorted and free of duplicates so it
// serializes deterministically as a JSON array claim.
type Roles []Role

// NewRoles builds a set, dropping empty values and duplicates.
func NewRoles(roles ...Role) Roles {
	seen := make(map[Role]struct{}, len(roles))
	set := make(Roles, 0, len(roles))
	for _, r := range roles {
		r = Role(strings.TrimSpace(string(r)))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		set = append(set, r)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Has reports whether the set contains role.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects reports whether any of required is in the set.
func (rs Roles) Intersects(required ...Role) bool {
	for _, r := range required {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

func (rs Roles) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
