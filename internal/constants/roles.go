package constants

import "strings"

type Role string

const (
	RoleUser   Role = "USER"
	RoleExpert Role = "EXPERT"
	RoleAdmin  Role = "ADMIN"
)

// GetAllRoles returns all available roles
func GetAllRoles() []Role {
	return []Role{
		RoleUser,
		RoleExpert,
		RoleAdmin,
	}
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRole parses a role name case-insensitively
func ParseRole(input string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(input)))
	return role, IsValidRole(role)
}
