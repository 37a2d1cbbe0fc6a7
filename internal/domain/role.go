package domain

import "strings"

// Role represents a user role. Roles arrive from the backend with
// inconsistent casing, so they are normalized to lowercase at the boundary
// and compared in canonical form everywhere else.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes a raw role string to a canonical Role.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleCompany:
		return RoleCompany, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// Matches reports whether the role satisfies the required role,
// comparing case-insensitively.
func (r Role) Matches(required Role) bool {
	return strings.EqualFold(string(r), string(required))
}

func (r Role) String() string {
	return string(r)
}
