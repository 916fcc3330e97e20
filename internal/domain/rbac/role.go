package rbac

import (
	pkgerrors "github.com/deanogram/ALT-Controller-bot/pkg/errors"
)

// Role is a per-channel membership role
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleEditor  Role = "editor"
	RoleAnalyst Role = "analyst"
)

// hierarchy maps each role to the closed set of roles it may act as
var hierarchy = map[Role]map[Role]bool{
	RoleOwner:   {RoleOwner: true, RoleAdmin: true, RoleEditor: true, RoleAnalyst: true},
	RoleAdmin:   {RoleAdmin: true, RoleEditor: true, RoleAnalyst: true},
	RoleEditor:  {RoleEditor: true},
	RoleAnalyst: {RoleAnalyst: true},
}

// Valid reports whether r is one of the four known roles
func (r Role) Valid() bool {
	_, ok := hierarchy[r]
	return ok
}

// Can reports whether r is permitted to act as required
func (r Role) Can(required Role) bool {
	return hierarchy[r][required]
}

// ParseRole converts a stored role string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", pkgerrors.NewValidationError("unknown role: " + s)
	}
	return role, nil
}

// Ensure fails with a permission error when acting cannot act as required.
// Callers treat the failure as non-retryable and surface it to the user.
func Ensure(acting, required Role) error {
	if !acting.Can(required) {
		return pkgerrors.NewPermissionError(string(acting), string(required))
	}
	return nil
}
