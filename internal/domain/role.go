package domain

import (
	"slices"
	"strings"

	"github.com/mvaleed/catalog/internal/result"
)

// Role is one of a fixed set of account roles.
type Role struct {
	name string
}

var (
	RoleUser  = Role{name: "User"}
	RoleAdmin = Role{name: "Admin"}
)

var allowedRoles = []Role{RoleUser, RoleAdmin}

// Permission actions granted to roles.
const (
	ActionReadCatalog   = "catalog:read"
	ActionManageCatalog = "catalog:write"
)

var rolePermissions = map[Role][]string{
	RoleUser:  {ActionReadCatalog},
	RoleAdmin: {ActionReadCatalog, ActionManageCatalog},
}

// NewRole accepts any casing of an allowed role name and stores the
// canonical spelling.
func NewRole(raw string) result.Result[Role] {
	value := strings.TrimSpace(raw)
	if value == "" {
		return result.Invalid[Role](FieldRole.Violation(RuleRequired, "role is required"))
	}
	for _, r := range allowedRoles {
		if strings.EqualFold(r.name, value) {
			return result.Success(r)
		}
	}
	return result.Invalid[Role](FieldRole.Violation(RuleInvalid, "role must be one of: User, Admin"))
}

func (r Role) String() string { return r.name }

func (r Role) IsZero() bool { return r.name == "" }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Can reports whether the role grants action.
func (r Role) Can(action string) bool {
	return slices.Contains(rolePermissions[r], action)
}
