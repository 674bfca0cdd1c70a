// Package permission holds the role capability check for catalog operations.
// It is a pure in-memory lookup with no I/O so handlers do not scatter role
// conditionals.
package permission

import "github.com/vaultcore/api/internal/server/models"

// Action names one gated operation class.
type Action string

const (
	// ActionCatalogRead covers GET endpoints on techs and projects.
	ActionCatalogRead Action = "catalog:read"
	// ActionCatalogWrite covers create, update and link operations.
	ActionCatalogWrite Action = "catalog:write"
	// ActionCatalogDelete covers delete operations.
	ActionCatalogDelete Action = "catalog:delete"
)

// Allowed reports whether a role may perform an action. Unknown roles or
// actions are denied.
func Allowed(role models.Role, action Action) bool {
	switch action {
	case ActionCatalogRead:
		return role.Valid()
	case ActionCatalogWrite:
		return role == models.RoleAdmin || role == models.RoleEditor
	case ActionCatalogDelete:
		return role == models.RoleAdmin
	}
	return false
}
