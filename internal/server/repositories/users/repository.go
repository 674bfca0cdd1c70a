// Package users provides the account store.
package users

import (
	"context"

	"github.com/vaultcore/api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// HasRole reports whether at least one account with the given role exists.
	HasRole(ctx context.Context, role models.Role) (bool, error)
}
