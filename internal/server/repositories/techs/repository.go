// Package techs provides the catalog store for technologies.
package techs

import (
	"context"

	"github.com/vaultcore/api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tech *models.Tech) (*models.Tech, error)
	Get(ctx context.Context, id int64) (*models.Tech, error)
	List(ctx context.Context) ([]*models.Tech, error)
	// Update applies the non-nil fields and returns the updated row.
	Update(ctx context.Context, id int64, name *string, description *string) (*models.Tech, error)
	Delete(ctx context.Context, id int64) error
}
