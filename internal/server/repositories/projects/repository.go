// Package projects provides the catalog store for projects and their links
// to technologies.
package projects

import (
	"context"

	"github.com/vaultcore/api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	// Update applies the non-nil fields and returns the updated row.
	Update(ctx context.Context, id int64, name *string, description *string) (*models.Project, error)
	Delete(ctx context.Context, id int64) error

	// LinkTechs attaches the given techs to the project; already linked pairs
	// are left alone.
	LinkTechs(ctx context.Context, projectID int64, techIDs []int64) error
	// ListTechs returns the techs linked to a project.
	ListTechs(ctx context.Context, projectID int64) ([]models.Tech, error)
}
