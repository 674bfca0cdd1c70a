package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vaultcore/api/internal/dbx"
	"github.com/vaultcore/api/internal/server/models"
	"github.com/vaultcore/api/internal/server/repositories/repomanager"
)

// CatalogService manages the technology and project catalog, including the
// many-to-many links between projects and techs.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

func (s *CatalogService) CreateTech(ctx context.Context, name string, description *string) (*models.Tech, error) {
	repo := s.repomanager.Techs(s.db)
	tech, err := repo.Create(ctx, &models.Tech{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("error creating tech: %w", err)
	}
	return tech, nil
}

func (s *CatalogService) GetTech(ctx context.Context, id int64) (*models.Tech, error) {
	return s.repomanager.Techs(s.db).Get(ctx, id)
}

func (s *CatalogService) ListTechs(ctx context.Context) ([]*models.Tech, error) {
	return s.repomanager.Techs(s.db).List(ctx)
}

func (s *CatalogService) UpdateTech(ctx context.Context, id int64, name, description *string) (*models.Tech, error) {
	return s.repomanager.Techs(s.db).Update(ctx, id, name, description)
}

func (s *CatalogService) DeleteTech(ctx context.Context, id int64) error {
	return s.repomanager.Techs(s.db).Delete(ctx, id)
}

// CreateProject creates a project and links the given techs in a single
// transaction, so a bad tech ID leaves no half-created project behind.
func (s *CatalogService) CreateProject(ctx context.Context, name string, description *string, techIDs []int64) (*models.Project, error) {
	var project *models.Project
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)
		p, err := repo.Create(ctx, &models.Project{Name: name, Description: description})
		if err != nil {
			return err
		}
		if len(techIDs) > 0 {
			if err := repo.LinkTechs(ctx, p.ID, techIDs); err != nil {
				return err
			}
		}
		p.Techs, err = repo.ListTechs(ctx, p.ID)
		if err != nil {
			return err
		}
		project = p
		return nil
	}); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *CatalogService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	repo := s.repomanager.Projects(s.db)
	project, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Techs, err = repo.ListTechs(ctx, id)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *CatalogService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	repo := s.repomanager.Projects(s.db)
	list, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Techs, err = repo.ListTechs(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateProject applies the non-nil fields and, when techIDs is non-nil,
// attaches the given techs. Passing an empty non-nil slice links nothing but
// still reloads the tech list.
func (s *CatalogService) UpdateProject(ctx context.Context, id int64, name, description *string, techIDs []int64) (*models.Project, error) {
	var project *models.Project
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)
		p, err := repo.Update(ctx, id, name, description)
		if err != nil {
			return err
		}
		if len(techIDs) > 0 {
			if err := repo.LinkTechs(ctx, id, techIDs); err != nil {
				return err
			}
		}
		p.Techs, err = repo.ListTechs(ctx, id)
		if err != nil {
			return err
		}
		project = p
		return nil
	}); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *CatalogService) DeleteProject(ctx context.Context, id int64) error {
	return s.repomanager.Projects(s.db).Delete(ctx, id)
}
