package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultcore/api/internal/common"
	"github.com/vaultcore/api/internal/server/models"
	"github.com/vaultcore/api/internal/server/repositories/repomanager"
)

type fakeTechsRepo struct {
	createOut *models.Tech
	createErr error
	getOut    *models.Tech
	getErr    error
	listOut   []*models.Tech
	updateOut *models.Tech
	updateErr error
	deleteErr error
}

func (f *fakeTechsRepo) Create(ctx context.Context, tech *models.Tech) (*models.Tech, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeTechsRepo) Get(ctx context.Context, id int64) (*models.Tech, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTechsRepo) List(ctx context.Context) ([]*models.Tech, error) { return f.listOut, nil }
func (f *fakeTechsRepo) Update(ctx context.Context, id int64, name, description *string) (*models.Tech, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeTechsRepo) Delete(ctx context.Context, id int64) error { return f.deleteErr }

type fakeProjectsRepo struct {
	createOut *models.Project
	createErr error
	getOut    *models.Project
	getErr    error
	listOut   []*models.Project
	updateOut *models.Project
	updateErr error
	deleteErr error

	linkErr    error
	linked     map[int64][]int64
	techsByPrj map[int64][]models.Tech
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeProjectsRepo) Get(ctx context.Context, id int64) (*models.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeProjectsRepo) List(ctx context.Context) ([]*models.Project, error) {
	return f.listOut, nil
}
func (f *fakeProjectsRepo) Update(ctx context.Context, id int64, name, description *string) (*models.Project, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeProjectsRepo) Delete(ctx context.Context, id int64) error { return f.deleteErr }
func (f *fakeProjectsRepo) LinkTechs(ctx context.Context, projectID int64, techIDs []int64) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	if f.linked == nil {
		f.linked = map[int64][]int64{}
	}
	f.linked[projectID] = append(f.linked[projectID], techIDs...)
	return nil
}
func (f *fakeProjectsRepo) ListTechs(ctx context.Context, projectID int64) ([]models.Tech, error) {
	return f.techsByPrj[projectID], nil
}

func newCatalogService(t *testing.T, rm repomanager.RepositoryManager) *CatalogService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewCatalogService(db, rm)
}

func TestCreateTech(t *testing.T) {
	desc := "in-memory store"
	rm := &fakeRepoManager{}
	rm.techs = &fakeTechsRepo{createOut: &models.Tech{ID: 1, Name: "redis", Description: &desc}}
	s := newCatalogService(t, rm)

	tech, err := s.CreateTech(context.Background(), "redis", &desc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tech.ID)
}

func TestCreateTech_Duplicate(t *testing.T) {
	rm := &fakeRepoManager{}
	rm.techs = &fakeTechsRepo{createErr: common.ErrAlreadyExists}
	s := newCatalogService(t, rm)

	_, err := s.CreateTech(context.Background(), "redis", nil)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestCreateProject_LinksTechs(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{}
	rm.projects = &fakeProjectsRepo{
		createOut:  &models.Project{ID: 10, Name: "vaultcore"},
		techsByPrj: map[int64][]models.Tech{10: {{ID: 1, Name: "go"}, {ID: 2, Name: "postgres"}}},
	}
	s := NewCatalogService(db, rm)

	p, err := s.CreateProject(context.Background(), "vaultcore", nil, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, rm.projects.linked[10])
	assert.Len(t, p.Techs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_BadTechRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{}
	rm.projects = &fakeProjectsRepo{
		createOut: &models.Project{ID: 10, Name: "vaultcore"},
		linkErr:   common.ErrNotFound,
	}
	s := NewCatalogService(db, rm)

	_, err := s.CreateProject(context.Background(), "vaultcore", nil, []int64{999})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProject_IncludesTechs(t *testing.T) {
	rm := &fakeRepoManager{}
	rm.projects = &fakeProjectsRepo{
		getOut:     &models.Project{ID: 10, Name: "vaultcore"},
		techsByPrj: map[int64][]models.Tech{10: {{ID: 1, Name: "go"}}},
	}
	s := newCatalogService(t, rm)

	p, err := s.GetProject(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, p.Techs, 1)
	assert.Equal(t, "go", p.Techs[0].Name)
}

func TestGetProject_NotFound(t *testing.T) {
	rm := &fakeRepoManager{}
	rm.projects = &fakeProjectsRepo{getErr: common.ErrNotFound}
	s := newCatalogService(t, rm)

	_, err := s.GetProject(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListProjects_FillsTechs(t *testing.T) {
	rm := &fakeRepoManager{}
	rm.projects = &fakeProjectsRepo{
		listOut: []*models.Project{{ID: 1}, {ID: 2}},
		techsByPrj: map[int64][]models.Tech{
			1: {{ID: 1, Name: "go"}},
			2: {},
		},
	}
	s := newCatalogService(t, rm)

	list, err := s.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Len(t, list[0].Techs, 1)
	assert.Empty(t, list[1].Techs)
}

func TestDeleteTech_NotFound(t *testing.T) {
	rm := &fakeRepoManager{}
	rm.techs = &fakeTechsRepo{deleteErr: common.ErrNotFound}
	s := newCatalogService(t, rm)

	assert.ErrorIs(t, s.DeleteTech(context.Background(), 404), common.ErrNotFound)
}
