package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vaultcore/api/internal/common"
	"github.com/vaultcore/api/internal/dbx"
	"github.com/vaultcore/api/internal/server/models"
)

// PostgresRepository implements project storage over a dbx.DBTX (*sql.DB or
// *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO projects (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, project.Name, project.Description).Scan(&project.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	query := `
		SELECT id, name, description FROM projects
		WHERE id = $1
	`
	project := &models.Project{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&project.ID, &project.Name, &project.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `
		SELECT id, name, description FROM projects
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		var item models.Project
		if err := rows.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, name *string, description *string) (*models.Project, error) {
	query := `
		UPDATE projects
		SET name = COALESCE($2, name), description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description
	`
	project := &models.Project{}
	if err := r.db.QueryRowContext(ctx, query, id, name, description).Scan(&project.ID, &project.Name, &project.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM projects
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// LinkTechs inserts join rows for (projectID, techID) pairs. ON CONFLICT DO
// NOTHING keeps the call idempotent; the composite primary key guarantees
// uniqueness of each pair.
func (r *PostgresRepository) LinkTechs(ctx context.Context, projectID int64, techIDs []int64) error {
	query := `
		INSERT INTO project_techs (project_id, tech_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, tech_id) DO NOTHING
	`
	for _, techID := range techIDs {
		if _, err := r.db.ExecContext(ctx, query, projectID, techID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return common.ErrNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListTechs(ctx context.Context, projectID int64) ([]models.Tech, error) {
	query := `
		SELECT t.id, t.name, t.description
		FROM techs t
		JOIN project_techs pt ON pt.tech_id = t.id
		WHERE pt.project_id = $1
		ORDER BY t.id
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to select project techs: %w", err)
	}
	defer rows.Close()

	var result []models.Tech
	for rows.Next() {
		var item models.Tech
		if err := rows.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
