package techs

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

// PostgresRepository implements tech storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tech *models.Tech) (*models.Tech, error) {
	query := `
		INSERT INTO techs (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, tech.Name, tech.Description).Scan(&tech.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tech, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Tech, error) {
	query := `
		SELECT id, name, description FROM techs
		WHERE id = $1
	`
	tech := &models.Tech{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&tech.ID, &tech.Name, &tech.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tech, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Tech, error) {
	query := `
		SELECT id, name, description FROM techs
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select techs: %w", err)
	}
	defer rows.Close()

	var result []*models.Tech
	for rows.Next() {
		var item models.Tech
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

// Update applies the non-nil fields via COALESCE so a partial update leaves
// the other columns untouched.
func (r *PostgresRepository) Update(ctx context.Context, id int64, name *string, description *string) (*models.Tech, error) {
	query := `
		UPDATE techs
		SET name = COALESCE($2, name), description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description
	`
	tech := &models.Tech{}
	if err := r.db.QueryRowContext(ctx, query, id, name, description).Scan(&tech.ID, &tech.Name, &tech.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tech, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM techs
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
