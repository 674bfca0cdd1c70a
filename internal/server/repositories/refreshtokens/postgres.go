package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultcore/api/internal/common"
	"github.com/vaultcore/api/internal/dbx"
	"github.com/vaultcore/api/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new ledger record.
func (r *PostgresRepository) Create(ctx context.Context, rec *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, created_at, expires_at, active)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.Token, rec.CreatedAt, rec.ExpiresAt, rec.Active); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

// Find returns the ledger record for the given token string.
// If not found, it returns common.ErrNotFound.
func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at, active
		FROM refresh_tokens
		WHERE token = $1
	`
	rec := &models.RefreshToken{}
	if err := r.db.QueryRowContext(ctx, query, token).Scan(
		&rec.ID, &rec.UserID, &rec.Token, &rec.CreatedAt, &rec.ExpiresAt, &rec.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Deactivate flips active to false for an active token. The "AND active"
// predicate makes the update a compare-and-swap: of two concurrent
// redemptions of the same token, only one can see an affected row.
func (r *PostgresRepository) Deactivate(ctx context.Context, token string) error {
	query := `
		UPDATE refresh_tokens
		SET active = false
		WHERE token = $1 AND active
	`
	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
