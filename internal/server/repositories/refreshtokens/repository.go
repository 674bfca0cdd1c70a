// Package refreshtokens declares the ledger of issued refresh tokens in
// persistent storage. Rows are never deleted: redeeming a token only flips
// its active flag, leaving an audit trail of every issued credential.
package refreshtokens

import (
	"context"

	"github.com/vaultcore/api/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Create inserts a new ledger record.
	Create(ctx context.Context, rec *models.RefreshToken) error

	// Find looks up a record by its opaque token string. Returns
	// common.ErrNotFound when the token was never issued.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Deactivate flips active to false for a currently active token.
	// Returns common.ErrNotFound when no active row matched, which is what
	// the loser of a concurrent double-redeem observes.
	Deactivate(ctx context.Context, token string) error
}
