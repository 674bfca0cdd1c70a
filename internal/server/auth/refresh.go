package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/vaultcore/api/internal/server/models"
)

// NewRefreshToken builds an unpersisted ledger record for userID. The opaque
// value is a random UUIDv4 (122 bits of entropy); storing it is the
// repository's job.
func NewRefreshToken(userID int64, ttl time.Duration) models.RefreshToken {
	now := time.Now()
	return models.RefreshToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Active:    true,
	}
}
