package models

import "time"

// RefreshToken is one row of the refresh token ledger. Rows are never
// deleted; redeeming a token flips Active to false so the history doubles as
// a replay-detection trail.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Active    bool
}
