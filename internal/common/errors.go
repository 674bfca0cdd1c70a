// Package common defines shared constants and sentinel errors used across
// the layers of the VaultCore API. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Credential errors. Unknown username and wrong password both map here;
	// callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound means a verified token's subject no longer resolves
	// to an account (deleted after issuance).
	ErrAccountNotFound = errors.New("account not found")

	// Registration conflicts. Both match ErrAlreadyExists so callers that do
	// not care which field collided can treat them uniformly.
	ErrUsernameTaken = fmt.Errorf("username already registered: %w", ErrAlreadyExists)
	ErrEmailTaken    = fmt.Errorf("email already registered: %w", ErrAlreadyExists)

	// Access token errors.
	ErrTokenMalformed   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")

	// Refresh token lifecycle errors.
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenRevoked  = errors.New("refresh token revoked")
)
