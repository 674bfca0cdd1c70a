// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, and issuing/refreshing JWTs
// plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vaultcore/api/internal/common"
	"github.com/vaultcore/api/internal/dbx"
	"github.com/vaultcore/api/internal/server/auth"
	"github.com/vaultcore/api/internal/server/config"
	"github.com/vaultcore/api/internal/server/models"
	"github.com/vaultcore/api/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication-related operations:
// - Register: create users with hashed passwords
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
// - Authorize: resolve an access token to the user behind it
type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// Register creates a new user with the given username, email, password and
// role. The password is stored only as a bcrypt hash. A taken username or
// email surfaces as ErrUsernameTaken / ErrEmailTaken; both match
// common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}
	user := &models.User{Username: username, Email: email, PasswordHash: hash, Role: role}
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}
	return u, nil
}

// Login verifies the provided password against the stored hash and, on
// success, returns a new TokenPair. An unknown username still runs a bcrypt
// comparison against a fixed dummy hash so both outcomes take comparable
// time.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.CheckPassword(password, auth.DummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return s.generateTokenPair(ctx, user.ID, s.db)
}

// Refresh validates a refresh token, rotates it transactionally, and returns
// a fresh TokenPair. The spent token is deactivated, never deleted, so the
// ledger keeps a record of every credential ever issued. Exactly one of two
// concurrent redemptions of the same token wins; the loser sees
// common.ErrTokenRevoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error searching refresh token: %v", err)
	}
	if !token.Active {
		return nil, common.ErrTokenRevoked
	}
	if token.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Deactivate(ctx, refreshToken); err != nil {
			// The conditional update matched no active row: somebody else
			// redeemed the token between our read and this write.
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrTokenRevoked
			}
			return fmt.Errorf("error deactivating refresh token: %v", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Authorize parses and verifies an access token and loads the user it was
// issued to. Token defects surface as the auth sentinels from ParseAccessToken;
// a subject that no longer resolves to a user yields ErrAccountNotFound.
func (s *AuthService) Authorize(ctx context.Context, accessToken string) (*models.User, error) {
	subject, err := auth.ParseAccessToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, common.ErrTokenMalformed
	}
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, userID int64, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(strconv.FormatInt(userID, 10), s.jwtSecret, s.accessTokenTTL)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh := auth.NewRefreshToken(userID, s.refreshTokenTTL)
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, &refresh); err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh.Token}, nil
}
