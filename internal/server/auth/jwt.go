// Package auth implements the credential primitives of the server: password
// hashing, signed access tokens, and opaque refresh tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaultcore/api/internal/common"
)

// Claims carries the registered claims; the account id travels in the
// Subject claim as a string so integer sizing never leaks into the wire
// format.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateAccessToken mints an HS256-signed token whose subject is userID and
// whose expiry is now+ttl.
func GenerateAccessToken(userID string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// ParseAccessToken verifies the signature and expiry of a token and returns
// the subject. Failures map onto the sentinel errors in common:
// ErrTokenExpired, ErrInvalidSignature, ErrTokenMalformed.
func ParseAccessToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidSignature
		}
		return secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrInvalidSignature
		default:
			return "", common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return "", common.ErrInvalidSignature
	}
	if claims.Subject == "" {
		return "", common.ErrTokenMalformed
	}

	return claims.Subject, nil
}
