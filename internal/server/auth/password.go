package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword applies a salted bcrypt hash at the default cost. The output
// string embeds the salt and cost, so verification needs no side channel.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A malformed
// hash yields false, never an error, so callers cannot branch on the reason.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyHash is a valid bcrypt hash of a random throwaway password. Login
// compares against it when the username does not exist, keeping the time
// spent on unknown-user and wrong-password paths indistinguishable.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
