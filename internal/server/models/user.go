// Package models defines the server-side data models persisted in the database.
package models

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// User is an account. PasswordHash is the bcrypt hash of the password; the
// plaintext is never stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}
