package models

import (
	"time"

	"github.com/google/uuid"
)

// GuestUserID is the identity issued by guest logins. Guests have no stored
// user row but otherwise see the same shared entry set as registered users.
const GuestUserID = "guest"

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique login handle, case-sensitive as stored.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a User with a freshly generated identity.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
