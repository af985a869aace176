package domain

import (
	"strings"
	"time"
)

// User is a Wishlist account as persisted by the store.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	RememberDigest *string   `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Remembered reports whether the user currently holds a persistent-login digest.
func (u *User) Remembered() bool {
	return u.RememberDigest != nil
}

// NormalizeEmail returns the form an email is stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}
