// internal/domain/user.go
package domain

import "time"

// UserProfile represents a user's profile document. It is created unverified
// at registration; EmailVerified flips to true once the auth provider
// confirms the address at the next successful login.
type UserProfile struct {
	UID           string    `db:"uid" json:"uid"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Image         *string   `db:"image" json:"image,omitempty"`
	EmailVerified bool      `db:"email_verified" json:"emailVerified"`
	Created       time.Time `db:"created" json:"created"`
}

// NewUserProfile creates a profile for a freshly registered, unverified user.
func NewUserProfile(uid, name, email string) *UserProfile {
	return &UserProfile{
		UID:     uid,
		Name:    name,
		Email:   email,
		Created: time.Now().UTC(),
	}
}

// UserPatch describes an update to a profile's mutable fields.
// Nil fields are left untouched.
type UserPatch struct {
	Name          *string
	Image         *string
	EmailVerified *bool
}
