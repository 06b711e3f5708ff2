package types

import "time"

// TimestampLayout renders timestamps as ISO-8601 UTC with millisecond
// precision, e.g. 2026-01-02T15:04:05.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// User represents a registered account.
// Records are append-only and never mutated after creation.
type User struct {
	// ID is assigned sequentially in insertion order, starting at 1.
	ID int `json:"id"`

	// Name is the user's display name. It is not unique.
	Name string `json:"name"`

	// Email is the unique lookup key. Matching is exact and case-sensitive.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the record was inserted.
	CreatedAt time.Time `json:"-"`
}

// PublicUser is the subset of a User returned by sign up and sign in.
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileUser is the subset of a User returned by the profile endpoint.
type ProfileUser struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Public returns the view of u that is safe to send to clients.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Profile returns the public view of u including its creation time.
func (u User) Profile() ProfileUser {
	return ProfileUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: FormatTimestamp(u.CreatedAt),
	}
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
