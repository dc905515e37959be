package entity

import "time"

// User is the identity record behind the authentication flow.
type User struct {
	ID        int64
	Username  string
	Email     string
	Phone     string // empty when the user has no phone on file
	Password  string // bcrypt hash, never plaintext
	CreatedAt time.Time
}

// HasPhone reports whether the sms channel applies to this user.
func (u User) HasPhone() bool {
	return u.Phone != ""
}

// NewUser carries the fields persisted at signup.
type NewUser struct {
	ID       int64
	Username string
	Email    string
	Phone    string
	Password string // bcrypt hash
}

// NewPasscode carries the fields of a freshly minted one-time passcode.
type NewPasscode struct {
	ID        int64
	UserID    int64
	Code      string
	Channel   Channel
	ExpiresAt time.Time
}
