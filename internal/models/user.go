// ABOUTME: User account model.
// ABOUTME: Accounts own every tracked record; password hashes are bcrypt.
package models

import "time"

// User is an ecoeats account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a User with the current timestamp. The ID is assigned on insert.
func NewUser(username string) *User {
	return &User{
		Username:  username,
		CreatedAt: time.Now(),
	}
}

// CanLogin reports whether the account has a password set.
func (u *User) CanLogin() bool {
	return u.PasswordHash != ""
}
