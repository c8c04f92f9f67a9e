package entity

import "time"

// User represents an account that can sign in: an employee submitting
// bills or an admin reviewing them. The password hash never leaves the
// server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user reviews bills rather than submits them.
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}
