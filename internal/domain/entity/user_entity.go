package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never leave the application layer.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string `json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserChanges carries a partial update. Nil fields are left untouched.
type UserChanges struct {
	Name     *string
	Email    *string
	Password *string
}
