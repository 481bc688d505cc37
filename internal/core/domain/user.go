package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// User models a registered principal. Username is unique and immutable after
// creation; PasswordHash never leaves the service.
type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Firstname    string    `json:"firstname,omitempty"`
	Lastname     string    `json:"lastname,omitempty"`
	Country      string    `json:"country,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Authority returns the single authority string derived from the user's role.
func (u *User) Authority() string {
	return u.Role
}
