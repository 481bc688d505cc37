package ports

import "context"

// RegisterInput carries the attributes required to create an account.
// The plaintext password lives only for the duration of the call.
type RegisterInput struct {
	Username  string
	Password  string
	Firstname string
	Lastname  string
	Country   string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) (string, error)
}

// PasswordHasher produces and verifies salted one-way password digests.
// Verify reports false for malformed digests rather than returning an error.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) bool
}

// LoginThrottle rate-limits authentication attempts per username.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}
