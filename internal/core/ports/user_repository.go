package ports

import (
	"context"

	"github.com/edutectno/identity-service/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
// Implementations must enforce username uniqueness and return
// domain.ErrUserExists on violation.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
