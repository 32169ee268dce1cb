package ports

import (
	"context"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a user. A duplicate identifier yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	// FindByUsernameAndRole returns the first user registered with the given
	// username under the given role.
	FindByUsernameAndRole(ctx context.Context, username string, role domain.Role) (*domain.User, error)
}
