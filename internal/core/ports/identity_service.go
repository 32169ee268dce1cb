package ports

import (
	"context"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

// RegisterInput carries the fields of a registration request. AssertedRole is
// the role named by the calling context (the URL); it must match Role.
type RegisterInput struct {
	AssertedRole domain.Role
	Role         domain.Role
	Username     string
	Password     string
	Age          *int
	Gender       string
	Address      string
	Phone        string
	Identifier   string
}

// LoginInput carries a login attempt. LoginIdentifier is either a user
// identifier or a username; Role only applies to the username form.
type LoginInput struct {
	LoginIdentifier string
	Password        string
	Role            domain.Role
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  *domain.User
}

// IdentityService owns registration, authentication and user lookup.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
}

// LoginLimiter throttles repeated failed logins for a single key.
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
