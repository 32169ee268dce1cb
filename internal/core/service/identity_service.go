package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// IdentityService implements registration, login and user lookup.
type IdentityService struct {
	repo      ports.UserRepository
	limiter   ports.LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewIdentityService(repo ports.UserRepository, limiter ports.LoginLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &IdentityService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || in.Role == "" || in.Identifier == "" {
		return nil, domain.NewValidationError("username, password, role and identifier are required")
	}
	if !in.Role.Valid() {
		return nil, domain.NewValidationError("role must be one of: patient doctor pharmacist")
	}
	if in.AssertedRole != "" && in.AssertedRole != in.Role {
		return nil, domain.NewValidationError("role does not match the requested registration role")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.Validationf("password must be at most %d bytes", maxPasswordBytes)
	}
	if !domain.IsIdentifier(in.Identifier) {
		return nil, domain.Validationf("identifier must be %d uppercase letters or digits", domain.IdentifierLength)
	}

	if _, err := s.repo.FindByIdentifier(ctx, in.Identifier); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.Validationf("password must be at most %d bytes", maxPasswordBytes)
	}
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		Age:          in.Age,
		Gender:       in.Gender,
		Address:      in.Address,
		Phone:        in.Phone,
		Identifier:   in.Identifier,
		CreatedAt:    time.Now().UTC(),
	}

	// The unique index on identifier still rejects a concurrent insert that
	// slipped past the lookup above.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("identifier", created.Identifier).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *IdentityService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.LoginIdentifier == "" || in.Password == "" {
		return nil, domain.NewValidationError("login identifier and password are required")
	}

	byIdentifier := domain.IsIdentifier(in.LoginIdentifier)
	if !byIdentifier && !in.Role.Valid() {
		return nil, domain.NewValidationError("role must be one of: patient doctor pharmacist")
	}

	key := throttleKey(in, byIdentifier)
	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("login limiter check failed, continuing")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	var (
		user *domain.User
		err  error
	)
	if byIdentifier {
		user, err = s.repo.FindByIdentifier(ctx, in.LoginIdentifier)
	} else {
		user, err = s.repo.FindByUsernameAndRole(ctx, in.LoginIdentifier, in.Role)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		if s.limiter != nil {
			if lerr := s.limiter.RecordFailure(ctx, key); lerr != nil {
				s.log.Warn().Err(lerr).Str("key", key).Msg("failed to record login failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if lerr := s.limiter.Reset(ctx, key); lerr != nil {
			s.log.Warn().Err(lerr).Str("key", key).Msg("failed to reset login attempts")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *IdentityService) GetUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if identifier == "" {
		return nil, domain.NewValidationError("identifier is required")
	}
	return s.repo.FindByIdentifier(ctx, identifier)
}

func (s *IdentityService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username":   user.Username,
		"role":       string(user.Role),
		"identifier": user.Identifier,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// throttleKey scopes failed-login counters. Identifier logins ignore the role,
// so their key does too.
func throttleKey(in ports.LoginInput, byIdentifier bool) string {
	if byIdentifier {
		return "uid:" + in.LoginIdentifier
	}
	return "user:" + string(in.Role) + ":" + in.LoginIdentifier
}
