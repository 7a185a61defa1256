package user

import (
	"context"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/log"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	// IdentityResolver turns a bearer token into the user it was issued for.
	IdentityResolver interface {
		Resolve(ctx context.Context, token string) (*entities.User, error)
		// ResolveOptional returns nil for an absent or unusable token.
		ResolveOptional(ctx context.Context, token string) *entities.User
	}

	identityResolver struct {
		jwtService     jwt.JWTService
		userRepository UserRepository
	}
)

func NewIdentityResolver(jwtService jwt.JWTService, userRepository UserRepository) IdentityResolver {
	return &identityResolver{
		jwtService:     jwtService,
		userRepository: userRepository,
	}
}

func (r *identityResolver) Resolve(ctx context.Context, token string) (*entities.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrUnauthorized
	}
	username, err := r.jwtService.ValidateToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := r.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, errors.Wrap(err, "resolve identity")
	}
	return user, nil
}

func (r *identityResolver) ResolveOptional(ctx context.Context, token string) *entities.User {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	user, err := r.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			log.L.Warn("optional identity lookup failed", zap.Error(err))
		}
		return nil
	}
	return user
}
