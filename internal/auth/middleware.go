package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/project-tracker/internal/domain"
	"github.com/spec-kit/project-tracker/internal/repository"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

type principalKey struct{}

// Resolver loads the acting user named by a command record.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver constructs a resolver over the roster.
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the user or an UnknownUser error.
func (r *Resolver) Resolve(username string) (*domain.User, error) {
	user, err := r.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnknownUser(username)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// WithPrincipal stores the acting user on ctx.
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFromContext extracts the acting user.
func PrincipalFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(principalKey{}).(*domain.User)
	return user, ok && user != nil
}
