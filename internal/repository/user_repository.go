package repository

import (
	"fmt"
	"sort"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// UserRepository defines access to the roster loaded at startup.
type UserRepository interface {
	Create(user *domain.User) error
	GetByUsername(username string) (*domain.User, error)
	List() []*domain.User
	ListByRole(role domain.Role) []*domain.User
}

type userRepository struct {
	byName map[string]*domain.User
}

// NewUserRepository returns an in-memory implementation.
func NewUserRepository() UserRepository {
	return &userRepository{byName: make(map[string]*domain.User)}
}

func (r *userRepository) Create(user *domain.User) error {
	if _, exists := r.byName[user.Username]; exists {
		return fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
	}
	r.byName[user.Username] = user
	return nil
}

func (r *userRepository) GetByUsername(username string) (*domain.User, error) {
	user, ok := r.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

// List returns every user ordered by username.
func (r *userRepository) List() []*domain.User {
	result := make([]*domain.User, 0, len(r.byName))
	for _, user := range r.byName {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result
}

func (r *userRepository) ListByRole(role domain.Role) []*domain.User {
	var result []*domain.User
	for _, user := range r.List() {
		if user.Role == role {
			result = append(result, user)
		}
	}
	return result
}
