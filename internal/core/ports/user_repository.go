package ports

import (
	"context"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts. Every
// fetch returns the account with its roles fully loaded; callers never issue
// a second query to resolve roles.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// Create assigns the user its identifier and returns the stored account.
	// A uniqueness violation on email yields domain.ErrUserExists, covering
	// concurrent creates that both passed the existence check.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces the stored account; email collisions yield
	// domain.ErrUserExists.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete returns domain.ErrUserNotFound when the id is absent.
	Delete(ctx context.Context, id int64) error
}

// RoleRepository reads role reference data.
type RoleRepository interface {
	// FindByName returns domain.ErrRoleNotFound when the role is unknown.
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}
