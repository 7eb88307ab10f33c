package ports

import (
	"context"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
)

// CreateUserInput carries the data needed to create an account. IsActive
// defaults to 'Y' when empty; LabID is required for TECHNICIAN and cleared
// for every other role.
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     string
	IsActive string
	LabID    *int64
}

// UpdateUserInput carries the fields an update may change. An empty Password
// leaves the stored hash untouched; an empty IsActive keeps the current flag.
type UpdateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     string
	IsActive string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// ListAll returns accounts holding PATIENT or TECHNICIAN; administrative
	// and service accounts are excluded from the listing.
	ListAll(ctx context.Context) ([]domain.User, error)
	// ListPatients returns accounts holding PATIENT.
	ListPatients(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
