package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/ports"
)

// UserService implements the account lifecycle: creation, reads, updates and
// deletion under the email-uniqueness and role-consistency invariants.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher, logger: logger}
}

// Create hashes the password, resolves the single role, and stores the
// account. LabID is mandatory for TECHNICIAN and cleared for any other role;
// IsActive defaults to 'Y'.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, input.Role)
	if err != nil {
		return nil, err
	}

	labID := input.LabID
	if input.Role == domain.RoleTechnician {
		if labID == nil {
			return nil, fmt.Errorf("%w: lab id is required for a TECHNICIAN role", domain.ErrInvalidArgument)
		}
	} else {
		// Non-tenant roles structurally cannot carry a lab scope.
		labID = nil
	}

	isActive := input.IsActive
	if isActive == "" {
		isActive = domain.ActiveYes
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     isActive,
		LabID:        labID,
		Roles:        []domain.Role{*role},
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", role.Name).Msg("user created")
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListAll returns PATIENT and TECHNICIAN accounts; ADMIN and
// INTERNAL_SERVICE accounts are excluded from the administrative listing.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx, domain.RolePatient, domain.RoleTechnician)
}

// ListPatients returns accounts holding the PATIENT role.
func (s *UserService) ListPatients(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx, domain.RolePatient)
}

func (s *UserService) list(ctx context.Context, roleNames ...string) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.HasAnyRole(roleNames...) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// Update replaces name, email, active flag and role, and re-hashes the
// password only when a non-blank one is supplied. It does not re-validate
// LabID against the new role; keeping lab scope consistent after a role
// change is the caller's responsibility.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Email != input.Email {
		if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	existing.FullName = input.FullName
	existing.Email = input.Email

	if input.IsActive != "" {
		existing.IsActive = input.IsActive
	}

	if strings.TrimSpace(input.Password) != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	role, err := s.roles.FindByName(ctx, input.Role)
	if err != nil {
		return nil, err
	}
	existing.Roles = []domain.Role{*role}

	updated, err := s.users.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes the account after confirming it exists.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
