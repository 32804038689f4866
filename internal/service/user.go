package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Nikolas7zip/shareit/internal/domain"
	"github.com/Nikolas7zip/shareit/internal/repo"
)

// UserService implements business logic for user accounts.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// UserUpdate carries a partial user update; nil fields keep their current
// value.
type UserUpdate struct {
	Name  *string
	Email *string
}

// Create validates and persists a new user. A taken email surfaces as
// domain.ErrConflict from the repo.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := validateUser(user); err != nil {
		return domain.User{}, err
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// List returns all users. Always returns a non-nil slice so callers can
// safely range over it.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// Update applies a partial update to an existing user.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if err := validateUser(user); err != nil {
		return domain.User{}, err
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a user by ID.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

// validateUser enforces the account rules common to Create and Update.
// Email validation is deliberately shallow; the database enforces
// uniqueness.
func validateUser(user domain.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	email := strings.TrimSpace(user.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", domain.ErrValidation)
	}
	return nil
}
