package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrCannotDeleteSelf = fmt.Errorf("%w: admins cannot delete their own account", ErrBadRequest)

var userSearchFields = []string{"name", "email"}

// UserService handles user administration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput represents a partial user update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *models.Role
}

// List returns users matching params
func (s *UserService) List(ctx context.Context, params map[string][]string) (*Page[models.User], error) {
	d, err := query.Build(params, userSearchFields)
	if err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.List(ctx, d)
	if err != nil {
		return nil, wrapQueryError("failed to list users", err)
	}

	return &Page[models.User]{Items: users, Total: total, Page: d.Page, Limit: d.Limit}, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Update applies a partial update to a user
func (s *UserService) Update(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		user.Name = name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if err := emailFree(ctx, s.userRepo, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, validationError("invalid role %q", *input.Role)
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete soft deletes a user. The acting admin cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, p access.Principal, id uint64) error {
	if p.ID == id {
		return ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
