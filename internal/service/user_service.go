package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expensetracker/internal/model"
	"expensetracker/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfDelete   = errors.New("cannot delete your own account")
	ErrUserConflict = errors.New("username or email already in use by another user")
)

// UserService covers admin-side user management
type UserService interface {
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id, callerID uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser applies an admin edit. The unique indexes catch a username or
// email already held by another account.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	existing.Username = strings.ToLower(strings.TrimSpace(req.Username))
	existing.Email = strings.ToLower(strings.TrimSpace(req.Email))
	existing.Role = req.Role
	existing.FirstName = strings.TrimSpace(req.FirstName)
	existing.LastName = strings.TrimSpace(req.LastName)
	existing.Gender = req.Gender
	existing.Phone = req.Phone

	if err := s.userRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserConflict
		}
		return nil, fmt.Errorf("failed to update user in repo: %w", err)
	}
	return existing, nil
}

// DeleteUser removes a user; their expenses are cascaded away by the store.
// An admin cannot delete their own account through this path.
func (s *userService) DeleteUser(ctx context.Context, id, callerID uuid.UUID) error {
	if id == callerID {
		return ErrSelfDelete
	}

	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if existing == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user in repo: %w", err)
	}
	return nil
}
