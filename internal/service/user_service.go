package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
	"eventhub/internal/repository"
)

const bcryptCost = 12

// UserService handles registration, authentication and availability checks.
type UserService interface {
	Register(ctx context.Context, username, email, rawPassword string, role model.Role) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Authenticate(ctx context.Context, username, rawPassword string) (*model.User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over the user repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password. The two
// existence checks race with concurrent registrations; the unique constraints
// on username and email are the authoritative backstop, surfaced here as the
// same conflict class via gorm.ErrDuplicatedKey.
func (s *userService) Register(ctx context.Context, username, email, rawPassword string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username existence: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email existence: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// FindByUsername looks up a user by username.
func (s *userService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return user, nil
}

// FindByEmail looks up a user by email.
func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// Authenticate verifies the password of the named user. Unknown username and
// wrong password both return ErrInvalidCredentials so callers cannot tell
// which check failed.
func (s *userService) Authenticate(ctx context.Context, username, rawPassword string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rawPassword)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// IsUsernameAvailable reports whether the username is free.
func (s *userService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check username existence: %w", err)
	}
	return !taken, nil
}

// IsEmailAvailable reports whether the email is free.
func (s *userService) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email existence: %w", err)
	}
	return !taken, nil
}
