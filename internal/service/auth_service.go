package service

import (
	"context"
	"fmt"
	"strings"

	"eventhub/internal/auth"
	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
)

// AuthService handles registration and login, issuing bearer tokens on
// successful authentication.
type AuthService interface {
	Register(ctx context.Context, username, email, rawPassword string) (*model.User, error)
	Login(ctx context.Context, usernameOrEmail, rawPassword string) (token string, user *model.User, err error)
}

type authService struct {
	users      UserService
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users UserService, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
	}
}

// Register creates a new user with the default USER role.
func (s *authService) Register(ctx context.Context, username, email, rawPassword string) (*model.User, error) {
	return s.users.Register(ctx, username, email, rawPassword, model.RoleUser)
}

// Login resolves the identifier (email when it contains an '@', username
// otherwise), verifies the password and issues a token. Unknown identifier
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, usernameOrEmail, rawPassword string) (string, *model.User, error) {
	var (
		user *model.User
		err  error
	)
	if strings.Contains(usernameOrEmail, "@") {
		user, err = s.users.FindByEmail(ctx, usernameOrEmail)
	} else {
		user, err = s.users.FindByUsername(ctx, usernameOrEmail)
	}
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	user, err = s.users.Authenticate(ctx, user.Username, rawPassword)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.Username, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}
