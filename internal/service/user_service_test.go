package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "alice",
			email:    "new@example.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:     "email already taken",
			username: "newuser",
			email:    "alice@example.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "newuser").Return(false, nil)
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "unique constraint race maps to conflict",
			username: "alice",
			email:    "alice@example.com",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
				m.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.Register(context.Background(), tt.username, tt.email, tt.password, model.RoleUser)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	assert.NoError(t, err)

	alice := &model.User{ID: 1, Username: "alice", PasswordHash: string(hashed), Role: model.RoleUser}

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantUser  bool
	}{
		{
			name:     "successful authentication",
			username: "alice",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			wantUser: true,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			wantUser: false,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.Authenticate(context.Background(), tt.username, tt.password)

			if tt.wantUser {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			} else {
				// Wrong password and unknown user are indistinguishable.
				assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
				assert.Nil(t, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Availability(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)
	mockRepo.On("ExistsByUsername", mock.Anything, "free").Return(false, nil)
	mockRepo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)
	mockRepo.On("ExistsByEmail", mock.Anything, "free@example.com").Return(false, nil)

	service := NewUserService(mockRepo)
	ctx := context.Background()

	available, err := service.IsUsernameAvailable(ctx, "alice")
	assert.NoError(t, err)
	assert.False(t, available)

	available, err = service.IsUsernameAvailable(ctx, "free")
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = service.IsEmailAvailable(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.False(t, available)

	available, err = service.IsEmailAvailable(ctx, "free@example.com")
	assert.NoError(t, err)
	assert.True(t, available)

	mockRepo.AssertExpectations(t)
}
