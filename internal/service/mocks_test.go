package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"eventhub/internal/model"
	"eventhub/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockEventRepository is a mock implementation of repository.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) UpdateFavoritesCount(ctx context.Context, id uint, count int) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

func (m *MockEventRepository) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of
// repository.FavoriteRepository. WithTransaction runs the callback against
// the mocks themselves, so transactional behavior is exercised in-process.
type MockFavoriteRepository struct {
	mock.Mock
	Events *MockEventRepository
	Users  *MockUserRepository
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteByUserAndEvent(ctx context.Context, userID, eventID uint) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteByEvent(ctx context.Context, eventID uint) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ExistsByUserAndEvent(ctx context.Context, userID, eventID uint) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ExistsByUserAndEventForUpdate(ctx context.Context, userID, eventID uint) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, favorites repository.FavoriteRepository, events repository.EventRepository, users repository.UserRepository) error) error {
	return fn(ctx, m, m.Events, m.Users)
}
