package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
)

func TestEventService_CreateEvent_DefaultsStatus(t *testing.T) {
	favorites, events, _ := newFavoriteMocks()
	events.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).Return(nil)

	service := NewEventService(events, favorites, nil)

	created, err := service.CreateEvent(context.Background(), &model.Event{
		Title: "Open Air Cinema Night",
		Date:  time.Now().AddDate(0, 0, 7),
	})
	assert.NoError(t, err)
	assert.Equal(t, model.EventStatusUpcoming, created.Status)

	events.AssertExpectations(t)
}

func TestEventService_GetEvent(t *testing.T) {
	favorites, events, _ := newFavoriteMocks()
	events.On("FindByID", mock.Anything, uint(42)).Return(&model.Event{ID: 42, Title: "City Marathon"}, nil)
	events.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewEventService(events, favorites, nil)
	ctx := context.Background()

	event, err := service.GetEvent(ctx, 42)
	assert.NoError(t, err)
	assert.Equal(t, "City Marathon", event.Title)

	_, err = service.GetEvent(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	events.AssertExpectations(t)
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Run("removes favorites and event in one transaction", func(t *testing.T) {
		favorites, events, _ := newFavoriteMocks()
		events.On("FindByID", mock.Anything, uint(42)).Return(&model.Event{ID: 42}, nil)
		favorites.On("DeleteByEvent", mock.Anything, uint(42)).Return(nil)
		events.On("Delete", mock.Anything, uint(42)).Return(nil)

		service := NewEventService(events, favorites, nil)
		assert.NoError(t, service.DeleteEvent(context.Background(), 42))

		favorites.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("unknown event", func(t *testing.T) {
		favorites, events, _ := newFavoriteMocks()
		events.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewEventService(events, favorites, nil)
		assert.ErrorIs(t, service.DeleteEvent(context.Background(), 99), apperrors.ErrEventNotFound)
	})
}
