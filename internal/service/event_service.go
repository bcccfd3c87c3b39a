package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eventhub/internal/cache"
	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
	"eventhub/internal/repository"
)

const eventCacheTTL = 5 * time.Minute

// EventService handles event management. Creation and deletion are reserved
// for the ADMIN role, enforced at the route level.
type EventService interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error)
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type eventService struct {
	eventRepo    repository.EventRepository
	favoriteRepo repository.FavoriteRepository
	cache        *cache.Client
}

// NewEventService builds an EventService with repositories and cache.
func NewEventService(eventRepo repository.EventRepository, favoriteRepo repository.FavoriteRepository, cache *cache.Client) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
	}
}

func eventCacheKey(id uint) string {
	return fmt.Sprintf("event:%d", id)
}

func (s *eventService) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.Status == "" {
		event.Status = model.EventStatusUpcoming
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	if data, _ := s.cache.Get(ctx, eventCacheKey(id)); data != nil {
		var cached model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	if payload, err := json.Marshal(event); err == nil {
		_ = s.cache.Set(ctx, eventCacheKey(id), payload, eventCacheTTL)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.List(ctx)
}

// DeleteEvent removes the event together with its favorite rows in one
// transaction, then drops the cache entries.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	err := s.favoriteRepo.WithTransaction(ctx, func(ctx context.Context, favorites repository.FavoriteRepository, events repository.EventRepository, users repository.UserRepository) error {
		if _, err := events.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("find event: %w", err)
		}
		if err := favorites.DeleteByEvent(ctx, id); err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := events.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, eventCacheKey(id), favoritesCountCacheKey(id))
	return nil
}
