package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"eventhub/internal/cache"
	apperrors "eventhub/internal/errors"
	"eventhub/internal/model"
	"eventhub/internal/repository"
)

const favoritesCountCacheTTL = 30 * time.Second

// FavoriteService toggles the favorite relationship between users and events
// and maintains the denormalized counter on the event record.
type FavoriteService interface {
	ToggleFavorite(ctx context.Context, userID, eventID uint) (bool, error)
	GetFavoritesCount(ctx context.Context, eventID uint) (int, error)
	IsFavorite(ctx context.Context, userID, eventID uint) (bool, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	cache        *cache.Client
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

func favoritesCountCacheKey(eventID uint) string {
	return fmt.Sprintf("event:%d:favorites_count", eventID)
}

// ToggleFavorite flips the favorite state for the (user, event) pair inside
// one transaction and returns the new state. The FOR UPDATE lock on the event
// row serializes concurrent toggles across server instances; the unique index
// on (user_id, event_id) backstops the row itself.
func (s *favoriteService) ToggleFavorite(ctx context.Context, userID, eventID uint) (bool, error) {
	var favorite bool

	err := s.favoriteRepo.WithTransaction(ctx, func(ctx context.Context, favorites repository.FavoriteRepository, events repository.EventRepository, users repository.UserRepository) error {
		if _, err := users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("find user: %w", err)
		}

		event, err := events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}

		// Locking read: a toggle that waited on the event lock must see the
		// row the winning transaction committed, not its own stale snapshot.
		exists, err := favorites.ExistsByUserAndEventForUpdate(ctx, userID, eventID)
		if err != nil {
			return fmt.Errorf("check favorite existence: %w", err)
		}

		if exists {
			if err := favorites.DeleteByUserAndEvent(ctx, userID, eventID); err != nil {
				return fmt.Errorf("delete favorite: %w", err)
			}
			count := event.FavoritesCount - 1
			if count < 0 {
				count = 0
			}
			if err := events.UpdateFavoritesCount(ctx, eventID, count); err != nil {
				return fmt.Errorf("update favorites count: %w", err)
			}
			favorite = false
			return nil
		}

		if err := favorites.Create(ctx, &model.Favorite{UserID: userID, EventID: eventID}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// The unique index caught an insert we raced and lost. The
				// winner already created the row and counted it, so report
				// the favorited state without touching the counter.
				favorite = true
				return nil
			}
			return fmt.Errorf("create favorite: %w", err)
		}
		if err := events.UpdateFavoritesCount(ctx, eventID, event.FavoritesCount+1); err != nil {
			return fmt.Errorf("update favorites count: %w", err)
		}
		favorite = true
		return nil
	})
	if err != nil {
		return false, err
	}

	_ = s.cache.Delete(ctx, favoritesCountCacheKey(eventID))

	return favorite, nil
}

// GetFavoritesCount returns the denormalized counter of an event, served from
// cache when possible.
func (s *favoriteService) GetFavoritesCount(ctx context.Context, eventID uint) (int, error) {
	key := favoritesCountCacheKey(eventID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		if count, err := strconv.Atoi(string(data)); err == nil {
			return count, nil
		}
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrEventNotFound
		}
		return 0, fmt.Errorf("find event: %w", err)
	}

	_ = s.cache.Set(ctx, key, []byte(strconv.Itoa(event.FavoritesCount)), favoritesCountCacheTTL)

	return event.FavoritesCount, nil
}

// IsFavorite reports whether the user has marked the event as favorite.
func (s *favoriteService) IsFavorite(ctx context.Context, userID, eventID uint) (bool, error) {
	exists, err := s.favoriteRepo.ExistsByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("check favorite existence: %w", err)
	}
	return exists, nil
}
