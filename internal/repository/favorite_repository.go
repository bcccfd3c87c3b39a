package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eventhub/internal/model"
)

// FavoriteRepository defines favorite persistence operations.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	DeleteByUserAndEvent(ctx context.Context, userID, eventID uint) error
	DeleteByEvent(ctx context.Context, eventID uint) error
	ExistsByUserAndEvent(ctx context.Context, userID, eventID uint) (bool, error)
	ExistsByUserAndEventForUpdate(ctx context.Context, userID, eventID uint) (bool, error)
	// WithTransaction runs fn inside one database transaction; all three
	// repositories passed to fn are bound to that transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, favorites FavoriteRepository, events EventRepository, users UserRepository) error) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create inserts a favorite row. The composite unique index on
// (user_id, event_id) rejects duplicates.
func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// DeleteByUserAndEvent removes the favorite row for a (user, event) pair.
func (r *favoriteRepository) DeleteByUserAndEvent(ctx context.Context, userID, eventID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&model.Favorite{}).Error
}

// DeleteByEvent removes all favorite rows of an event.
func (r *favoriteRepository) DeleteByEvent(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&model.Favorite{}).Error
}

// ExistsByUserAndEvent reports whether a favorite row exists for the pair.
func (r *favoriteRepository) ExistsByUserAndEvent(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByUserAndEventForUpdate is the locking variant of ExistsByUserAndEvent.
// Under REPEATABLE READ a plain read inside a transaction sees the snapshot
// taken at its first statement; the FOR UPDATE read sees the latest committed
// row, so a toggle that waited on the event lock observes the winner's insert.
func (r *favoriteRepository) ExistsByUserAndEventForUpdate(ctx context.Context, userID, eventID uint) (bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// WithTransaction executes fn within a database transaction.
func (r *favoriteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, favorites FavoriteRepository, events EventRepository, users UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &favoriteRepository{db: tx}, &eventRepository{db: tx}, &userRepository{db: tx})
	})
}
