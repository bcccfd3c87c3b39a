package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eventhub/internal/model"
)

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error)
	UpdateFavoritesCount(ctx context.Context, id uint, count int) error
	List(ctx context.Context) ([]model.Event, error)
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID.
func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate finds an event by ID with a row-level lock. Inside a
// transaction this serializes concurrent favorite toggles on the same event.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateFavoritesCount sets the denormalized favorites counter.
func (r *eventRepository) UpdateFavoritesCount(ctx context.Context, id uint, count int) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		Update("favorites_count", count).Error
}

// List lists all events.
func (r *eventRepository) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).Order("date").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Delete removes an event by ID.
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}
