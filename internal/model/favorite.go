package model

import "time"

// Favorite links a user to an event they marked as favorite.
// It stores raw foreign-key scalars instead of object references to avoid
// bidirectional load cycles. The composite unique index guarantees at most
// one row per (user, event) pair.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_event"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_user_event;index"`
	CreatedAt time.Time `json:"created_at"`
}
