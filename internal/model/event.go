package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus represents the lifecycle status of an event.
type EventStatus string

const (
	// EventStatusUpcoming marks events that have not taken place yet.
	EventStatusUpcoming EventStatus = "UPCOMING"
	// EventStatusCancelled marks events that were called off.
	EventStatusCancelled EventStatus = "CANCELLED"
	// EventStatusCompleted marks events that already took place.
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Event represents an event that users can mark as favorite.
// FavoritesCount is denormalized and mutated only by the favorite toggle.
type Event struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Title          string          `json:"title" gorm:"size:200;not null;index"`
	Date           time.Time       `json:"date" gorm:"not null;index"`
	Category       string          `json:"category" gorm:"size:100;index"`
	Latitude       decimal.Decimal `json:"latitude" gorm:"type:decimal(9,6)"`
	Longitude      decimal.Decimal `json:"longitude" gorm:"type:decimal(9,6)"`
	Status         EventStatus     `json:"status" gorm:"size:20;not null;default:'UPCOMING';index"`
	FavoritesCount int             `json:"favorites_count" gorm:"not null;default:0"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
