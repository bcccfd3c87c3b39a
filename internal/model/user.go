package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the authorization role assigned to a user.
type Role string

const (
	// RoleAdmin grants event management permissions.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the default role for registered users.
	RoleUser Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;default:'USER'"`
	Version      int64     `json:"-" gorm:"not null;default:0"` // optimistic concurrency counter
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeUpdate bumps the optimistic version counter.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.Version++
	return nil
}
