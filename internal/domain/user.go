package domain

import (
	"context"
	"time"
)

// User represents a registered user. Email is the natural key; callers
// are trusted to supply it.
// swagger:model User
type User struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// UserService defines the user profile operations.
type UserService interface {
	// Upsert creates the user or updates the existing profile for the
	// email. Returns created=true when a new record was inserted. On
	// update, empty incoming fields keep the stored values.
	Upsert(ctx context.Context, u *User) (created bool, err error)
}
