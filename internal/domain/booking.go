package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyBooked is returned when the user already holds a booking
// for the group.
var ErrAlreadyBooked = errors.New("already booked")

// ErrCapacityExceeded is returned when a booking would push the group
// past its max_members.
var ErrCapacityExceeded = errors.New("group capacity exceeded")

// Booking represents a user's reserved seat in a group. The group
// title, category, and meeting type are denormalized snapshots taken
// at booking time so lists render without a join. Bookings are never
// updated in place.
// swagger:model Booking
type Booking struct {
	ID            string    `json:"id"`
	GroupID       string    `json:"group_id"`
	UserEmail     string    `json:"user_email"`
	BookedAt      time.Time `json:"booked_at"`
	GroupTitle    string    `json:"group_title"`
	GroupCategory string    `json:"group_category"`
	MeetingType   string    `json:"meeting_type"`
}

// BookingWithGroup bundles a booking with its group. Group is nil when
// the group was deleted after booking; that is not an error.
type BookingWithGroup struct {
	Booking *Booking `json:"booking"`
	Group   *Group   `json:"group"`
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Create inserts the booking, holding a lock on the group row for
	// the duration of the duplicate and capacity checks. It returns
	// ErrNotFound when the group does not exist, ErrAlreadyBooked when
	// the (group, user) pair is already booked, and ErrCapacityExceeded
	// when the group is full.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByGroupAndEmail(ctx context.Context, groupID, userEmail string) (*Booking, error)
	ListByGroupID(ctx context.Context, groupID string) ([]*Booking, error)
	// ListByUserEmail returns the user's bookings, newest first.
	ListByUserEmail(ctx context.Context, userEmail string) ([]*Booking, error)
	CountByGroupID(ctx context.Context, groupID string) (int, error)
	// Delete removes the booking and reports how many records were
	// removed (0 or 1). A missing id is not an error.
	Delete(ctx context.Context, id string) (int64, error)
}

// BookingService coordinates booking creation and cancellation against
// current group state.
type BookingService interface {
	// Create validates and books a seat. The booking's GroupID and
	// UserEmail are required; a zero BookedAt is stamped with the
	// current time, and empty snapshot fields are filled from the
	// group record.
	Create(ctx context.Context, b *Booking) (*Booking, error)
	// Delete cancels a booking, reporting the number of records
	// removed so callers can tell "already gone" from "just removed".
	Delete(ctx context.Context, bookingID string) (int64, error)
	// ListForUser returns the user's bookings newest first, each
	// joined with its group via one batched lookup.
	ListForUser(ctx context.Context, userEmail string) ([]*BookingWithGroup, error)
}
