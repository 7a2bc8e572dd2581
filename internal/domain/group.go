package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCapacityBelowBookings is returned when a group edit would lower
// max_members below the number of existing bookings.
var ErrCapacityBelowBookings = errors.New("capacity below existing bookings")

// scheduleLayout combines a group's start date and time into one instant.
const scheduleLayout = "2006-01-02T15:04"

// Group represents a scheduled meetup with an owner and a seat capacity.
// swagger:model Group
type Group struct {
	ID          string    `json:"id"`
	OwnerEmail  string    `json:"owner_email"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	MeetingType string    `json:"meeting_type"`
	StartDate   string    `json:"start_date"` // YYYY-MM-DD
	StartTime   string    `json:"start_time"` // HH:MM, 24h
	MaxMembers  int       `json:"max_members"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StartInstant combines StartDate and StartTime into a single time.Time
// for comparison. The fields are stored as the client supplied them, so
// parsing can fail for rows that predate validation.
func (g *Group) StartInstant() (time.Time, error) {
	return time.Parse(scheduleLayout, g.StartDate+"T"+g.StartTime)
}

// GroupPatch carries a partial group update. Nil fields are left
// untouched by the store.
type GroupPatch struct {
	Title       *string
	Category    *string
	MeetingType *string
	StartDate   *string
	StartTime   *string
	MaxMembers  *int
	Description *string
	Location    *string
	ImageURL    *string
}

// Empty reports whether the patch changes nothing.
func (p GroupPatch) Empty() bool {
	return p.Title == nil && p.Category == nil && p.MeetingType == nil &&
		p.StartDate == nil && p.StartTime == nil && p.MaxMembers == nil &&
		p.Description == nil && p.Location == nil && p.ImageURL == nil
}

// GroupWithBookings bundles a group with its current bookings.
type GroupWithBookings struct {
	Group    *Group     `json:"group"`
	Bookings []*Booking `json:"bookings"`
}

// GroupDetail is the read-time projection served for a single group:
// the group, its bookings, and whether the requesting user already
// holds one of them.
type GroupDetail struct {
	Group         *Group     `json:"group"`
	Bookings      []*Booking `json:"bookings"`
	AlreadyBooked bool       `json:"already_booked"`
}

// GroupRepository defines the interface for group storage.
type GroupRepository interface {
	Create(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
	ListByOwnerEmail(ctx context.Context, ownerEmail string) ([]*Group, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Group, error)
	// Update applies the patch atomically. When the patch lowers
	// MaxMembers it locks the group row, counts current bookings, and
	// returns ErrCapacityBelowBookings without applying any field if
	// the new maximum is below that count.
	Update(ctx context.Context, id string, patch GroupPatch) (*Group, error)
	Delete(ctx context.Context, id string) error
}

// GroupCache caches the group listing for cheap reads of hot, rarely
// changing views such as the featured list. Implementations are best
// effort: a miss or failure must never break the read path.
type GroupCache interface {
	GetGroups(ctx context.Context) (groups []*Group, ok bool, err error)
	SetGroups(ctx context.Context, groups []*Group) error
	Invalidate(ctx context.Context) error
}

// GroupService defines the group lifecycle operations.
type GroupService interface {
	Create(ctx context.Context, g *Group) error
	List(ctx context.Context) ([]*Group, error)
	// Featured returns groups whose start instant is strictly after
	// now, newest group first, truncated to a small display count.
	Featured(ctx context.Context, now time.Time) ([]*Group, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*GroupWithBookings, error)
	Detail(ctx context.Context, groupID, requesterEmail string) (*GroupDetail, error)
	Update(ctx context.Context, groupID string, patch GroupPatch) (*Group, error)
	Delete(ctx context.Context, groupID string) error
}
