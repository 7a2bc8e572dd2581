package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crewup/internal/domain"
)

type bookingService struct {
	groupRepo   domain.GroupRepository
	bookingRepo domain.BookingRepository
}

// NewBookingService creates a BookingService with the given repositories.
func NewBookingService(groupRepo domain.GroupRepository, bookingRepo domain.BookingRepository) domain.BookingService {
	return &bookingService{
		groupRepo:   groupRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *bookingService) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.UserEmail = strings.TrimSpace(strings.ToLower(b.UserEmail))
	if b.GroupID == "" || b.UserEmail == "" {
		return nil, fmt.Errorf("%w: group id and user email are required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(b.UserEmail) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if err := domain.ValidateID(b.GroupID); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(ctx, b.GroupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	// Snapshot fields default from the group record so lists render
	// without a join even after the group changes or disappears.
	if b.GroupTitle == "" {
		b.GroupTitle = group.Title
	}
	if b.GroupCategory == "" {
		b.GroupCategory = group.Category
	}
	if b.MeetingType == "" {
		b.MeetingType = group.MeetingType
	}
	// An explicit timestamp from the caller is trusted as given.
	if b.BookedAt.IsZero() {
		b.BookedAt = time.Now()
	}

	// The repository re-runs the duplicate and capacity checks under a
	// group row lock; the outcome here is authoritative.
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrAlreadyBooked),
			errors.Is(err, domain.ErrCapacityExceeded):
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID string) (int64, error) {
	if err := domain.ValidateID(bookingID); err != nil {
		return 0, err
	}
	deleted, err := s.bookingRepo.Delete(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("delete booking: %w", err)
	}
	return deleted, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userEmail string) ([]*domain.BookingWithGroup, error) {
	userEmail = strings.TrimSpace(strings.ToLower(userEmail))
	if userEmail == "" {
		return nil, fmt.Errorf("%w: user email is required", domain.ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByUserEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return []*domain.BookingWithGroup{}, nil
	}

	// One batched fetch for all referenced groups, then an in-memory
	// join, instead of one query per booking.
	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.GroupID]; ok {
			continue
		}
		seen[b.GroupID] = struct{}{}
		ids = append(ids, b.GroupID)
	}
	groups, err := s.groupRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list groups for bookings: %w", err)
	}
	groupsByID := make(map[string]*domain.Group, len(groups))
	for _, g := range groups {
		groupsByID[g.ID] = g
	}

	result := make([]*domain.BookingWithGroup, 0, len(bookings))
	for _, b := range bookings {
		// A deleted group joins as nil; the caller decides how to
		// render the orphan.
		result = append(result, &domain.BookingWithGroup{
			Booking: b,
			Group:   groupsByID[b.GroupID],
		})
	}
	return result, nil
}
