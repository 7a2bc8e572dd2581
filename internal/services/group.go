package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crewup/internal/domain"
)

// featuredCount is the display cap for the featured group list.
const featuredCount = 6

type groupService struct {
	groupRepo   domain.GroupRepository
	bookingRepo domain.BookingRepository
	cache       domain.GroupCache
}

// NewGroupService creates a GroupService. cache may be nil, in which
// case every read goes to the repository.
func NewGroupService(groupRepo domain.GroupRepository, bookingRepo domain.BookingRepository, cache domain.GroupCache) domain.GroupService {
	return &groupService{
		groupRepo:   groupRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
	}
}

func (s *groupService) Create(ctx context.Context, g *domain.Group) error {
	g.OwnerEmail = strings.TrimSpace(strings.ToLower(g.OwnerEmail))
	g.Title = strings.TrimSpace(g.Title)
	if g.OwnerEmail == "" || !emailRegexp.MatchString(g.OwnerEmail) {
		return fmt.Errorf("%w: valid owner email is required", domain.ErrInvalidInput)
	}
	if g.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if g.MaxMembers < 1 {
		return fmt.Errorf("%w: max members must be at least 1", domain.ErrInvalidInput)
	}
	if _, err := g.StartInstant(); err != nil {
		return fmt.Errorf("%w: start date and time must form a valid instant", domain.ErrInvalidInput)
	}

	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	if err := s.groupRepo.Create(ctx, g); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *groupService) List(ctx context.Context) ([]*domain.Group, error) {
	groups, err := s.listCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) Featured(ctx context.Context, now time.Time) ([]*domain.Group, error) {
	groups, err := s.listCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	// Keep the base newest-first ordering rather than sorting by start
	// instant; truncation happens after the future filter.
	featured := make([]*domain.Group, 0, featuredCount)
	for _, g := range groups {
		start, err := g.StartInstant()
		if err != nil {
			// Rows predating schedule validation; never upcoming.
			continue
		}
		if start.After(now) {
			featured = append(featured, g)
			if len(featured) == featuredCount {
				break
			}
		}
	}
	return featured, nil
}

// listCached serves the full newest-first listing, preferring the cache
// when one is configured. Cache failures fall through to the store.
func (s *groupService) listCached(ctx context.Context) ([]*domain.Group, error) {
	if s.cache != nil {
		if groups, ok, err := s.cache.GetGroups(ctx); err == nil && ok {
			return groups, nil
		}
	}
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetGroups(ctx, groups)
	}
	return groups, nil
}

func (s *groupService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func (s *groupService) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.GroupWithBookings, error) {
	ownerEmail = strings.TrimSpace(strings.ToLower(ownerEmail))
	if ownerEmail == "" {
		return nil, fmt.Errorf("%w: owner email is required", domain.ErrInvalidInput)
	}
	groups, err := s.groupRepo.ListByOwnerEmail(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list groups by owner: %w", err)
	}
	result := make([]*domain.GroupWithBookings, 0, len(groups))
	for _, g := range groups {
		bookings, err := s.bookingRepo.ListByGroupID(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list bookings for group: %w", err)
		}
		result = append(result, &domain.GroupWithBookings{
			Group:    g,
			Bookings: bookings,
		})
	}
	return result, nil
}

func (s *groupService) Detail(ctx context.Context, groupID, requesterEmail string) (*domain.GroupDetail, error) {
	if err := domain.ValidateID(groupID); err != nil {
		return nil, err
	}
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	bookings, err := s.bookingRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for group: %w", err)
	}

	requesterEmail = strings.TrimSpace(strings.ToLower(requesterEmail))
	alreadyBooked := false
	if requesterEmail != "" {
		for _, b := range bookings {
			if b.UserEmail == requesterEmail {
				alreadyBooked = true
				break
			}
		}
	}
	return &domain.GroupDetail{
		Group:         group,
		Bookings:      bookings,
		AlreadyBooked: alreadyBooked,
	}, nil
}

func (s *groupService) Update(ctx context.Context, groupID string, patch domain.GroupPatch) (*domain.Group, error) {
	if err := domain.ValidateID(groupID); err != nil {
		return nil, err
	}
	if patch.MaxMembers != nil && *patch.MaxMembers < 1 {
		return nil, fmt.Errorf("%w: max members must be at least 1", domain.ErrInvalidInput)
	}
	if patch.Empty() {
		// Nothing to change; serve the current record without a write.
		group, err := s.groupRepo.GetByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get group: %w", err)
		}
		return group, nil
	}
	group, err := s.groupRepo.Update(ctx, groupID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrCapacityBelowBookings):
			return nil, err
		}
		return nil, fmt.Errorf("update group: %w", err)
	}
	s.invalidateCache(ctx)
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, groupID string) error {
	if err := domain.ValidateID(groupID); err != nil {
		return err
	}
	// No cascade: bookings referencing the group are left in place and
	// surface as an absent group on the read side.
	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete group: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}
