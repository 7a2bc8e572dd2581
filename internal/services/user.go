package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"crewup/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a UserService with the given repository.
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Upsert(ctx context.Context, u *domain.User) (bool, error) {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	if u.Email == "" {
		return false, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(u.Email) {
		return false, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	now := time.Now()
	existing, err := s.userRepo.GetByEmail(ctx, u.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("get user: %w", err)
		}
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := s.userRepo.Create(ctx, u); err != nil {
			return false, fmt.Errorf("create user: %w", err)
		}
		return true, nil
	}

	// Empty incoming fields keep the stored profile values.
	if u.DisplayName == "" {
		u.DisplayName = existing.DisplayName
	}
	if u.PhotoURL == "" {
		u.PhotoURL = existing.PhotoURL
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = now
	if err := s.userRepo.Update(ctx, u); err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return false, nil
}
