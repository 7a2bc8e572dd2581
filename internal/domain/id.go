package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when an identifier is not a well-formed UUID.
// It is distinct from ErrNotFound: a malformed identifier is rejected
// before the store is ever consulted.
var ErrInvalidID = errors.New("invalid identifier")

// ValidateID checks that id is a canonical UUID string.
func ValidateID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
