package domain

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a request is missing required fields
// or carries malformed values.
var ErrInvalidInput = errors.New("invalid input")
