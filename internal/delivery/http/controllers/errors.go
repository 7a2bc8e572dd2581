package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"crewup/internal/delivery/http/helpers"
	"crewup/internal/domain"
)

// writeServiceError maps a service error to its HTTP status and error
// code. Unrecognized errors are treated as store failures: logged and
// surfaced as internal_error without retry.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidID, "invalid identifier")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyBooked):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyBooked, "already booked")
	case errors.Is(err, domain.ErrCapacityExceeded):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExceeded, "group is full")
	case errors.Is(err, domain.ErrCapacityBelowBookings):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityBelow, "max members is below current bookings")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
