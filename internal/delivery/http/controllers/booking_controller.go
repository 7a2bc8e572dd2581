package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crewup/internal/delivery/http/helpers"
	"crewup/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBookingRequest is the request body for POST /bookings.
// booked_at is optional; when absent the server stamps the current
// time. The snapshot fields are optional and default from the group.
type CreateBookingRequest struct {
	GroupID       string     `json:"group_id"`
	UserEmail     string     `json:"user_email"`
	BookedAt      *time.Time `json:"booked_at"`
	GroupTitle    string     `json:"group_title"`
	GroupCategory string     `json:"group_category"`
	MeetingType   string     `json:"meeting_type"`
}

// Validate implements helpers.Validator.
func (r *CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.GroupID) == "" {
		errs = append(errs, "group_id is required")
	}
	if strings.TrimSpace(r.UserEmail) == "" {
		errs = append(errs, "user_email is required")
	}
	return errs
}

// CreateBooking godoc
// @Summary Book a seat in a group
// @Description Creates a booking for user_email in the group. Fails with already_booked when the user holds a booking for the group and with capacity_exceeded when the group is full.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body controllers.CreateBookingRequest true "Booking fields"
// @Success 201 {object} helpers.APIResponse "data is the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_booked or capacity_exceeded"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	booking := &domain.Booking{
		GroupID:       req.GroupID,
		UserEmail:     req.UserEmail,
		GroupTitle:    req.GroupTitle,
		GroupCategory: req.GroupCategory,
		MeetingType:   req.MeetingType,
	}
	if req.BookedAt != nil {
		booking.BookedAt = *req.BookedAt
	}
	booking, err := c.Service.Create(r.Context(), booking)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// MyBookings godoc
// @Summary List a user's bookings
// @Description Returns the user's bookings newest first, each joined with its group. The group is null when it was deleted after booking.
// @Tags bookings
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} helpers.APIResponse "data is an array of booking + group pairs"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/mine [get]
func (c *BookingController) MyBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing email")
		return
	}
	bookings, err := c.Service.ListForUser(r.Context(), email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// DeleteBookingResponse is the data payload for DELETE /bookings/{bookingID}.
type DeleteBookingResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// DeleteBooking godoc
// @Summary Cancel a booking
// @Description Deletes the booking and reports how many records were removed (0 or 1). A missing booking is not an error.
// @Tags bookings
// @Produce json
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains deleted_count: 0 or 1"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_id"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingID")
	if bookingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bookingID")
		return
	}
	deleted, err := c.Service.Delete(r.Context(), bookingID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteBookingResponse{DeletedCount: deleted})
}
