package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"crewup/internal/delivery/http/helpers"
	"crewup/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// UpsertUserRequest is the request body for POST /users.
type UpsertUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// Validate implements helpers.Validator.
func (r *UpsertUserRequest) Validate() []string {
	if strings.TrimSpace(r.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// UpsertUserResponse is the data payload for POST /users.
type UpsertUserResponse struct {
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

// UpsertUser godoc
// @Summary Create or update a user profile
// @Description Upserts the profile keyed by email. Returns 201 when a new user was created, 200 when an existing profile was updated. Empty display_name or photo_url keep the stored values on update.
// @Tags users
// @Accept json
// @Produce json
// @Param body body controllers.UpsertUserRequest true "User profile"
// @Success 200 {object} helpers.APIResponse "Existing profile updated"
// @Success 201 {object} helpers.APIResponse "New user created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req UpsertUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	user := &domain.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}
	created, err := c.Service.Upsert(r.Context(), user)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}

	resp := UpsertUserResponse{User: user, Created: created}
	if created {
		helpers.WriteJSONSuccess(w, http.StatusCreated, resp)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
