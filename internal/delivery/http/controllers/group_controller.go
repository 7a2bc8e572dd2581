package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crewup/internal/delivery/http/helpers"
	"crewup/internal/domain"
)

type GroupController struct {
	Logger  *slog.Logger
	Service domain.GroupService
}

func NewGroupController(logger *slog.Logger, svc domain.GroupService) *GroupController {
	return &GroupController{
		Logger:  logger,
		Service: svc,
	}
}

// ListGroups godoc
// @Summary List all groups
// @Description Returns every group, newest first.
// @Tags groups
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of groups"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [get]
func (c *GroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// FeaturedGroups godoc
// @Summary List featured groups
// @Description Returns up to 6 groups whose start instant is in the future, newest first.
// @Tags groups
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of groups (max 6)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/featured [get]
func (c *GroupController) FeaturedGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := c.Service.Featured(r.Context(), time.Now())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// MyGroups godoc
// @Summary List groups owned by a user
// @Description Returns the groups owned by the email, newest first, each with its current bookings nested.
// @Tags groups
// @Produce json
// @Param email query string true "Owner email"
// @Success 200 {object} helpers.APIResponse "data is an array of groups with nested bookings"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/mine [get]
func (c *GroupController) MyGroups(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing email")
		return
	}
	groups, err := c.Service.ListByOwner(r.Context(), email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// GroupDetail godoc
// @Summary Get a single group
// @Description Returns the group with its bookings and, when an email query parameter is present, whether that user already holds a booking.
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID (UUID)"
// @Param email query string false "Requester email"
// @Success 200 {object} helpers.APIResponse "data contains group, bookings, already_booked"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID} [get]
func (c *GroupController) GroupDetail(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing groupID")
		return
	}
	detail, err := c.Service.Detail(r.Context(), groupID, r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// CreateGroupRequest is the request body for POST /groups.
type CreateGroupRequest struct {
	OwnerEmail  string `json:"owner_email"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	MeetingType string `json:"meeting_type"`
	StartDate   string `json:"start_date"`
	StartTime   string `json:"start_time"`
	MaxMembers  int    `json:"max_members"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

// Validate implements helpers.Validator.
func (r *CreateGroupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.OwnerEmail) == "" {
		errs = append(errs, "owner_email is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if r.MaxMembers < 1 {
		errs = append(errs, "max_members must be at least 1")
	}
	if strings.TrimSpace(r.StartDate) == "" {
		errs = append(errs, "start_date is required")
	}
	if strings.TrimSpace(r.StartTime) == "" {
		errs = append(errs, "start_time is required")
	}
	return errs
}

// CreateGroup godoc
// @Summary Create a group
// @Description Creates a new group owned by owner_email. start_date (YYYY-MM-DD) and start_time (HH:MM) must combine into a valid instant.
// @Tags groups
// @Accept json
// @Produce json
// @Param body body controllers.CreateGroupRequest true "Group fields"
// @Success 201 {object} helpers.APIResponse "data is the created group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [post]
func (c *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	group := &domain.Group{
		OwnerEmail:  req.OwnerEmail,
		Title:       req.Title,
		Category:    req.Category,
		MeetingType: req.MeetingType,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		MaxMembers:  req.MaxMembers,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
	if err := c.Service.Create(r.Context(), group); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, group)
}

// UpdateGroupRequest is the request body for PATCH /groups/{groupID}.
// Absent fields are left untouched.
type UpdateGroupRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	MeetingType *string `json:"meeting_type"`
	StartDate   *string `json:"start_date"`
	StartTime   *string `json:"start_time"`
	MaxMembers  *int    `json:"max_members"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"image_url"`
}

// UpdateGroup godoc
// @Summary Update a group
// @Description Applies a partial update. Lowering max_members below the current booking count rejects the whole patch with capacity_below_bookings.
// @Tags groups
// @Accept json
// @Produce json
// @Param groupID path string true "Group ID (UUID)"
// @Param body body controllers.UpdateGroupRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data is the updated group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_below_bookings"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID} [patch]
func (c *GroupController) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing groupID")
		return
	}
	var req UpdateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	patch := domain.GroupPatch{
		Title:       req.Title,
		Category:    req.Category,
		MeetingType: req.MeetingType,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		MaxMembers:  req.MaxMembers,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
	group, err := c.Service.Update(r.Context(), groupID, patch)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// DeleteGroupResponse is the data payload for DELETE /groups/{groupID}.
type DeleteGroupResponse struct {
	Deleted bool `json:"deleted"`
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Deletes the group. Existing bookings are not cascaded; they surface as an absent group on the read side.
// @Tags groups
// @Produce json
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains deleted: true"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID} [delete]
func (c *GroupController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupID")
	if groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing groupID")
		return
	}
	if err := c.Service.Delete(r.Context(), groupID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteGroupResponse{Deleted: true})
}
