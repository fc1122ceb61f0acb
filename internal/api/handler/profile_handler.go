package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// ProfileHandler serves the owner-profile endpoints.
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// List returns all registered profiles.
// GET /api/v1/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": profiles})
}

// Get returns the profile for one chat id.
// GET /api/v1/profiles/:chat_id
func (h *ProfileHandler) Get(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "chat_id must be an integer")
		return
	}

	profile, err := h.profileSvc.GetByChatID(c.Request.Context(), chatID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, profile)
}

// Upsert registers or updates a profile.
// PUT /api/v1/profiles
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	profile, err := h.profileSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 20007, err.Error())
	case errors.Is(err, service.ErrProfileDateInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
