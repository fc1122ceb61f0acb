package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// EventHandler serves the academic-calendar CRUD.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// List returns all calendar events.
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": events})
}

// Get returns one event.
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "event id is required")
		return
	}

	event, err := h.eventSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, event)
}

// Create stores a new calendar event.
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.Created(c, event)
}

// Delete removes an event.
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "event id is required")
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrEventTypeInvalid), errors.Is(err, service.ErrEventDateInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
