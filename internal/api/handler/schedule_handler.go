package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// ScheduleHandler serves the weekly-timetable CRUD and the ICS import.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// List returns the timetable, optionally for one day.
// GET /api/v1/schedule?day=0
func (h *ScheduleHandler) List(c *gin.Context) {
	dayStr := c.Query("day")
	if dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			response.BadRequest(c, 10001, "day must be an integer 0-6")
			return
		}
		slots, err := h.scheduleSvc.ListByDay(c.Request.Context(), day)
		if err != nil {
			h.handleScheduleError(c, err)
			return
		}
		response.OK(c, gin.H{"list": slots})
		return
	}

	slots, err := h.scheduleSvc.List(c.Request.Context())
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": slots})
}

// Get returns one slot.
// GET /api/v1/schedule/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "slot id is required")
		return
	}

	slot, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, slot)
}

// Create stores one timetable slot.
// POST /api/v1/schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	slot, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, slot)
}

// Update patches a slot.
// PUT /api/v1/schedule/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "slot id is required")
		return
	}

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	slot, err := h.scheduleSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, slot)
}

// Delete removes a slot.
// DELETE /api/v1/schedule/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "slot id is required")
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportICS replaces the timetable from an iCalendar feed.
// POST /api/v1/schedule/import
func (h *ScheduleHandler) ImportICS(c *gin.Context) {
	var req dto.ImportICSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.scheduleSvc.ImportICS(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 20002, err.Error())
	case errors.Is(err, service.ErrSlotDayInvalid),
		errors.Is(err, service.ErrSlotTimeInvalid),
		errors.Is(err, service.ErrSlotTypeInvalid),
		errors.Is(err, service.ErrImportEmptySource),
		errors.Is(err, service.ErrImportNoEvents):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
