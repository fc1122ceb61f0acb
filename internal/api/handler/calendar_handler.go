package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// CalendarHandler serves the term-position queries.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Week resolves the current (or a given) date onto the term.
// GET /api/v1/calendar/week?date=2025-11-03
func (h *CalendarHandler) Week(c *gin.Context) {
	date := c.Query("date")

	var err error
	var week interface{}
	if date == "" {
		week, err = h.calendarSvc.Week(c.Request.Context())
	} else {
		week, err = h.calendarSvc.WeekOn(c.Request.Context(), date)
	}
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, week)
}

// Today lists today's classes.
// GET /api/v1/calendar/today
func (h *CalendarHandler) Today(c *gin.Context) {
	day, err := h.calendarSvc.Today(c.Request.Context())
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, day)
}

// Tomorrow lists tomorrow's classes.
// GET /api/v1/calendar/tomorrow
func (h *CalendarHandler) Tomorrow(c *gin.Context) {
	day, err := h.calendarSvc.Tomorrow(c.Request.Context())
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, day)
}

// NextOffDay finds the next class-canceling event.
// GET /api/v1/calendar/next-off-day
func (h *CalendarHandler) NextOffDay(c *gin.Context) {
	offday, err := h.calendarSvc.NextOffDay(c.Request.Context())
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, offday)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarBadDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrNoTermStart):
		response.BadRequest(c, 20010, err.Error())
	default:
		response.InternalError(c)
	}
}
