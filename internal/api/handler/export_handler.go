package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// ExportHandler serves the timetable and calendar downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// TimetableExcel streams the weekly timetable as an .xlsx workbook.
// GET /api/v1/export/timetable.xlsx
func (h *ExportHandler) TimetableExcel(c *gin.Context) {
	buf, filename, err := h.exportSvc.TimetableExcel(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// CalendarICS streams the academic events as an iCalendar feed.
// GET /api/v1/export/calendar.ics
func (h *ExportHandler) CalendarICS(c *gin.Context) {
	buf, filename, err := h.exportSvc.CalendarICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSlots),
		errors.Is(err, service.ErrExportNoEvents):
		response.NotFound(c, 20008, err.Error())
	default:
		response.InternalError(c)
	}
}
