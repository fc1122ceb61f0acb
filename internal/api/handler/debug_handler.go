package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/scheduler"
	"github.com/devHanif-git/productivityHelper/internal/semester"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// DebugHandler exposes the simulated-clock and scheduler controls. These
// endpoints exist so the whole engine can be exercised without waiting for
// wall-clock time to pass.
type DebugHandler struct {
	clk   *clock.SystemClock
	sched *scheduler.Scheduler
}

// NewDebugHandler creates a DebugHandler.
func NewDebugHandler(clk *clock.SystemClock, sched *scheduler.Scheduler) *DebugHandler {
	return &DebugHandler{clk: clk, sched: sched}
}

// GetClock reports the effective clock and any active override.
// GET /api/v1/debug/clock
func (h *DebugHandler) GetClock(c *gin.Context) {
	response.OK(c, h.clockResponse())
}

// SetDate overrides the date half of the clock.
// PUT /api/v1/debug/clock/date
func (h *DebugHandler) SetDate(c *gin.Context) {
	var req dto.SetDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	date, err := semester.ParseDate(req.Date, h.clk.Location())
	if err != nil {
		response.BadRequest(c, 10001, "date must be YYYY-MM-DD")
		return
	}

	h.clk.SetDate(date)
	response.OK(c, h.clockResponse())
}

// SetTime overrides the time half of the clock.
// PUT /api/v1/debug/clock/time
func (h *DebugHandler) SetTime(c *gin.Context) {
	var req dto.SetTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	hour, minute, err := semester.ParseTimeOfDay(req.Time)
	if err != nil {
		response.BadRequest(c, 10001, "time must be HH:MM")
		return
	}

	h.clk.SetTimeOfDay(hour, minute)
	response.OK(c, h.clockResponse())
}

// ClearClock removes both override halves.
// DELETE /api/v1/debug/clock
func (h *DebugHandler) ClearClock(c *gin.Context) {
	h.clk.ClearOverride()
	response.OK(c, h.clockResponse())
}

// ListJobs snapshots every scheduler job's state.
// GET /api/v1/debug/jobs
func (h *DebugHandler) ListJobs(c *gin.Context) {
	states := h.sched.JobStates()
	list := make([]dto.JobStateResponse, 0, len(states))
	for _, st := range states {
		item := dto.JobStateResponse{
			Name:      st.Name,
			Spec:      st.Spec,
			Running:   st.Running,
			Runs:      st.Runs,
			Skips:     st.Skips,
			Failures:  st.Failures,
			LastError: st.LastError,
		}
		if !st.LastRunAt.IsZero() {
			at := st.LastRunAt.Format(time.RFC3339)
			item.LastRunAt = &at
		}
		list = append(list, item)
	}
	response.OK(c, gin.H{"list": list})
}

// TriggerJob runs one scheduler job by name, synchronously.
// POST /api/v1/debug/jobs/trigger
func (h *DebugHandler) TriggerJob(c *gin.Context) {
	var req dto.TriggerJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.sched.TriggerJob(req.Job); err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			response.NotFound(c, 20009, fmt.Sprintf("unknown job %q", req.Job))
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"job": req.Job})
}

func (h *DebugHandler) clockResponse() dto.ClockResponse {
	now := h.clk.Now()
	resp := dto.ClockResponse{
		Now:      now.Format(time.RFC3339),
		Today:    h.clk.Today().Format("2006-01-02"),
		Timezone: h.clk.Location().String(),
	}

	ov := h.clk.CurrentOverride()
	if ov.Date != nil {
		d := ov.Date.Format("2006-01-02")
		resp.OverrideDate = &d
	}
	if ov.TimeOfDay != nil {
		t := fmt.Sprintf("%02d:%02d", ov.TimeOfDay.Hour, ov.TimeOfDay.Minute)
		resp.OverrideTime = &t
	}
	return resp
}
