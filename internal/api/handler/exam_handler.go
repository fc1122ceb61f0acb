package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// ExamHandler serves the exam CRUD and completion.
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler creates an ExamHandler.
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// List returns exams; ?all=true includes completed ones.
// GET /api/v1/exams
func (h *ExamHandler) List(c *gin.Context) {
	includeCompleted := c.Query("all") == "true"
	list, err := h.examSvc.List(c.Request.Context(), includeCompleted)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Get returns one exam.
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "exam id is required")
		return
	}

	e, err := h.examSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, e)
}

// Create stores a new exam.
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	e, err := h.examSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.Created(c, e)
}

// Update patches an exam.
// PUT /api/v1/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "exam id is required")
		return
	}

	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	e, err := h.examSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, e)
}

// Complete marks an exam done.
// POST /api/v1/exams/:id/complete
func (h *ExamHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "exam id is required")
		return
	}

	if err := h.examSvc.Complete(c.Request.Context(), id); err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete removes an exam.
// DELETE /api/v1/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "exam id is required")
		return
	}

	if err := h.examSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		response.NotFound(c, 20004, err.Error())
	case errors.Is(err, service.ErrExamCompleted), errors.Is(err, service.ErrDeadlineInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
