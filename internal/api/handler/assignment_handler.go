package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// AssignmentHandler serves the assignment CRUD and completion.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// List returns assignments; ?all=true includes completed ones.
// GET /api/v1/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	includeCompleted := c.Query("all") == "true"
	list, err := h.assignmentSvc.List(c.Request.Context(), includeCompleted)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Get returns one assignment.
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "assignment id is required")
		return
	}

	a, err := h.assignmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, a)
}

// Create stores a new assignment.
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.Created(c, a)
}

// Update patches an assignment.
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "assignment id is required")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	a, err := h.assignmentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, a)
}

// Complete marks an assignment done.
// POST /api/v1/assignments/:id/complete
func (h *AssignmentHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "assignment id is required")
		return
	}

	if err := h.assignmentSvc.Complete(c.Request.Context(), id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete removes an assignment.
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "assignment id is required")
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 20003, err.Error())
	case errors.Is(err, service.ErrAssignmentCompleted), errors.Is(err, service.ErrDeadlineInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
