package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// TaskHandler serves the task CRUD and completion.
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// List returns tasks; ?all=true includes completed ones.
// GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	includeCompleted := c.Query("all") == "true"
	list, err := h.taskSvc.List(c.Request.Context(), includeCompleted)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Get returns one task.
// GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "task id is required")
		return
	}

	t, err := h.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, t)
}

// Create stores a new task.
// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	t, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.Created(c, t)
}

// Update patches a task.
// PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "task id is required")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	t, err := h.taskSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, t)
}

// Complete marks a task done.
// POST /api/v1/tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "task id is required")
		return
	}

	if err := h.taskSvc.Complete(c.Request.Context(), id); err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete removes a task.
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "task id is required")
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 20005, err.Error())
	case errors.Is(err, service.ErrTaskCompleted), errors.Is(err, service.ErrTaskDateInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
