package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// TodoHandler serves the todo CRUD and completion.
type TodoHandler struct {
	todoSvc service.TodoService
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(todoSvc service.TodoService) *TodoHandler {
	return &TodoHandler{todoSvc: todoSvc}
}

// List returns todos; ?all=true includes completed ones.
// GET /api/v1/todos
func (h *TodoHandler) List(c *gin.Context) {
	includeCompleted := c.Query("all") == "true"
	list, err := h.todoSvc.List(c.Request.Context(), includeCompleted)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Get returns one todo.
// GET /api/v1/todos/:id
func (h *TodoHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "todo id is required")
		return
	}

	t, err := h.todoSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTodoError(c, err)
		return
	}
	response.OK(c, t)
}

// Create stores a new todo.
// POST /api/v1/todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	t, err := h.todoSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTodoError(c, err)
		return
	}
	response.Created(c, t)
}

// Update patches a todo.
// PUT /api/v1/todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "todo id is required")
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	t, err := h.todoSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTodoError(c, err)
		return
	}
	response.OK(c, t)
}

// Complete marks a todo done.
// POST /api/v1/todos/:id/complete
func (h *TodoHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "todo id is required")
		return
	}

	if err := h.todoSvc.Complete(c.Request.Context(), id); err != nil {
		h.handleTodoError(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete removes a todo.
// DELETE /api/v1/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "todo id is required")
		return
	}

	if err := h.todoSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTodoError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *TodoHandler) handleTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		response.NotFound(c, 20006, err.Error())
	case errors.Is(err, service.ErrTodoCompleted), errors.Is(err, service.ErrTodoDateInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
