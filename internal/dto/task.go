package dto

// CreateTaskRequest creates a scheduled task (meeting, errand). Date is
// required; Time is optional "HH:MM".
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// UpdateTaskRequest patches a task; nil fields are left alone.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
}

// TaskResponse is the API shape of a task.
type TaskResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Date              string  `json:"date"`
	Time              string  `json:"time,omitempty"`
	Location          string  `json:"location,omitempty"`
	IsCompleted       bool    `json:"is_completed"`
	CompletedAt       *string `json:"completed_at,omitempty"`
	LastReminderLevel int     `json:"last_reminder_level"`
	CreatedAt         string  `json:"created_at"`
}

// CreateTodoRequest creates a quick todo. Date and Time are both optional.
type CreateTodoRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// UpdateTodoRequest patches a todo; nil fields are left alone.
type UpdateTodoRequest struct {
	Title *string `json:"title"`
	Date  *string `json:"date"`
	Time  *string `json:"time"`
}

// TodoResponse is the API shape of a todo.
type TodoResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Date              string  `json:"date,omitempty"`
	Time              string  `json:"time,omitempty"`
	IsCompleted       bool    `json:"is_completed"`
	CompletedAt       *string `json:"completed_at,omitempty"`
	LastReminderLevel int     `json:"last_reminder_level"`
	CreatedAt         string  `json:"created_at"`
}
