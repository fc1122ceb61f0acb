package dto

// CreateAssignmentRequest creates an assignment. DueDate is ISO-8601;
// DueTime is 24h "HH:MM" and defaults to end of day when omitted.
type CreateAssignmentRequest struct {
	Title       string `json:"title" binding:"required"`
	SubjectCode string `json:"subject_code"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"`
	DueTime     string `json:"due_time"`
}

// UpdateAssignmentRequest patches an assignment; nil fields are left alone.
type UpdateAssignmentRequest struct {
	Title       *string `json:"title"`
	SubjectCode *string `json:"subject_code"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	DueTime     *string `json:"due_time"`
}

// AssignmentResponse is the API shape of an assignment.
type AssignmentResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	SubjectCode       string  `json:"subject_code"`
	Description       string  `json:"description"`
	DueAt             string  `json:"due_at"`
	IsCompleted       bool    `json:"is_completed"`
	CompletedAt       *string `json:"completed_at,omitempty"`
	LastReminderLevel int     `json:"last_reminder_level"`
	CreatedAt         string  `json:"created_at"`
}

// CreateExamRequest creates an exam sitting.
type CreateExamRequest struct {
	Title       string `json:"title" binding:"required"`
	SubjectCode string `json:"subject_code"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Venue       string `json:"venue"`
}

// UpdateExamRequest patches an exam; nil fields are left alone.
type UpdateExamRequest struct {
	Title       *string `json:"title"`
	SubjectCode *string `json:"subject_code"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Venue       *string `json:"venue"`
}

// ExamResponse is the API shape of an exam.
type ExamResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	SubjectCode       string  `json:"subject_code"`
	StartsAt          string  `json:"starts_at"`
	Venue             string  `json:"venue"`
	IsCompleted       bool    `json:"is_completed"`
	CompletedAt       *string `json:"completed_at,omitempty"`
	LastReminderLevel int     `json:"last_reminder_level"`
	CreatedAt         string  `json:"created_at"`
}
