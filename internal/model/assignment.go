package model

import "time"

// Assignment maps to assignments: formal academic work with a hard due
// datetime and the full seven-level escalating reminder ladder.
// LastReminderLevel only ever advances while the assignment is open;
// completion freezes it.
type Assignment struct {
	AssignmentID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	Title             string     `gorm:"type:varchar(200);not null"                     json:"title"`
	SubjectCode       string     `gorm:"type:varchar(50)"                               json:"subject_code"`
	Description       string     `gorm:"type:text"                                      json:"description"`
	DueAt             time.Time  `gorm:"not null"                                       json:"due_at"`
	IsCompleted       bool       `gorm:"not null;default:false"                         json:"is_completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	LastReminderLevel int        `gorm:"not null;default:0"                             json:"last_reminder_level"`
	BaseModel
}

// TableName sets the table name.
func (Assignment) TableName() string { return "assignments" }

// Exam maps to exams: a sit-in paper with a fixed start datetime and the
// four-level escalation ladder.
type Exam struct {
	ExamID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	Title             string     `gorm:"type:varchar(200);not null"                     json:"title"`
	SubjectCode       string     `gorm:"type:varchar(50)"                               json:"subject_code"`
	StartsAt          time.Time  `gorm:"not null"                                       json:"starts_at"`
	Venue             string     `gorm:"type:varchar(200)"                              json:"venue"`
	IsCompleted       bool       `gorm:"not null;default:false"                         json:"is_completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	LastReminderLevel int        `gorm:"not null;default:0"                             json:"last_reminder_level"`
	BaseModel
}

// TableName sets the table name.
func (Exam) TableName() string { return "exams" }
