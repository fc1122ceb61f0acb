package model

import "time"

// Task maps to tasks: a scheduled appointment (meeting, errand) with a
// required date, optional "HH:MM" time, and the two-level reminder ladder.
type Task struct {
	TaskID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Title             string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description       string     `gorm:"type:text"                                      json:"description"`
	ScheduledDate     time.Time  `gorm:"type:date;not null"                             json:"scheduled_date"`
	ScheduledTime     string     `gorm:"type:varchar(5)"                                json:"scheduled_time"`
	Location          string     `gorm:"type:varchar(200)"                              json:"location"`
	IsCompleted       bool       `gorm:"not null;default:false"                         json:"is_completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	LastReminderLevel int        `gorm:"not null;default:0"                             json:"last_reminder_level"`
	BaseModel
}

// TableName sets the table name.
func (Task) TableName() string { return "tasks" }

// Todo maps to todos: a quick personal item. Date and time are both
// optional; dated+timed todos get a single 1-hour reminder, the rest are
// swept up by the midnight review.
type Todo struct {
	TodoID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"todo_id"`
	Title             string     `gorm:"type:varchar(200);not null"                     json:"title"`
	ScheduledDate     *time.Time `gorm:"type:date"                                      json:"scheduled_date,omitempty"`
	ScheduledTime     string     `gorm:"type:varchar(5)"                                json:"scheduled_time"`
	IsCompleted       bool       `gorm:"not null;default:false"                         json:"is_completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	LastReminderLevel int        `gorm:"not null;default:0"                             json:"last_reminder_level"`
	BaseModel
}

// TableName sets the table name.
func (Todo) TableName() string { return "todos" }
