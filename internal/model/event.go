package model

import "time"

// Event type values. Extracted calendars only ever produce this closed set.
const (
	EventTypeHoliday           = "holiday"
	EventTypeBreak             = "break"
	EventTypeExamPeriod        = "exam_period"
	EventTypeLecturePeriod     = "lecture_period"
	EventTypeRegistration      = "registration"
	EventTypeOnlineInstruction = "online_instruction"
)

// AcademicEvent maps to academic_events: a dated calendar entry (holiday,
// break, exam period...) with an optional inclusive end date. Name carries
// the Malay display name, NameEn the English one. Events are created by
// calendar extraction and are read-only to the reminder engine.
type AcademicEvent struct {
	EventID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	EventType      string     `gorm:"type:varchar(30);not null"                      json:"event_type"`
	Name           string     `gorm:"type:varchar(200)"                              json:"name"`
	NameEn         string     `gorm:"type:varchar(200)"                              json:"name_en"`
	StartDate      time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate        *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	AffectsClasses bool       `gorm:"not null;default:true"                          json:"affects_classes"`
	BaseModel
}

// TableName sets the table name.
func (AcademicEvent) TableName() string { return "academic_events" }

// DisplayName prefers the English name and falls back to the Malay one.
func (e *AcademicEvent) DisplayName() string {
	if e.NameEn != "" {
		return e.NameEn
	}
	return e.Name
}

// Reminder-mark kinds.
const (
	ReminderKindSemesterStart = "semester_start"
)

// EventReminderMark maps to event_reminder_marks: the fired pseudo-escalation
// level for calendar-driven one-shot alerts, keyed per event and kind.
// Events themselves stay immutable; their fired state lives here.
type EventReminderMark struct {
	MarkID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mark_id"`
	EventID string `gorm:"type:uuid;not null"                             json:"event_id"`
	Kind    string `gorm:"type:varchar(30);not null"                      json:"kind"`
	Level   int    `gorm:"not null;default:0"                             json:"level"`
	BaseModel
}

// TableName sets the table name.
func (EventReminderMark) TableName() string { return "event_reminder_marks" }
