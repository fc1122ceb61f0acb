package model

import "time"

// UserProfile maps to user_profiles: the assistant owner's settings.
// A deployment normally has exactly one row; the engine still fans out to
// every row so a shared deployment keeps working.
type UserProfile struct {
	UserProfileID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_profile_id"`
	TelegramChatID    int64      `gorm:"uniqueIndex;not null"                           json:"telegram_chat_id"`
	SemesterStartDate *time.Time `gorm:"type:date"                                      json:"semester_start_date,omitempty"`
	MidnightReview    bool       `gorm:"not null;default:true"                          json:"midnight_review"`
	IsMuted           bool       `gorm:"not null;default:false"                         json:"is_muted"`
	BaseModel
}

// TableName sets the table name.
func (UserProfile) TableName() string { return "user_profiles" }
