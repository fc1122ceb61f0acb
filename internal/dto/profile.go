package dto

// UpsertProfileRequest registers or refreshes the owner profile.
type UpsertProfileRequest struct {
	TelegramChatID    int64   `json:"telegram_chat_id" binding:"required"`
	SemesterStartDate *string `json:"semester_start_date"`
	MidnightReview    *bool   `json:"midnight_review"`
	IsMuted           *bool   `json:"is_muted"`
}

// ProfileResponse is the API shape of the owner profile.
type ProfileResponse struct {
	ID                string  `json:"id"`
	TelegramChatID    int64   `json:"telegram_chat_id"`
	SemesterStartDate *string `json:"semester_start_date,omitempty"`
	MidnightReview    bool    `json:"midnight_review"`
	IsMuted           bool    `json:"is_muted"`
}
