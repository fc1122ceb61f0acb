package dto

// CreateEventRequest creates an academic calendar event. Dates are ISO-8601
// in the configured timezone; EndDate omitted means a single-day event.
type CreateEventRequest struct {
	EventType      string  `json:"event_type" binding:"required"`
	Name           string  `json:"name"`
	NameEn         string  `json:"name_en"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        *string `json:"end_date"`
	AffectsClasses *bool   `json:"affects_classes"`
}

// EventResponse is the API shape of an academic event.
type EventResponse struct {
	ID             string  `json:"id"`
	EventType      string  `json:"event_type"`
	Name           string  `json:"name"`
	NameEn         string  `json:"name_en"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	AffectsClasses bool    `json:"affects_classes"`
	CreatedAt      string  `json:"created_at"`
}
