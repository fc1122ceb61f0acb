package dto

// WeekResponse is the resolved term position for a date.
type WeekResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"` // teaching | mid_break | inter_break | before_term | after_term
	Week   int    `json:"week,omitempty"`
	Label  string `json:"label"`
	Event  string `json:"event,omitempty"`
}

// DayClassesResponse lists the classes running (or cancelled) on one date.
type DayClassesResponse struct {
	Date          string         `json:"date"`
	DayName       string         `json:"day_name"`
	IsTeachingDay bool           `json:"is_teaching_day"`
	Event         string         `json:"event,omitempty"`
	Classes       []SlotResponse `json:"classes"`
}

// OffDayResponse describes the next upcoming class-canceling event.
type OffDayResponse struct {
	Found     bool    `json:"found"`
	Name      string  `json:"name,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	DaysAway  int     `json:"days_away,omitempty"`
}
