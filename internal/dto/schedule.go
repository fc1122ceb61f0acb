package dto

// CreateSlotRequest creates one weekly timetable entry. DayOfWeek is
// 0=Monday .. 6=Sunday; times are 24h "HH:MM".
type CreateSlotRequest struct {
	DayOfWeek    *int   `json:"day_of_week" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	SubjectCode  string `json:"subject_code" binding:"required"`
	SubjectName  string `json:"subject_name"`
	ClassType    string `json:"class_type"`
	Room         string `json:"room"`
	LecturerName string `json:"lecturer_name"`
}

// UpdateSlotRequest patches a timetable entry; nil fields are left alone.
type UpdateSlotRequest struct {
	DayOfWeek    *int    `json:"day_of_week"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	SubjectCode  *string `json:"subject_code"`
	SubjectName  *string `json:"subject_name"`
	ClassType    *string `json:"class_type"`
	Room         *string `json:"room"`
	LecturerName *string `json:"lecturer_name"`
}

// SlotResponse is the API shape of a timetable entry.
type SlotResponse struct {
	ID           string `json:"id"`
	DayOfWeek    int    `json:"day_of_week"`
	DayName      string `json:"day_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SubjectCode  string `json:"subject_code"`
	SubjectName  string `json:"subject_name"`
	ClassType    string `json:"class_type"`
	Room         string `json:"room"`
	LecturerName string `json:"lecturer_name"`
}

// ImportICSRequest imports a weekly timetable from an iCalendar source:
// either a fetchable URL or inline ICS content, not both.
type ImportICSRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ImportICSResponse reports the import outcome.
type ImportICSResponse struct {
	Imported int            `json:"imported"`
	Slots    []SlotResponse `json:"slots"`
}
