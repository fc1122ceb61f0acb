package model

// Class type values.
const (
	ClassTypeLecture = "LEC"
	ClassTypeLab     = "LAB"
)

// ScheduleSlot maps to schedule_slots: one weekly timetable entry.
// DayOfWeek is 0=Monday .. 6=Sunday, matching the extracted timetable
// format (not time.Weekday). Times are local "HH:MM" strings.
type ScheduleSlot struct {
	SlotID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	DayOfWeek    int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0=Monday … 6=Sunday
	StartTime    string `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime      string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	SubjectCode  string `gorm:"type:varchar(50);not null"                      json:"subject_code"`
	SubjectName  string `gorm:"type:varchar(200)"                              json:"subject_name"`
	ClassType    string `gorm:"type:varchar(10);not null;default:'LEC'"        json:"class_type"` // LEC | LAB
	Room         string `gorm:"type:varchar(100)"                              json:"room"`
	LecturerName string `gorm:"type:varchar(200)"                              json:"lecturer_name"`
	BaseModel
}

// TableName sets the table name.
func (ScheduleSlot) TableName() string { return "schedule_slots" }
