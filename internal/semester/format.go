package semester

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Day names indexed by WeekdayIndex (0=Monday).
var (
	DayNames      = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	DayNamesMalay = []string{"Isnin", "Selasa", "Rabu", "Khamis", "Jumaat", "Sabtu", "Ahad"}
)

// DayName returns the English day name for a date.
func DayName(t time.Time) string {
	return DayNames[WeekdayIndex(t)]
}

// FormatDate renders a date like "Monday, 20 Oct 2025".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %s", DayName(t), t.Format("02 Jan 2006"))
}

// FormatShortDate renders a date like "Mon 20 Oct".
func FormatShortDate(t time.Time) string {
	return t.Format("Mon 02 Jan")
}

// ParseDate parses an ISO-8601 date in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseTimeOfDay parses a 24h "HH:MM" string.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// CombineDateTime anchors an "HH:MM" time onto a date. An empty time means
// end of day (23:59): an undated deadline still escalates before the day is
// over instead of at a fictitious midnight in the past.
func CombineDateTime(date time.Time, timeOfDay string, loc *time.Location) (time.Time, error) {
	y, m, d := date.Date()
	if timeOfDay == "" {
		return time.Date(y, m, d, 23, 59, 0, 0, loc), nil
	}
	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, m, d, hour, minute, 0, 0, loc), nil
}

// FormatClock renders an "HH:MM" string as a compact 12-hour clock:
// "08:00" -> "8AM", "14:30" -> "2:30PM". Unparseable input passes through.
func FormatClock(timeOfDay string) string {
	parts := strings.SplitN(timeOfDay, ":", 2)
	if len(parts) != 2 {
		return timeOfDay
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return timeOfDay
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	if display > 12 {
		display -= 12
	}
	if display == 0 {
		display = 12
	}
	if minute == 0 {
		return fmt.Sprintf("%d%s", display, period)
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, period)
}
