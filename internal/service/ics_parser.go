package service

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/devHanif-git/productivityHelper/internal/model"
	"github.com/devHanif-git/productivityHelper/internal/semester"
)

// ── ICS timetable parser ──
//
// Turns an iCalendar (RFC 5545) feed into weekly schedule slots:
//   - DTSTART/DTEND fix the weekday and the HH:MM times
//   - SUMMARY carries "CODE - Name" or just the subject name
//   - LOCATION becomes the room, a "(LAB)" marker the class type
//   - university feeds repeat the same class weekly, so occurrences that
//     agree on (day, times, subject) collapse into one slot

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// FetchICSContent downloads an ICS feed, accepting webcal:// links and
// capping the body size.
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetching ICS: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching ICS: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseTimetableICS parses an ICS stream into deduplicated schedule slots,
// ordered by day then start time.
func ParseTimetableICS(reader io.Reader, loc *time.Location) ([]model.ScheduleSlot, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing ICS: %w", err)
	}

	type slotKey struct {
		day         int
		start, end  string
		subjectCode string
	}
	seen := make(map[slotKey]bool)

	var slots []model.ScheduleSlot
	for _, evt := range cal.Events() {
		slot, ok := parseVEvent(evt, loc)
		if !ok {
			continue
		}
		k := slotKey{day: slot.DayOfWeek, start: slot.StartTime, end: slot.EndTime, subjectCode: slot.SubjectCode}
		if seen[k] {
			continue
		}
		seen[k] = true
		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

// parseVEvent extracts one schedule slot from a VEVENT, reporting false for
// events with no summary or unusable dates.
func parseVEvent(evt *ics.VEvent, loc *time.Location) (model.ScheduleSlot, bool) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return model.ScheduleSlot{}, false
	}

	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return model.ScheduleSlot{}, false
	}
	dtEnd, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		// no DTEND: assume the usual 2-hour class block
		dtEnd = dtStart.Add(2 * time.Hour)
	}

	code, name := splitSummary(summary.Value)

	classType := model.ClassTypeLecture
	if strings.Contains(strings.ToUpper(summary.Value), "LAB") {
		classType = model.ClassTypeLab
	}

	room := ""
	if locProp := evt.GetProperty(ics.ComponentPropertyLocation); locProp != nil {
		room = strings.TrimSpace(locProp.Value)
	}
	lecturer := ""
	if desc := evt.GetProperty(ics.ComponentPropertyDescription); desc != nil {
		lecturer = strings.TrimSpace(desc.Value)
	}

	return model.ScheduleSlot{
		DayOfWeek:    semester.WeekdayIndex(dtStart),
		StartTime:    dtStart.Format("15:04"),
		EndTime:      dtEnd.Format("15:04"),
		SubjectCode:  code,
		SubjectName:  name,
		ClassType:    classType,
		Room:         room,
		LecturerName: lecturer,
	}, true
}

// splitSummary splits "TK2023 - Data Structures" style summaries into a
// subject code and name; summaries with no separator become the code alone.
func splitSummary(summary string) (code, name string) {
	s := strings.TrimSpace(summary)
	for _, sep := range []string{" - ", " – ", ": "} {
		if idx := strings.Index(s, sep); idx > 0 {
			return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):])
		}
	}
	return s, ""
}

// parseICSDateTime reads a date-time property, trying the common ICS
// formats and honoring a TZID parameter when present.
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}

	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	for _, layout := range formats {
		t, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		if strings.HasSuffix(layout, "Z") {
			return t.In(loc), nil
		}
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(loc), nil
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("unparseable ICS datetime %q", val)
}
