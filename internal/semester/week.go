package semester

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// TermWeeks is the nominal length of an academic term in teaching weeks.
const TermWeeks = 14

// ── break classification ──

// BreakClass is the closed classification of a break-typed event.
type BreakClass int

const (
	// BreakUnclassified means the event name matched neither keyword set.
	// Such an event still cancels classes but does not suspend the week
	// counter (it behaves like a holiday).
	BreakUnclassified BreakClass = iota
	BreakMidSemester
	BreakInterSemester
)

// String implements fmt.Stringer.
func (b BreakClass) String() string {
	switch b {
	case BreakMidSemester:
		return "mid_semester"
	case BreakInterSemester:
		return "inter_semester"
	default:
		return "unclassified"
	}
}

// ClassifyBreakEvent classifies a break event by keyword-matching its Malay
// and English names. The keyword sets are small on purpose: university
// calendars name these breaks consistently ("Cuti Pertengahan Semester",
// "Mid-Semester Break", "Cuti Antara Semester", ...).
func ClassifyBreakEvent(e *model.AcademicEvent) BreakClass {
	name := strings.ToLower(e.Name)
	nameEn := strings.ToLower(e.NameEn)

	if strings.Contains(name, "pertengahan") || strings.Contains(nameEn, "mid") {
		return BreakMidSemester
	}
	if strings.Contains(name, "antara") || strings.Contains(nameEn, "inter") ||
		strings.Contains(nameEn, "semester break") {
		return BreakInterSemester
	}
	return BreakUnclassified
}

// ── week resolution ──

// WeekKind is the closed set of term positions a date can resolve to.
type WeekKind int

const (
	WeekTeaching WeekKind = iota
	WeekMidBreak
	WeekInterBreak
	WeekBeforeTerm
	WeekAfterTerm
)

// WeekStatus is the result of ResolveWeek. Week is only meaningful for
// WeekTeaching; Event is the matched break event for the two break kinds.
type WeekStatus struct {
	Kind  WeekKind
	Week  int
	Event *model.AcademicEvent
}

// Label renders the status for user-visible messages.
func (s WeekStatus) Label() string {
	switch s.Kind {
	case WeekMidBreak:
		if s.Event != nil {
			return s.Event.DisplayName()
		}
		return "Mid-Semester Break"
	case WeekInterBreak:
		if s.Event != nil {
			return s.Event.DisplayName()
		}
		return "Inter-Semester Break"
	case WeekBeforeTerm:
		return "Before semester starts"
	case WeekAfterTerm:
		return "Semester ended"
	default:
		return "Week " + strconv.Itoa(s.Week)
	}
}

// classifiedBreak is a break event with a validated date range.
type classifiedBreak struct {
	event *model.AcademicEvent
	class BreakClass
	start time.Time
	end   time.Time // inclusive
}

// classifiedBreaks extracts the mid/inter breaks from the event list in
// list order, dropping invalid ranges. Unclassified break events are
// excluded: they never suspend the week counter.
func classifiedBreaks(events []model.AcademicEvent) []classifiedBreak {
	var breaks []classifiedBreak
	for i := range events {
		e := &events[i]
		if e.EventType != model.EventTypeBreak {
			continue
		}
		start, end, ok := EventRange(e)
		if !ok {
			continue
		}
		class := ClassifyBreakEvent(e)
		if class == BreakUnclassified {
			continue
		}
		breaks = append(breaks, classifiedBreak{event: e, class: class, start: start, end: end})
	}
	return breaks
}

// EventRange returns an event's inclusive [start, end] date range,
// normalized to midnight. Events with no end date are single-day; a range
// whose end precedes its start is reported invalid.
func EventRange(e *model.AcademicEvent) (start, end time.Time, ok bool) {
	start = DateOf(e.StartDate)
	end = start
	if e.EndDate != nil {
		end = DateOf(*e.EndDate)
	}
	if end.Before(start) {
		return start, end, false
	}
	return start, end, true
}

// DateOf strips the time-of-day, keeping the location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ResolveWeek maps a date onto the term: a 1-indexed teaching week number,
// one of the two classified breaks, or a boundary status. Week numbering is
// driven by counting teaching days from the term start, skipping every day
// that falls inside a classified break range, so break weeks never consume
// a week number.
func ResolveWeek(today, termStart time.Time, events []model.AcademicEvent) WeekStatus {
	day := DateOf(today)
	start := DateOf(termStart)

	if day.Before(start) {
		return WeekStatus{Kind: WeekBeforeTerm}
	}

	breaks := classifiedBreaks(events)

	// Inside a break: the first matching break in list order wins.
	for _, b := range breaks {
		if !day.Before(b.start) && !day.After(b.end) {
			kind := WeekMidBreak
			if b.class == BreakInterSemester {
				kind = WeekInterBreak
			}
			return WeekStatus{Kind: kind, Event: b.event}
		}
	}

	inBreak := func(d time.Time) bool {
		for _, b := range breaks {
			if !d.Before(b.start) && !d.After(b.end) {
				return true
			}
		}
		return false
	}

	// Walk [start, today] counting days outside break ranges; every 7 such
	// days advance the week counter.
	teachingDays := 0
	for d := start; !d.After(day); d = d.AddDate(0, 0, 1) {
		if inBreak(d) {
			continue
		}
		teachingDays++
	}

	week := (teachingDays-1)/7 + 1
	if week > TermWeeks {
		return WeekStatus{Kind: WeekAfterTerm}
	}
	return WeekStatus{Kind: WeekTeaching, Week: week}
}

// ── day queries ──

// WeekdayIndex converts a date to the 0=Monday .. 6=Sunday numbering used
// by schedule slots.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// EventOnDate returns the first class-canceling event (in list order)
// covering the date, or nil.
func EventOnDate(date time.Time, events []model.AcademicEvent) *model.AcademicEvent {
	day := DateOf(date)
	for i := range events {
		e := &events[i]
		if !e.AffectsClasses {
			continue
		}
		start, end, ok := EventRange(e)
		if !ok {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return e
		}
	}
	return nil
}

// IsTeachingDay reports whether regular classes run on the date: a weekday
// not covered by any class-canceling event.
func IsTeachingDay(date time.Time, events []model.AcademicEvent) bool {
	if WeekdayIndex(date) >= 5 { // Saturday, Sunday
		return false
	}
	return EventOnDate(date, events) == nil
}

// NextOffDay finds the earliest class-canceling event starting strictly
// after today and within the horizon. Ties resolve to the earliest start
// date, then to list order.
func NextOffDay(today time.Time, events []model.AcademicEvent, horizonDays int) *model.AcademicEvent {
	day := DateOf(today)
	limit := day.AddDate(0, 0, horizonDays)

	var nearest *model.AcademicEvent
	var nearestStart time.Time
	for i := range events {
		e := &events[i]
		if !e.AffectsClasses {
			continue
		}
		start, _, ok := EventRange(e)
		if !ok {
			continue
		}
		if !start.After(day) || start.After(limit) {
			continue
		}
		if nearest == nil || start.Before(nearestStart) {
			nearest = e
			nearestStart = start
		}
	}
	return nearest
}

// AffectedClasses lists the schedule slots that would have run on the date
// but are cancelled by a class-canceling event, sorted by start time. An
// unaffected date yields nil.
func AffectedClasses(date time.Time, schedule []model.ScheduleSlot, events []model.AcademicEvent) []model.ScheduleSlot {
	if EventOnDate(date, events) == nil {
		return nil
	}

	dow := WeekdayIndex(date)
	var affected []model.ScheduleSlot
	for _, slot := range schedule {
		if slot.DayOfWeek == dow {
			affected = append(affected, slot)
		}
	}
	sort.Slice(affected, func(i, j int) bool {
		return affected[i].StartTime < affected[j].StartTime
	})
	return affected
}
