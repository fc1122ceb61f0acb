package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/model"
)

func setupTestCalendarService(now time.Time) (CalendarService, *mockRepos) {
	repo, mocks := newMockRepository()
	cfg := &config.Config{}
	cfg.Notify.OffdayHorizonDays = 90
	svc := NewCalendarService(repo, clock.NewFixed(now), cfg, zap.NewNop())
	return svc, mocks
}

func seedTermStart(mocks *mockRepos, start time.Time) {
	mocks.profile.profiles = append(mocks.profile.profiles, model.UserProfile{
		UserProfileID:     "prf-001",
		TelegramChatID:    1001,
		SemesterStartDate: &start,
	})
}

func TestCalendarService_Week(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, testLoc)
	svc, mocks := setupTestCalendarService(now)
	seedTermStart(mocks, time.Date(2025, 10, 6, 0, 0, 0, 0, testLoc))

	result, err := svc.Week(context.Background())
	if err != nil {
		t.Fatalf("Week should succeed: %v", err)
	}
	if result.Status != "teaching" || result.Week != 5 {
		t.Errorf("expected teaching week 5, got %s week %d", result.Status, result.Week)
	}
	if result.Label != "Week 5" {
		t.Errorf("unexpected label %q", result.Label)
	}
}

func TestCalendarService_Week_NoTermStart(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, testLoc)
	svc, mocks := setupTestCalendarService(now)
	// a profile exists, but without a semester start date
	mocks.profile.profiles = append(mocks.profile.profiles, model.UserProfile{
		UserProfileID:  "prf-001",
		TelegramChatID: 1001,
	})

	if _, err := svc.Week(context.Background()); !errors.Is(err, ErrNoTermStart) {
		t.Errorf("expected ErrNoTermStart, got %v", err)
	}
}

func TestCalendarService_WeekOn_MidBreak(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, testLoc)
	svc, mocks := setupTestCalendarService(now)
	seedTermStart(mocks, time.Date(2025, 10, 6, 0, 0, 0, 0, testLoc))

	end := time.Date(2025, 11, 23, 0, 0, 0, 0, testLoc)
	mocks.event.events = append(mocks.event.events, model.AcademicEvent{
		EventID:        "evt-001",
		EventType:      model.EventTypeBreak,
		NameEn:         "Mid-Semester Break",
		StartDate:      time.Date(2025, 11, 17, 0, 0, 0, 0, testLoc),
		EndDate:        &end,
		AffectsClasses: true,
	})

	result, err := svc.WeekOn(context.Background(), "2025-11-19")
	if err != nil {
		t.Fatalf("WeekOn should succeed: %v", err)
	}
	if result.Status != "mid_break" {
		t.Errorf("expected mid_break, got %s", result.Status)
	}
	if result.Event != "Mid-Semester Break" {
		t.Errorf("expected the break event name, got %q", result.Event)
	}
}

func TestCalendarService_WeekOn_BadDate(t *testing.T) {
	svc, _ := setupTestCalendarService(time.Date(2025, 11, 3, 10, 0, 0, 0, testLoc))

	if _, err := svc.WeekOn(context.Background(), "not-a-date"); !errors.Is(err, ErrCalendarBadDate) {
		t.Errorf("expected ErrCalendarBadDate, got %v", err)
	}
}

func TestCalendarService_Tomorrow(t *testing.T) {
	// Monday evening; tomorrow is Tuesday 2025-11-04
	now := time.Date(2025, 11, 3, 22, 0, 0, 0, testLoc)
	svc, mocks := setupTestCalendarService(now)

	mocks.schedule.slots = []model.ScheduleSlot{
		{SlotID: "slot-001", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00", SubjectCode: "TK2023"},
		{SlotID: "slot-002", DayOfWeek: 2, StartTime: "14:00", EndTime: "16:00", SubjectCode: "TK1914"},
	}

	result, err := svc.Tomorrow(context.Background())
	if err != nil {
		t.Fatalf("Tomorrow should succeed: %v", err)
	}
	if result.Date != "2025-11-04" || result.DayName != "Tuesday" {
		t.Errorf("expected Tuesday 2025-11-04, got %s %s", result.DayName, result.Date)
	}
	if !result.IsTeachingDay {
		t.Error("a plain Tuesday should be a teaching day")
	}
	if len(result.Classes) != 1 || result.Classes[0].SubjectCode != "TK2023" {
		t.Errorf("expected only the Tuesday class, got %+v", result.Classes)
	}
}

func TestCalendarService_Today_Holiday(t *testing.T) {
	now := time.Date(2025, 11, 4, 10, 0, 0, 0, testLoc)
	svc, mocks := setupTestCalendarService(now)

	mocks.event.events = append(mocks.event.events, model.AcademicEvent{
		EventID:        "evt-001",
		EventType:      model.EventTypeHoliday,
		NameEn:         "Deepavali",
		StartDate:      time.Date(2025, 11, 4, 0, 0, 0, 0, testLoc),
		AffectsClasses: true,
	})

	result, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today should succeed: %v", err)
	}
	if result.IsTeachingDay {
		t.Error("a holiday must not be a teaching day")
	}
	if result.Event != "Deepavali" {
		t.Errorf("expected the holiday name, got %q", result.Event)
	}
}

func TestCalendarService_NextOffDay(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, testLoc)
	svc, mocks := setupTestCalendarService(now)

	end := time.Date(2025, 11, 23, 0, 0, 0, 0, testLoc)
	mocks.event.events = append(mocks.event.events, model.AcademicEvent{
		EventID:        "evt-001",
		EventType:      model.EventTypeBreak,
		NameEn:         "Mid-Semester Break",
		StartDate:      time.Date(2025, 11, 17, 0, 0, 0, 0, testLoc),
		EndDate:        &end,
		AffectsClasses: true,
	})

	result, err := svc.NextOffDay(context.Background())
	if err != nil {
		t.Fatalf("NextOffDay should succeed: %v", err)
	}
	if !result.Found {
		t.Fatal("expected an off day to be found")
	}
	if result.Name != "Mid-Semester Break" || result.StartDate != "2025-11-17" {
		t.Errorf("unexpected off day %+v", result)
	}
	if result.DaysAway != 14 {
		t.Errorf("expected 14 days away, got %d", result.DaysAway)
	}
	if result.EndDate == nil || *result.EndDate != "2025-11-23" {
		t.Errorf("expected end date 2025-11-23, got %v", result.EndDate)
	}
}

func TestCalendarService_NextOffDay_NoneFound(t *testing.T) {
	svc, _ := setupTestCalendarService(time.Date(2025, 11, 3, 10, 0, 0, 0, testLoc))

	result, err := svc.NextOffDay(context.Background())
	if err != nil {
		t.Fatalf("NextOffDay should succeed: %v", err)
	}
	if result.Found {
		t.Error("expected no off day on an empty calendar")
	}
}
