package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/model"
)

func setupTestReminderService(now time.Time) (ReminderService, *mockRepos, *mockNotifier) {
	repo, mocks := newMockRepository()
	notifier := newMockNotifier()
	cfg := &config.Config{}
	cfg.Notify.SendTimeout = time.Second
	svc := NewReminderService(repo, clock.NewFixed(now), notifier, nil, cfg, zap.NewNop())
	return svc, mocks, notifier
}

func seedProfiles(mocks *mockRepos, profiles ...model.UserProfile) {
	mocks.profile.profiles = append(mocks.profile.profiles, profiles...)
}

func datePtr(d time.Time) *time.Time { return &d }

// ── assignments ──

func TestReminderService_CheckAssignments_FiresAndPersists(t *testing.T) {
	dueAt := time.Date(2025, 11, 14, 17, 0, 0, 0, testLoc)
	now := dueAt.Add(-70 * time.Hour) // inside the 72h threshold
	svc, mocks, notifier := setupTestReminderService(now)

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.assignment.assignments["asg-001"] = &model.Assignment{
		AssignmentID: "asg-001",
		Title:        "Lab Report",
		SubjectCode:  "TK2023",
		DueAt:        dueAt,
	}

	if err := svc.CheckAssignments(context.Background()); err != nil {
		t.Fatalf("CheckAssignments should succeed: %v", err)
	}

	if got := mocks.assignment.assignments["asg-001"].LastReminderLevel; got != 1 {
		t.Errorf("expected persisted level 1, got %d", got)
	}
	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	if !strings.Contains(sent[0].Text, "due in 3 days") {
		t.Errorf("unexpected level-1 text %q", sent[0].Text)
	}
	if !strings.Contains(sent[0].Text, "Lab Report (TK2023)") {
		t.Errorf("expected the subject code in the title, got %q", sent[0].Text)
	}
}

func TestReminderService_CheckAssignments_SecondRunIsSilent(t *testing.T) {
	dueAt := time.Date(2025, 11, 14, 17, 0, 0, 0, testLoc)
	now := dueAt.Add(-70 * time.Hour)
	svc, mocks, notifier := setupTestReminderService(now)

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.assignment.assignments["asg-001"] = &model.Assignment{
		AssignmentID: "asg-001", Title: "Lab Report", DueAt: dueAt,
	}

	if err := svc.CheckAssignments(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.CheckAssignments(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if got := len(notifier.Sent()); got != 1 {
		t.Errorf("re-running the poll must not re-send, got %d messages", got)
	}
}

func TestReminderService_CheckAssignments_SkipsMuted(t *testing.T) {
	dueAt := time.Date(2025, 11, 14, 17, 0, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(dueAt.Add(-time.Hour))

	seedProfiles(mocks,
		model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001},
		model.UserProfile{UserProfileID: "prf-002", TelegramChatID: 1002, IsMuted: true},
	)
	mocks.assignment.assignments["asg-001"] = &model.Assignment{
		AssignmentID: "asg-001", Title: "Lab Report", DueAt: dueAt, LastReminderLevel: 5,
	}

	if err := svc.CheckAssignments(context.Background()); err != nil {
		t.Fatalf("CheckAssignments should succeed: %v", err)
	}

	sent := notifier.Sent()
	if len(sent) != 1 || sent[0].ChatID != 1001 {
		t.Errorf("expected delivery only to the unmuted profile, got %+v", sent)
	}
}

func TestReminderService_CheckAssignments_LevelPersistsEvenIfDeliveryFails(t *testing.T) {
	dueAt := time.Date(2025, 11, 14, 17, 0, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(dueAt.Add(-70 * time.Hour))

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	notifier.failFor[1001] = true
	mocks.assignment.assignments["asg-001"] = &model.Assignment{
		AssignmentID: "asg-001", Title: "Lab Report", DueAt: dueAt,
	}

	if err := svc.CheckAssignments(context.Background()); err != nil {
		t.Fatalf("delivery failures must not fail the poll: %v", err)
	}
	if got := mocks.assignment.assignments["asg-001"].LastReminderLevel; got != 1 {
		t.Errorf("the level is persisted before sending, got %d", got)
	}
}

// ── exams ──

func TestReminderService_CheckExams_VenueFromTomorrowOn(t *testing.T) {
	startsAt := time.Date(2025, 12, 1, 9, 0, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(startsAt.Add(-20 * time.Hour))

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.exam.exams["exm-001"] = &model.Exam{
		ExamID:            "exm-001",
		Title:             "Final",
		SubjectCode:       "TK2023",
		StartsAt:          startsAt,
		Venue:             "Dewan Gemilang",
		LastReminderLevel: 2,
	}

	if err := svc.CheckExams(context.Background()); err != nil {
		t.Fatalf("CheckExams should succeed: %v", err)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	if !strings.Contains(sent[0].Text, "TOMORROW") {
		t.Errorf("expected the level-3 text, got %q", sent[0].Text)
	}
	if !strings.Contains(sent[0].Text, "📍 Dewan Gemilang") {
		t.Errorf("expected the venue from level 3 on, got %q", sent[0].Text)
	}
	if got := mocks.exam.exams["exm-001"].LastReminderLevel; got != 3 {
		t.Errorf("expected persisted level 3, got %d", got)
	}
}

func TestReminderService_CheckExams_EarlyVenueWithheld(t *testing.T) {
	startsAt := time.Date(2025, 12, 1, 9, 0, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(startsAt.Add(-160 * time.Hour))

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.exam.exams["exm-001"] = &model.Exam{
		ExamID: "exm-001", Title: "Final", StartsAt: startsAt, Venue: "Dewan Gemilang",
	}

	if err := svc.CheckExams(context.Background()); err != nil {
		t.Fatalf("CheckExams should succeed: %v", err)
	}
	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	if strings.Contains(sent[0].Text, "Dewan Gemilang") {
		t.Errorf("venue must not appear at level 1, got %q", sent[0].Text)
	}
}

// ── tasks ──

func TestReminderService_CheckTasks_DayBefore(t *testing.T) {
	now := time.Date(2025, 11, 10, 20, 0, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(now)

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.task.tasks["tsk-001"] = &model.Task{
		TaskID:        "tsk-001",
		Title:         "Dentist",
		ScheduledDate: time.Date(2025, 11, 11, 0, 0, 0, 0, testLoc),
		ScheduledTime: "15:00",
		Location:      "Klinik Pergigian",
	}

	if err := svc.CheckTasks(context.Background()); err != nil {
		t.Fatalf("CheckTasks should succeed: %v", err)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	if !strings.HasPrefix(sent[0].Text, "📋 Task Tomorrow: Dentist at 3PM") {
		t.Errorf("unexpected level-1 task text %q", sent[0].Text)
	}
	if !strings.Contains(sent[0].Text, "📍 Klinik Pergigian") {
		t.Errorf("expected the location line, got %q", sent[0].Text)
	}
}

// ── todos ──

func TestReminderService_CheckTodos_DatelessTimedMeansToday(t *testing.T) {
	now := time.Date(2025, 11, 10, 14, 30, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(now)

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.todo.todos["tdo-001"] = &model.Todo{
		TodoID:        "tdo-001",
		Title:         "Call supervisor",
		ScheduledTime: "15:00", // within the hour, today implied
	}

	if err := svc.CheckTodos(context.Background()); err != nil {
		t.Fatalf("CheckTodos should succeed: %v", err)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	if sent[0].Text != "⏰ TODO Reminder: Call supervisor at 3PM" {
		t.Errorf("unexpected todo text %q", sent[0].Text)
	}
	if got := mocks.todo.todos["tdo-001"].LastReminderLevel; got != 1 {
		t.Errorf("expected persisted level 1, got %d", got)
	}
}

func TestReminderService_CheckTodos_FarDatedNotFetched(t *testing.T) {
	now := time.Date(2025, 11, 10, 14, 30, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(now)

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.todo.todos["tdo-001"] = &model.Todo{
		TodoID:        "tdo-001",
		Title:         "Renew library card",
		ScheduledDate: datePtr(time.Date(2025, 12, 1, 0, 0, 0, 0, testLoc)),
		ScheduledTime: "15:00",
	}

	if err := svc.CheckTodos(context.Background()); err != nil {
		t.Fatalf("CheckTodos should succeed: %v", err)
	}
	if got := len(notifier.Sent()); got != 0 {
		t.Errorf("the poll is bounded to tomorrow, got %d messages", got)
	}
	if got := mocks.todo.todos["tdo-001"].LastReminderLevel; got != 0 {
		t.Errorf("a far-dated todo must stay untouched, got level %d", got)
	}
}

func TestReminderService_CheckTodos_TimelessIgnored(t *testing.T) {
	now := time.Date(2025, 11, 10, 14, 30, 0, 0, testLoc)
	svc, mocks, notifier := setupTestReminderService(now)

	seedProfiles(mocks, model.UserProfile{UserProfileID: "prf-001", TelegramChatID: 1001})
	mocks.todo.todos["tdo-001"] = &model.Todo{TodoID: "tdo-001", Title: "Buy groceries"}

	if err := svc.CheckTodos(context.Background()); err != nil {
		t.Fatalf("CheckTodos should succeed: %v", err)
	}
	if got := len(notifier.Sent()); got != 0 {
		t.Errorf("timeless todos belong to the midnight review, got %d messages", got)
	}
}
