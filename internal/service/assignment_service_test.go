package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/dto"
)

func setupTestAssignmentService() (AssignmentService, *mockRepos) {
	repo, mocks := newMockRepository()
	clk := clock.NewFixed(time.Date(2025, 11, 10, 20, 0, 0, 0, testLoc))
	svc := NewAssignmentService(repo, clk, zap.NewNop())
	return svc, mocks
}

func TestAssignmentService_Create_WithTime(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	result, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title:       "Lab Report 3",
		SubjectCode: "TK2023",
		DueDate:     "2025-11-14",
		DueTime:     "17:00",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.ID == "" {
		t.Error("expected a generated id")
	}
	want := time.Date(2025, 11, 14, 17, 0, 0, 0, testLoc).Format(time.RFC3339)
	if result.DueAt != want {
		t.Errorf("expected due at %s, got %s", want, result.DueAt)
	}
	if result.LastReminderLevel != 0 {
		t.Errorf("a fresh assignment starts at level 0, got %d", result.LastReminderLevel)
	}
}

func TestAssignmentService_Create_TimelessAnchorsEndOfDay(t *testing.T) {
	svc, mocks := setupTestAssignmentService()

	result, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title:   "Essay",
		DueDate: "2025-11-14",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	stored := mocks.assignment.assignments[result.ID]
	if stored.DueAt.Hour() != 23 || stored.DueAt.Minute() != 59 {
		t.Errorf("a timeless deadline anchors at 23:59, got %v", stored.DueAt)
	}
}

func TestAssignmentService_Create_BadDate(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	_, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title:   "Essay",
		DueDate: "14/11/2025",
	})
	if !errors.Is(err, ErrDeadlineInvalid) {
		t.Errorf("expected ErrDeadlineInvalid, got %v", err)
	}
}

func TestAssignmentService_Update_RescheduleResetsLadder(t *testing.T) {
	svc, mocks := setupTestAssignmentService()

	created, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title:   "Essay",
		DueDate: "2025-11-14",
		DueTime: "17:00",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	// some reminders already fired
	mocks.assignment.assignments[created.ID].LastReminderLevel = 3

	newDate := "2025-11-20"
	result, err := svc.Update(context.Background(), created.ID, &dto.UpdateAssignmentRequest{
		DueDate: &newDate,
	})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.LastReminderLevel != 0 {
		t.Errorf("a rescheduled deadline must reset the ladder, got level %d", result.LastReminderLevel)
	}
	// the unchanged time-of-day carries over
	stored := mocks.assignment.assignments[created.ID]
	if stored.DueAt.Hour() != 17 {
		t.Errorf("expected the original 17:00 time kept, got %v", stored.DueAt)
	}
}

func TestAssignmentService_Update_TitleOnlyKeepsLadder(t *testing.T) {
	svc, mocks := setupTestAssignmentService()

	created, _ := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title:   "Essay",
		DueDate: "2025-11-14",
	})
	mocks.assignment.assignments[created.ID].LastReminderLevel = 2

	newTitle := "Essay (final)"
	result, err := svc.Update(context.Background(), created.ID, &dto.UpdateAssignmentRequest{
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.LastReminderLevel != 2 {
		t.Errorf("a title edit must not reset the ladder, got level %d", result.LastReminderLevel)
	}
}

func TestAssignmentService_Complete(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	created, _ := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Title:   "Essay",
		DueDate: "2025-11-14",
	})

	if err := svc.Complete(context.Background(), created.ID); err != nil {
		t.Fatalf("Complete should succeed: %v", err)
	}
	if err := svc.Complete(context.Background(), created.ID); !errors.Is(err, ErrAssignmentCompleted) {
		t.Errorf("completing twice: expected ErrAssignmentCompleted, got %v", err)
	}

	open, _ := svc.List(context.Background(), false)
	if len(open) != 0 {
		t.Errorf("a completed assignment must leave the open list, got %d", len(open))
	}
	all, _ := svc.List(context.Background(), true)
	if len(all) != 1 {
		t.Errorf("expected 1 assignment with all=true, got %d", len(all))
	}
}

func TestAssignmentService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("Delete: expected ErrAssignmentNotFound, got %v", err)
	}
}
