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

func setupTestProfileService() (ProfileService, *mockRepos) {
	repo, mocks := newMockRepository()
	clk := clock.NewFixed(time.Date(2025, 11, 10, 20, 0, 0, 0, testLoc))
	svc := NewProfileService(repo, clk, zap.NewNop())
	return svc, mocks
}

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestProfileService_Upsert_New(t *testing.T) {
	svc, _ := setupTestProfileService()

	result, err := svc.Upsert(context.Background(), &dto.UpsertProfileRequest{
		TelegramChatID:    1001,
		SemesterStartDate: strPtr("2025-10-06"),
	})
	if err != nil {
		t.Fatalf("Upsert should succeed: %v", err)
	}
	if result.TelegramChatID != 1001 {
		t.Errorf("expected chat id 1001, got %d", result.TelegramChatID)
	}
	if result.SemesterStartDate == nil || *result.SemesterStartDate != "2025-10-06" {
		t.Errorf("expected the stored start date, got %v", result.SemesterStartDate)
	}
	if !result.MidnightReview {
		t.Error("midnight review defaults to on")
	}
}

func TestProfileService_Upsert_PreservesOmittedFields(t *testing.T) {
	svc, _ := setupTestProfileService()

	if _, err := svc.Upsert(context.Background(), &dto.UpsertProfileRequest{
		TelegramChatID:    1001,
		SemesterStartDate: strPtr("2025-10-06"),
		MidnightReview:    boolPtr(false),
	}); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	// mute without touching the other settings
	result, err := svc.Upsert(context.Background(), &dto.UpsertProfileRequest{
		TelegramChatID: 1001,
		IsMuted:        boolPtr(true),
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if !result.IsMuted {
		t.Error("expected the profile muted")
	}
	if result.MidnightReview {
		t.Error("an omitted field must keep its stored value")
	}
	if result.SemesterStartDate == nil || *result.SemesterStartDate != "2025-10-06" {
		t.Errorf("the start date must survive, got %v", result.SemesterStartDate)
	}
}

func TestProfileService_Upsert_ClearStartDate(t *testing.T) {
	svc, _ := setupTestProfileService()

	svc.Upsert(context.Background(), &dto.UpsertProfileRequest{
		TelegramChatID:    1001,
		SemesterStartDate: strPtr("2025-10-06"),
	})

	result, err := svc.Upsert(context.Background(), &dto.UpsertProfileRequest{
		TelegramChatID:    1001,
		SemesterStartDate: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Upsert should succeed: %v", err)
	}
	if result.SemesterStartDate != nil {
		t.Errorf("an empty string clears the start date, got %v", *result.SemesterStartDate)
	}
}

func TestProfileService_Upsert_BadDate(t *testing.T) {
	svc, _ := setupTestProfileService()

	_, err := svc.Upsert(context.Background(), &dto.UpsertProfileRequest{
		TelegramChatID:    1001,
		SemesterStartDate: strPtr("06/10/2025"),
	})
	if !errors.Is(err, ErrProfileDateInvalid) {
		t.Errorf("expected ErrProfileDateInvalid, got %v", err)
	}
}

func TestProfileService_GetByChatID_NotFound(t *testing.T) {
	svc, _ := setupTestProfileService()

	if _, err := svc.GetByChatID(context.Background(), 9999); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}
