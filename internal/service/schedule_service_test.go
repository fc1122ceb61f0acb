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

func setupTestScheduleService() (ScheduleService, *mockRepos) {
	repo, mocks := newMockRepository()
	clk := clock.NewFixed(time.Date(2025, 11, 10, 20, 0, 0, 0, testLoc))
	svc := NewScheduleService(repo, clk, zap.NewNop())
	return svc, mocks
}

func intPtr(v int) *int { return &v }

func TestScheduleService_Create(t *testing.T) {
	svc, _ := setupTestScheduleService()

	result, err := svc.Create(context.Background(), &dto.CreateSlotRequest{
		DayOfWeek:   intPtr(1),
		StartTime:   "09:00",
		EndTime:     "11:00",
		SubjectCode: "TK2023",
		ClassType:   "lab",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.DayName != "Tuesday" {
		t.Errorf("expected Tuesday, got %s", result.DayName)
	}
	if result.ClassType != "LAB" {
		t.Errorf("class type should be upcased, got %s", result.ClassType)
	}
}

func TestScheduleService_Create_Validation(t *testing.T) {
	svc, _ := setupTestScheduleService()

	cases := []struct {
		name string
		req  dto.CreateSlotRequest
		want error
	}{
		{"missing day", dto.CreateSlotRequest{StartTime: "09:00", EndTime: "11:00", SubjectCode: "X"}, ErrSlotDayInvalid},
		{"day out of range", dto.CreateSlotRequest{DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "11:00", SubjectCode: "X"}, ErrSlotDayInvalid},
		{"bad time", dto.CreateSlotRequest{DayOfWeek: intPtr(0), StartTime: "9am", EndTime: "11:00", SubjectCode: "X"}, ErrSlotTimeInvalid},
		{"end before start", dto.CreateSlotRequest{DayOfWeek: intPtr(0), StartTime: "11:00", EndTime: "09:00", SubjectCode: "X"}, ErrSlotTimeInvalid},
		{"bad class type", dto.CreateSlotRequest{DayOfWeek: intPtr(0), StartTime: "09:00", EndTime: "11:00", SubjectCode: "X", ClassType: "TUT"}, ErrSlotTypeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), &tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestScheduleService_Update_RevalidatesTimes(t *testing.T) {
	svc, _ := setupTestScheduleService()

	created, _ := svc.Create(context.Background(), &dto.CreateSlotRequest{
		DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "11:00", SubjectCode: "TK2023",
	})

	// moving the start past the unchanged end must fail
	badStart := "12:00"
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateSlotRequest{StartTime: &badStart}); !errors.Is(err, ErrSlotTimeInvalid) {
		t.Errorf("expected ErrSlotTimeInvalid, got %v", err)
	}

	newRoom := "BK-5"
	result, err := svc.Update(context.Background(), created.ID, &dto.UpdateSlotRequest{Room: &newRoom})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.Room != "BK-5" {
		t.Errorf("expected the new room, got %s", result.Room)
	}
}

func TestScheduleService_ImportICS_InlineContent(t *testing.T) {
	svc, mocks := setupTestScheduleService()

	// two weekly occurrences of the same class plus one lab
	content := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:1\r\n" +
		"SUMMARY:TK2023 - Data Structures\r\n" +
		"DTSTART:20251104T090000\r\n" +
		"DTEND:20251104T110000\r\n" +
		"LOCATION:BK-2\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:2\r\n" +
		"SUMMARY:TK2023 - Data Structures\r\n" +
		"DTSTART:20251111T090000\r\n" +
		"DTEND:20251111T110000\r\n" +
		"LOCATION:BK-2\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:3\r\n" +
		"SUMMARY:TK1914 - Programming LAB\r\n" +
		"DTSTART:20251106T140000\r\n" +
		"DTEND:20251106T160000\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	result, err := svc.ImportICS(context.Background(), &dto.ImportICSRequest{Content: content})
	if err != nil {
		t.Fatalf("ImportICS should succeed: %v", err)
	}

	// weekly repeats collapse into one slot
	if result.Imported != 2 {
		t.Fatalf("expected 2 deduplicated slots, got %d", result.Imported)
	}

	first := result.Slots[0]
	if first.DayOfWeek != 1 || first.SubjectCode != "TK2023" || first.SubjectName != "Data Structures" {
		t.Errorf("unexpected first slot %+v", first)
	}
	if first.StartTime != "09:00" || first.EndTime != "11:00" || first.Room != "BK-2" {
		t.Errorf("unexpected first slot times %+v", first)
	}

	second := result.Slots[1]
	if second.DayOfWeek != 3 || second.ClassType != "LAB" {
		t.Errorf("expected a Thursday lab, got %+v", second)
	}

	// the import replaces the whole timetable
	if len(mocks.schedule.slots) != 2 {
		t.Errorf("expected the stored timetable replaced, got %d slots", len(mocks.schedule.slots))
	}
}

func TestScheduleService_ImportICS_EmptySource(t *testing.T) {
	svc, _ := setupTestScheduleService()

	if _, err := svc.ImportICS(context.Background(), &dto.ImportICSRequest{}); !errors.Is(err, ErrImportEmptySource) {
		t.Errorf("expected ErrImportEmptySource, got %v", err)
	}
}

func TestScheduleService_ImportICS_NoUsableEvents(t *testing.T) {
	svc, _ := setupTestScheduleService()

	content := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\nEND:VCALENDAR\r\n"
	if _, err := svc.ImportICS(context.Background(), &dto.ImportICSRequest{Content: content}); !errors.Is(err, ErrImportNoEvents) {
		t.Errorf("expected ErrImportNoEvents, got %v", err)
	}
}
