package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/semester"
)

// ── export business errors ──

var (
	ErrExportNoSlots      = errors.New("the timetable is empty")
	ErrExportNoEvents     = errors.New("the academic calendar is empty")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService renders stored data into downloadable files. Buffers come
// back to the handler, which sets the HTTP headers.
type ExportService interface {
	// TimetableExcel exports the weekly timetable as an .xlsx workbook.
	TimetableExcel(ctx context.Context) (*bytes.Buffer, string, error)
	// CalendarICS exports the academic events as an iCalendar feed.
	CalendarICS(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, clk: clk, logger: logger}
}

// ── TimetableExcel ──
//
// Layout: one sheet, one row per slot grouped by day:
//   | Day | Start | End | Subject | Name | Type | Room | Lecturer |

func (s *exportService) TimetableExcel(ctx context.Context) (*bytes.Buffer, string, error) {
	slots, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("listing timetable for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(slots) == 0 {
		return nil, "", ErrExportNoSlots
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timetable"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "C", 8)
	f.SetColWidth(sheet, "D", "E", 24)
	f.SetColWidth(sheet, "F", "F", 6)
	f.SetColWidth(sheet, "G", "H", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Day", "Start", "End", "Subject", "Name", "Type", "Room", "Lecturer"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	// repo.List already orders by day then start time
	row := 2
	for _, slot := range slots {
		values := []interface{}{
			semester.DayNames[slot.DayOfWeek],
			slot.StartTime,
			slot.EndTime,
			slot.SubjectCode,
			slot.SubjectName,
			slot.ClassType,
			slot.Room,
			slot.LecturerName,
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing Excel workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%s.xlsx", s.clk.Today().Format("2006-01-02"))
	return buf, filename, nil
}

// ── CalendarICS ──

func (s *exportService) CalendarICS(ctx context.Context) (*bytes.Buffer, string, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("listing events for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(events) == 0 {
		return nil, "", ErrExportNoEvents
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//productivityHelper//academic calendar//EN")

	for i := range events {
		e := &events[i]
		start, end, ok := semester.EventRange(e)
		if !ok {
			s.logger.Warn("skipping event with invalid range in export",
				zap.String("event_id", e.EventID),
				zap.String("name", e.DisplayName()),
			)
			continue
		}

		vevent := cal.AddEvent(e.EventID)
		vevent.SetSummary(e.DisplayName())
		vevent.SetAllDayStartAt(start)
		// DTEND on all-day events is exclusive
		vevent.SetAllDayEndAt(end.AddDate(0, 0, 1))
		vevent.SetProperty(ics.ComponentProperty("X-EVENT-TYPE"), e.EventType)
		if e.Name != "" && e.Name != e.DisplayName() {
			vevent.SetDescription(e.Name)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("academic_calendar_%s.ics", s.clk.Today().Format("2006-01-02"))
	return buf, filename, nil
}
