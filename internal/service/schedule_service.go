package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/model"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/semester"
)

// ── schedule business errors ──

var (
	ErrSlotNotFound      = errors.New("schedule slot not found")
	ErrSlotDayInvalid    = errors.New("day_of_week must be 0 (Monday) to 6 (Sunday)")
	ErrSlotTimeInvalid   = errors.New("slot times must be HH:MM and end must follow start")
	ErrSlotTypeInvalid   = errors.New("class type must be LEC or LAB")
	ErrImportEmptySource = errors.New("either url or content must be provided")
	ErrImportNoEvents    = errors.New("no usable events found in the calendar")
)

// ScheduleService manages the weekly timetable.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SlotResponse, error)
	List(ctx context.Context) ([]dto.SlotResponse, error)
	ListByDay(ctx context.Context, dayOfWeek int) ([]dto.SlotResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	Delete(ctx context.Context, id string) error
	// ImportICS replaces the whole timetable with slots parsed from an
	// iCalendar feed.
	ImportICS(ctx context.Context, req *dto.ImportICSRequest) (*dto.ImportICSResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, clk: clk, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, ErrSlotDayInvalid
	}
	if err := validateSlotTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	classType := strings.ToUpper(req.ClassType)
	if classType == "" {
		classType = model.ClassTypeLecture
	}
	if classType != model.ClassTypeLecture && classType != model.ClassTypeLab {
		return nil, ErrSlotTypeInvalid
	}

	slot := &model.ScheduleSlot{
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		SubjectCode:  req.SubjectCode,
		SubjectName:  req.SubjectName,
		ClassType:    classType,
		Room:         req.Room,
		LecturerName: req.LecturerName,
	}

	if err := s.repo.Schedule.Create(ctx, slot); err != nil {
		s.logger.Error("creating schedule slot failed", zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("fetching schedule slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

func (s *scheduleService) List(ctx context.Context) ([]dto.SlotResponse, error) {
	slots, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("listing schedule slots failed", zap.Error(err))
		return nil, err
	}
	return toSlotResponses(slots), nil
}

func (s *scheduleService) ListByDay(ctx context.Context, dayOfWeek int) ([]dto.SlotResponse, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrSlotDayInvalid
	}
	slots, err := s.repo.Schedule.ListByDay(ctx, dayOfWeek)
	if err != nil {
		s.logger.Error("listing schedule slots failed", zap.Int("day", dayOfWeek), zap.Error(err))
		return nil, err
	}
	return toSlotResponses(slots), nil
}

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	slot, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("fetching schedule slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return nil, ErrSlotDayInvalid
		}
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if err := validateSlotTimes(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if req.SubjectCode != nil {
		slot.SubjectCode = *req.SubjectCode
	}
	if req.SubjectName != nil {
		slot.SubjectName = *req.SubjectName
	}
	if req.ClassType != nil {
		ct := strings.ToUpper(*req.ClassType)
		if ct != model.ClassTypeLecture && ct != model.ClassTypeLab {
			return nil, ErrSlotTypeInvalid
		}
		slot.ClassType = ct
	}
	if req.Room != nil {
		slot.Room = *req.Room
	}
	if req.LecturerName != nil {
		slot.LecturerName = *req.LecturerName
	}

	if err := s.repo.Schedule.Update(ctx, slot); err != nil {
		s.logger.Error("updating schedule slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("fetching schedule slot failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("deleting schedule slot failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduleService) ImportICS(ctx context.Context, req *dto.ImportICSRequest) (*dto.ImportICSResponse, error) {
	if req.URL == "" && req.Content == "" {
		return nil, ErrImportEmptySource
	}

	var reader = strings.NewReader(req.Content)
	var slots []model.ScheduleSlot
	var err error
	if req.URL != "" {
		body, ferr := FetchICSContent(req.URL)
		if ferr != nil {
			return nil, ferr
		}
		defer body.Close()
		slots, err = ParseTimetableICS(body, s.clk.Location())
	} else {
		slots, err = ParseTimetableICS(reader, s.clk.Location())
	}
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrImportNoEvents
	}

	if err := s.repo.Schedule.ReplaceAll(ctx, slots); err != nil {
		s.logger.Error("replacing timetable failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("timetable imported", zap.Int("slots", len(slots)))
	return &dto.ImportICSResponse{
		Imported: len(slots),
		Slots:    toSlotResponses(slots),
	}, nil
}

// ── internal helpers ──

func validateSlotTimes(start, end string) error {
	if _, _, err := semester.ParseTimeOfDay(start); err != nil {
		return ErrSlotTimeInvalid
	}
	if _, _, err := semester.ParseTimeOfDay(end); err != nil {
		return ErrSlotTimeInvalid
	}
	if end <= start {
		return ErrSlotTimeInvalid
	}
	return nil
}

func toSlotResponse(slot *model.ScheduleSlot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:           slot.SlotID,
		DayOfWeek:    slot.DayOfWeek,
		DayName:      semester.DayNames[slot.DayOfWeek],
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		SubjectCode:  slot.SubjectCode,
		SubjectName:  slot.SubjectName,
		ClassType:    slot.ClassType,
		Room:         slot.Room,
		LecturerName: slot.LecturerName,
	}
}

func toSlotResponses(slots []model.ScheduleSlot) []dto.SlotResponse {
	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}
	return result
}
