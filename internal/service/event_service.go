package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/model"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/semester"
)

// ── event business errors ──

var (
	ErrEventNotFound    = errors.New("academic event not found")
	ErrEventTypeInvalid = errors.New("unknown event type")
	ErrEventDateInvalid = errors.New("event date must be ISO-8601 and end must not precede start")
)

var validEventTypes = map[string]bool{
	model.EventTypeHoliday:           true,
	model.EventTypeBreak:             true,
	model.EventTypeExamPeriod:        true,
	model.EventTypeLecturePeriod:     true,
	model.EventTypeRegistration:      true,
	model.EventTypeOnlineInstruction: true,
}

// EventService manages the academic calendar. Events are immutable once
// created: the calendar extraction re-creates rather than edits.
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	List(ctx context.Context) ([]dto.EventResponse, error)
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewEventService creates an EventService.
func NewEventService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) EventService {
	return &eventService{repo: repo, clk: clk, logger: logger}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !validEventTypes[req.EventType] {
		return nil, ErrEventTypeInvalid
	}

	startDate, err := semester.ParseDate(req.StartDate, s.clk.Location())
	if err != nil {
		return nil, ErrEventDateInvalid
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := semester.ParseDate(*req.EndDate, s.clk.Location())
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		if parsed.Before(startDate) {
			return nil, ErrEventDateInvalid
		}
		endDate = &parsed
	}

	affects := true
	if req.AffectsClasses != nil {
		affects = *req.AffectsClasses
	}

	event := &model.AcademicEvent{
		EventType:      req.EventType,
		Name:           req.Name,
		NameEn:         req.NameEn,
		StartDate:      startDate,
		EndDate:        endDate,
		AffectsClasses: affects,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("creating academic event failed", zap.Error(err))
		return nil, err
	}

	return toEventResponse(event), nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("fetching academic event failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) List(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("listing academic events failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Event.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("fetching academic event failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("deleting academic event failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func toEventResponse(e *model.AcademicEvent) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:             e.EventID,
		EventType:      e.EventType,
		Name:           e.Name,
		NameEn:         e.NameEn,
		StartDate:      e.StartDate.Format("2006-01-02"),
		AffectsClasses: e.AffectsClasses,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.EndDate != nil {
		end := e.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}
