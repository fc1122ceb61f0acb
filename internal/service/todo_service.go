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

// ── todo business errors ──

var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrTodoCompleted   = errors.New("todo is already completed")
	ErrTodoDateInvalid = errors.New("todo date must be ISO-8601 with an optional HH:MM time")
)

// TodoService manages quick todos: date and time both optional, timed ones
// get a single reminder, timeless ones surface in the midnight review.
type TodoService interface {
	Create(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TodoResponse, error)
	List(ctx context.Context, includeCompleted bool) ([]dto.TodoResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type todoService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewTodoService creates a TodoService.
func NewTodoService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) TodoService {
	return &todoService{repo: repo, clk: clk, logger: logger}
}

func (s *todoService) Create(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	var date *time.Time
	if req.Date != "" {
		parsed, err := semester.ParseDate(req.Date, s.clk.Location())
		if err != nil {
			return nil, ErrTodoDateInvalid
		}
		date = &parsed
	}
	if req.Time != "" {
		if _, _, err := semester.ParseTimeOfDay(req.Time); err != nil {
			return nil, ErrTodoDateInvalid
		}
	}

	t := &model.Todo{
		Title:         req.Title,
		ScheduledDate: date,
		ScheduledTime: req.Time,
	}
	if err := s.repo.Todo.Create(ctx, t); err != nil {
		s.logger.Error("creating todo failed", zap.Error(err))
		return nil, err
	}
	return toTodoResponse(t), nil
}

func (s *todoService) GetByID(ctx context.Context, id string) (*dto.TodoResponse, error) {
	t, err := s.repo.Todo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		s.logger.Error("fetching todo failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTodoResponse(t), nil
}

func (s *todoService) List(ctx context.Context, includeCompleted bool) ([]dto.TodoResponse, error) {
	list, err := s.repo.Todo.List(ctx, includeCompleted)
	if err != nil {
		s.logger.Error("listing todos failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TodoResponse, 0, len(list))
	for i := range list {
		result = append(result, *toTodoResponse(&list[i]))
	}
	return result, nil
}

func (s *todoService) Update(ctx context.Context, id string, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	t, err := s.repo.Todo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		s.logger.Error("fetching todo failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if t.IsCompleted {
		return nil, ErrTodoCompleted
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	rescheduled := false
	if req.Date != nil {
		if *req.Date == "" {
			t.ScheduledDate = nil
		} else {
			date, err := semester.ParseDate(*req.Date, s.clk.Location())
			if err != nil {
				return nil, ErrTodoDateInvalid
			}
			t.ScheduledDate = &date
		}
		rescheduled = true
	}
	if req.Time != nil {
		if *req.Time != "" {
			if _, _, err := semester.ParseTimeOfDay(*req.Time); err != nil {
				return nil, ErrTodoDateInvalid
			}
		}
		t.ScheduledTime = *req.Time
		rescheduled = true
	}
	if rescheduled {
		t.LastReminderLevel = 0
	}

	if err := s.repo.Todo.Update(ctx, t); err != nil {
		s.logger.Error("updating todo failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTodoResponse(t), nil
}

func (s *todoService) Complete(ctx context.Context, id string) error {
	t, err := s.repo.Todo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		s.logger.Error("fetching todo failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if t.IsCompleted {
		return ErrTodoCompleted
	}
	if err := s.repo.Todo.Complete(ctx, id, s.clk.Now()); err != nil {
		s.logger.Error("completing todo failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Todo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		s.logger.Error("fetching todo failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Todo.Delete(ctx, id); err != nil {
		s.logger.Error("deleting todo failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func toTodoResponse(t *model.Todo) *dto.TodoResponse {
	resp := &dto.TodoResponse{
		ID:                t.TodoID,
		Title:             t.Title,
		Time:              t.ScheduledTime,
		IsCompleted:       t.IsCompleted,
		CompletedAt:       formatTimePtr(t.CompletedAt),
		LastReminderLevel: t.LastReminderLevel,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
	if t.ScheduledDate != nil {
		resp.Date = t.ScheduledDate.Format("2006-01-02")
	}
	return resp
}
