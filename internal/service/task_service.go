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

// ── task business errors ──

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskCompleted   = errors.New("task is already completed")
	ErrTaskDateInvalid = errors.New("task date must be ISO-8601 with an optional HH:MM time")
)

// TaskService manages scheduled tasks (meetings, errands).
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TaskResponse, error)
	List(ctx context.Context, includeCompleted bool) ([]dto.TaskResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, clk: clk, logger: logger}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	date, err := semester.ParseDate(req.Date, s.clk.Location())
	if err != nil {
		return nil, ErrTaskDateInvalid
	}
	if req.Time != "" {
		if _, _, err := semester.ParseTimeOfDay(req.Time); err != nil {
			return nil, ErrTaskDateInvalid
		}
	}

	t := &model.Task{
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: date,
		ScheduledTime: req.Time,
		Location:      req.Location,
	}
	if err := s.repo.Task.Create(ctx, t); err != nil {
		s.logger.Error("creating task failed", zap.Error(err))
		return nil, err
	}
	return toTaskResponse(t), nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	t, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("fetching task failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTaskResponse(t), nil
}

func (s *taskService) List(ctx context.Context, includeCompleted bool) ([]dto.TaskResponse, error) {
	list, err := s.repo.Task.List(ctx, includeCompleted)
	if err != nil {
		s.logger.Error("listing tasks failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TaskResponse, 0, len(list))
	for i := range list {
		result = append(result, *toTaskResponse(&list[i]))
	}
	return result, nil
}

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("fetching task failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if t.IsCompleted {
		return nil, ErrTaskCompleted
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Location != nil {
		t.Location = *req.Location
	}
	rescheduled := false
	if req.Date != nil {
		date, err := semester.ParseDate(*req.Date, s.clk.Location())
		if err != nil {
			return nil, ErrTaskDateInvalid
		}
		t.ScheduledDate = date
		rescheduled = true
	}
	if req.Time != nil {
		if *req.Time != "" {
			if _, _, err := semester.ParseTimeOfDay(*req.Time); err != nil {
				return nil, ErrTaskDateInvalid
			}
		}
		t.ScheduledTime = *req.Time
		rescheduled = true
	}
	if rescheduled {
		t.LastReminderLevel = 0
	}

	if err := s.repo.Task.Update(ctx, t); err != nil {
		s.logger.Error("updating task failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTaskResponse(t), nil
}

func (s *taskService) Complete(ctx context.Context, id string) error {
	t, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("fetching task failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if t.IsCompleted {
		return ErrTaskCompleted
	}
	if err := s.repo.Task.Complete(ctx, id, s.clk.Now()); err != nil {
		s.logger.Error("completing task failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Task.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		s.logger.Error("fetching task failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Task.Delete(ctx, id); err != nil {
		s.logger.Error("deleting task failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func toTaskResponse(t *model.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:                t.TaskID,
		Title:             t.Title,
		Description:       t.Description,
		Date:              t.ScheduledDate.Format("2006-01-02"),
		Time:              t.ScheduledTime,
		Location:          t.Location,
		IsCompleted:       t.IsCompleted,
		CompletedAt:       formatTimePtr(t.CompletedAt),
		LastReminderLevel: t.LastReminderLevel,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
	}
}
