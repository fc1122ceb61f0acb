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

// ── assignment business errors ──

var (
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAssignmentCompleted = errors.New("assignment is already completed")
	ErrDeadlineInvalid     = errors.New("deadline must be an ISO-8601 date with an optional HH:MM time")
)

// AssignmentService manages assignments. Editing the deadline resets the
// fired reminder level so the ladder replays against the new due time.
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, includeCompleted bool) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, clk: clk, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	dueAt, err := s.parseDeadline(req.DueDate, req.DueTime)
	if err != nil {
		return nil, err
	}

	a := &model.Assignment{
		Title:       req.Title,
		SubjectCode: req.SubjectCode,
		Description: req.Description,
		DueAt:       dueAt,
	}
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		s.logger.Error("creating assignment failed", zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("fetching assignment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

func (s *assignmentService) List(ctx context.Context, includeCompleted bool) ([]dto.AssignmentResponse, error) {
	list, err := s.repo.Assignment.List(ctx, includeCompleted)
	if err != nil {
		s.logger.Error("listing assignments failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAssignmentResponse(&list[i]))
	}
	return result, nil
}

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("fetching assignment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if a.IsCompleted {
		return nil, ErrAssignmentCompleted
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.SubjectCode != nil {
		a.SubjectCode = *req.SubjectCode
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.DueDate != nil || req.DueTime != nil {
		dateStr := a.DueAt.Format("2006-01-02")
		timeStr := a.DueAt.Format("15:04")
		if req.DueDate != nil {
			dateStr = *req.DueDate
		}
		if req.DueTime != nil {
			timeStr = *req.DueTime
		}
		dueAt, err := s.parseDeadline(dateStr, timeStr)
		if err != nil {
			return nil, err
		}
		a.DueAt = dueAt
		// rescheduled deadline, ladder starts over
		a.LastReminderLevel = 0
	}

	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		s.logger.Error("updating assignment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAssignmentResponse(a), nil
}

func (s *assignmentService) Complete(ctx context.Context, id string) error {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("fetching assignment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if a.IsCompleted {
		return ErrAssignmentCompleted
	}
	if err := s.repo.Assignment.Complete(ctx, id, s.clk.Now()); err != nil {
		s.logger.Error("completing assignment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("fetching assignment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		s.logger.Error("deleting assignment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func (s *assignmentService) parseDeadline(dateStr, timeStr string) (time.Time, error) {
	date, err := semester.ParseDate(dateStr, s.clk.Location())
	if err != nil {
		return time.Time{}, ErrDeadlineInvalid
	}
	dueAt, err := semester.CombineDateTime(date, timeStr, s.clk.Location())
	if err != nil {
		return time.Time{}, ErrDeadlineInvalid
	}
	return dueAt, nil
}

func toAssignmentResponse(a *model.Assignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:                a.AssignmentID,
		Title:             a.Title,
		SubjectCode:       a.SubjectCode,
		Description:       a.Description,
		DueAt:             a.DueAt.Format(time.RFC3339),
		IsCompleted:       a.IsCompleted,
		CompletedAt:       formatTimePtr(a.CompletedAt),
		LastReminderLevel: a.LastReminderLevel,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
