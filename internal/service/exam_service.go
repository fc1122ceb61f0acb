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

// ── exam business errors ──

var (
	ErrExamNotFound  = errors.New("exam not found")
	ErrExamCompleted = errors.New("exam is already marked done")
)

// ExamService manages exam sittings. Unlike assignments, an exam always has
// an explicit start time; rescheduling resets the fired reminder level.
type ExamService interface {
	Create(ctx context.Context, req *dto.CreateExamRequest) (*dto.ExamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ExamResponse, error)
	List(ctx context.Context, includeCompleted bool) ([]dto.ExamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateExamRequest) (*dto.ExamResponse, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type examService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewExamService creates an ExamService.
func NewExamService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ExamService {
	return &examService{repo: repo, clk: clk, logger: logger}
}

func (s *examService) Create(ctx context.Context, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	startsAt, err := s.parseStart(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	e := &model.Exam{
		Title:       req.Title,
		SubjectCode: req.SubjectCode,
		StartsAt:    startsAt,
		Venue:       req.Venue,
	}
	if err := s.repo.Exam.Create(ctx, e); err != nil {
		s.logger.Error("creating exam failed", zap.Error(err))
		return nil, err
	}
	return toExamResponse(e), nil
}

func (s *examService) GetByID(ctx context.Context, id string) (*dto.ExamResponse, error) {
	e, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("fetching exam failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toExamResponse(e), nil
}

func (s *examService) List(ctx context.Context, includeCompleted bool) ([]dto.ExamResponse, error) {
	list, err := s.repo.Exam.List(ctx, includeCompleted)
	if err != nil {
		s.logger.Error("listing exams failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ExamResponse, 0, len(list))
	for i := range list {
		result = append(result, *toExamResponse(&list[i]))
	}
	return result, nil
}

func (s *examService) Update(ctx context.Context, id string, req *dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	e, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("fetching exam failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if e.IsCompleted {
		return nil, ErrExamCompleted
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.SubjectCode != nil {
		e.SubjectCode = *req.SubjectCode
	}
	if req.Venue != nil {
		e.Venue = *req.Venue
	}
	if req.Date != nil || req.Time != nil {
		dateStr := e.StartsAt.Format("2006-01-02")
		timeStr := e.StartsAt.Format("15:04")
		if req.Date != nil {
			dateStr = *req.Date
		}
		if req.Time != nil {
			timeStr = *req.Time
		}
		startsAt, err := s.parseStart(dateStr, timeStr)
		if err != nil {
			return nil, err
		}
		e.StartsAt = startsAt
		e.LastReminderLevel = 0
	}

	if err := s.repo.Exam.Update(ctx, e); err != nil {
		s.logger.Error("updating exam failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toExamResponse(e), nil
}

func (s *examService) Complete(ctx context.Context, id string) error {
	e, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		s.logger.Error("fetching exam failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if e.IsCompleted {
		return ErrExamCompleted
	}
	if err := s.repo.Exam.Complete(ctx, id, s.clk.Now()); err != nil {
		s.logger.Error("completing exam failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *examService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Exam.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		s.logger.Error("fetching exam failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Exam.Delete(ctx, id); err != nil {
		s.logger.Error("deleting exam failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func (s *examService) parseStart(dateStr, timeStr string) (time.Time, error) {
	date, err := semester.ParseDate(dateStr, s.clk.Location())
	if err != nil {
		return time.Time{}, ErrDeadlineInvalid
	}
	if timeStr == "" {
		return time.Time{}, ErrDeadlineInvalid
	}
	startsAt, err := semester.CombineDateTime(date, timeStr, s.clk.Location())
	if err != nil {
		return time.Time{}, ErrDeadlineInvalid
	}
	return startsAt, nil
}

func toExamResponse(e *model.Exam) *dto.ExamResponse {
	return &dto.ExamResponse{
		ID:                e.ExamID,
		Title:             e.Title,
		SubjectCode:       e.SubjectCode,
		StartsAt:          e.StartsAt.Format(time.RFC3339),
		Venue:             e.Venue,
		IsCompleted:       e.IsCompleted,
		CompletedAt:       formatTimePtr(e.CompletedAt),
		LastReminderLevel: e.LastReminderLevel,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
}
