package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/model"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/semester"
)

// ── profile business errors ──

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileDateInvalid = errors.New("semester_start_date must be an ISO-8601 date")
)

// ProfileService manages the owner profile: the Telegram chat to notify,
// the term start date anchoring the week counter, and alert preferences.
type ProfileService interface {
	Upsert(ctx context.Context, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	GetByChatID(ctx context.Context, chatID int64) (*dto.ProfileResponse, error)
	List(ctx context.Context) ([]dto.ProfileResponse, error)
}

type profileService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, clk: clk, logger: logger}
}

func (s *profileService) Upsert(ctx context.Context, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	p := &model.UserProfile{
		TelegramChatID: req.TelegramChatID,
		MidnightReview: true,
	}

	// preserve existing settings for fields the request omits
	if existing, err := s.repo.Profile.GetByChatID(ctx, req.TelegramChatID); err == nil {
		p.SemesterStartDate = existing.SemesterStartDate
		p.MidnightReview = existing.MidnightReview
		p.IsMuted = existing.IsMuted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("fetching profile failed", zap.Int64("chat_id", req.TelegramChatID), zap.Error(err))
		return nil, err
	}

	if req.SemesterStartDate != nil {
		if *req.SemesterStartDate == "" {
			p.SemesterStartDate = nil
		} else {
			date, err := semester.ParseDate(*req.SemesterStartDate, s.clk.Location())
			if err != nil {
				return nil, ErrProfileDateInvalid
			}
			p.SemesterStartDate = &date
		}
	}
	if req.MidnightReview != nil {
		p.MidnightReview = *req.MidnightReview
	}
	if req.IsMuted != nil {
		p.IsMuted = *req.IsMuted
	}

	if err := s.repo.Profile.Upsert(ctx, p); err != nil {
		s.logger.Error("upserting profile failed", zap.Int64("chat_id", req.TelegramChatID), zap.Error(err))
		return nil, err
	}

	// re-read so the response carries the stored row (id, defaults)
	stored, err := s.repo.Profile.GetByChatID(ctx, req.TelegramChatID)
	if err != nil {
		s.logger.Error("re-reading profile failed", zap.Int64("chat_id", req.TelegramChatID), zap.Error(err))
		return nil, err
	}
	return toProfileResponse(stored), nil
}

func (s *profileService) GetByChatID(ctx context.Context, chatID int64) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("fetching profile failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, err
	}
	return toProfileResponse(p), nil
}

func (s *profileService) List(ctx context.Context) ([]dto.ProfileResponse, error) {
	profiles, err := s.repo.Profile.List(ctx)
	if err != nil {
		s.logger.Error("listing profiles failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, *toProfileResponse(&profiles[i]))
	}
	return result, nil
}

// ── internal helpers ──

func toProfileResponse(p *model.UserProfile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:             p.UserProfileID,
		TelegramChatID: p.TelegramChatID,
		MidnightReview: p.MidnightReview,
		IsMuted:        p.IsMuted,
	}
	if p.SemesterStartDate != nil {
		date := p.SemesterStartDate.Format("2006-01-02")
		resp.SemesterStartDate = &date
	}
	return resp
}
