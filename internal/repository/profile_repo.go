package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// ProfileRepository is the owner-profile data-access interface.
type ProfileRepository interface {
	// Upsert inserts or refreshes a profile keyed by chat id.
	Upsert(ctx context.Context, p *model.UserProfile) error
	GetByChatID(ctx context.Context, chatID int64) (*model.UserProfile, error)
	// List returns all profiles; the reminder jobs fan out over these.
	List(ctx context.Context) ([]model.UserProfile, error)
	Update(ctx context.Context, p *model.UserProfile) error
}

type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates the GORM-backed ProfileRepository.
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Upsert(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "telegram_chat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"semester_start_date", "midnight_review", "is_muted", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *profileRepo) GetByChatID(ctx context.Context, chatID int64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.db.WithContext(ctx).
		Where("telegram_chat_id = ?", chatID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) List(ctx context.Context) ([]model.UserProfile, error) {
	var list []model.UserProfile
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *profileRepo) Update(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
