package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// ExamRepository is the exams data-access interface.
type ExamRepository interface {
	Create(ctx context.Context, e *model.Exam) error
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	List(ctx context.Context, includeCompleted bool) ([]model.Exam, error)
	ListOpenStartingBefore(ctx context.Context, limit time.Time) ([]model.Exam, error)
	Update(ctx context.Context, e *model.Exam) error
	AdvanceReminderLevel(ctx context.Context, id string, level int) error
	Complete(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type examRepo struct {
	db *gorm.DB
}

// NewExamRepo creates the GORM-backed ExamRepository.
func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Create(ctx context.Context, e *model.Exam) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *examRepo) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	var e model.Exam
	err := r.db.WithContext(ctx).
		Where("exam_id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *examRepo) List(ctx context.Context, includeCompleted bool) ([]model.Exam, error) {
	q := r.db.WithContext(ctx).Order("starts_at ASC")
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	var list []model.Exam
	err := q.Find(&list).Error
	return list, err
}

func (r *examRepo) ListOpenStartingBefore(ctx context.Context, limit time.Time) ([]model.Exam, error) {
	var list []model.Exam
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND starts_at <= ?", false, limit).
		Order("starts_at ASC").
		Find(&list).Error
	return list, err
}

func (r *examRepo) Update(ctx context.Context, e *model.Exam) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *examRepo) AdvanceReminderLevel(ctx context.Context, id string, level int) error {
	return r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("exam_id = ? AND last_reminder_level < ?", id, level).
		Update("last_reminder_level", level).Error
}

func (r *examRepo) Complete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("exam_id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("exam_id = ?", id).
		Delete(&model.Exam{}).Error
}
