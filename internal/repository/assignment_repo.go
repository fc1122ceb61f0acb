package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// AssignmentRepository is the assignments data-access interface.
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context, includeCompleted bool) ([]model.Assignment, error)
	// ListOpenDueBefore returns open assignments with due_at <= limit,
	// the reminder poll's bounded fetch.
	ListOpenDueBefore(ctx context.Context, limit time.Time) ([]model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
	// AdvanceReminderLevel persists a newly fired level. The WHERE guard
	// keeps the level monotonic even if two pollers race.
	AdvanceReminderLevel(ctx context.Context, id string, level int) error
	Complete(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates the GORM-backed AssignmentRepository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) List(ctx context.Context, includeCompleted bool) ([]model.Assignment, error) {
	q := r.db.WithContext(ctx).Order("due_at ASC")
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	var list []model.Assignment
	err := q.Find(&list).Error
	return list, err
}

func (r *assignmentRepo) ListOpenDueBefore(ctx context.Context, limit time.Time) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND due_at <= ?", false, limit).
		Order("due_at ASC").
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assignmentRepo) AdvanceReminderLevel(ctx context.Context, id string, level int) error {
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ? AND last_reminder_level < ?", id, level).
		Update("last_reminder_level", level).Error
}

func (r *assignmentRepo) Complete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}
