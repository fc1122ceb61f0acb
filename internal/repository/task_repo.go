package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// TaskRepository is the tasks data-access interface.
type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, includeCompleted bool) ([]model.Task, error)
	// ListOpenScheduledBefore returns open tasks dated on or before the
	// limit date (inclusive), the reminder poll's bounded fetch.
	ListOpenScheduledBefore(ctx context.Context, limit time.Time) ([]model.Task, error)
	// ListOpenWithoutTime returns open tasks lacking a specific time, for
	// the midnight review.
	ListOpenWithoutTime(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	AdvanceReminderLevel(ctx context.Context, id string, level int) error
	Complete(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo creates the GORM-backed TaskRepository.
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, includeCompleted bool) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Order("scheduled_date ASC, scheduled_time ASC")
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	var list []model.Task
	err := q.Find(&list).Error
	return list, err
}

func (r *taskRepo) ListOpenScheduledBefore(ctx context.Context, limit time.Time) ([]model.Task, error) {
	var list []model.Task
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND scheduled_date <= ?", false, limit).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&list).Error
	return list, err
}

func (r *taskRepo) ListOpenWithoutTime(ctx context.Context) ([]model.Task, error) {
	var list []model.Task
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND (scheduled_time IS NULL OR scheduled_time = '')", false).
		Order("scheduled_date ASC").
		Find(&list).Error
	return list, err
}

func (r *taskRepo) Update(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *taskRepo) AdvanceReminderLevel(ctx context.Context, id string, level int) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ? AND last_reminder_level < ?", id, level).
		Update("last_reminder_level", level).Error
}

func (r *taskRepo) Complete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.Task{}).Error
}
