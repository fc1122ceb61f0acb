package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// TodoRepository is the todos data-access interface.
type TodoRepository interface {
	Create(ctx context.Context, t *model.Todo) error
	GetByID(ctx context.Context, id string) (*model.Todo, error)
	List(ctx context.Context, includeCompleted bool) ([]model.Todo, error)
	// ListOpenWithTime returns open todos carrying a specific time and not
	// dated past the limit; dateless timed todos mean today and always
	// qualify.
	ListOpenWithTime(ctx context.Context, before time.Time) ([]model.Todo, error)
	// ListOpenWithoutTime returns open todos lacking a specific time, for
	// the midnight review.
	ListOpenWithoutTime(ctx context.Context) ([]model.Todo, error)
	Update(ctx context.Context, t *model.Todo) error
	AdvanceReminderLevel(ctx context.Context, id string, level int) error
	Complete(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type todoRepo struct {
	db *gorm.DB
}

// NewTodoRepo creates the GORM-backed TodoRepository.
func NewTodoRepo(db *gorm.DB) TodoRepository {
	return &todoRepo{db: db}
}

func (r *todoRepo) Create(ctx context.Context, t *model.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *todoRepo) GetByID(ctx context.Context, id string) (*model.Todo, error) {
	var t model.Todo
	err := r.db.WithContext(ctx).
		Where("todo_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todoRepo) List(ctx context.Context, includeCompleted bool) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	var list []model.Todo
	err := q.Find(&list).Error
	return list, err
}

func (r *todoRepo) ListOpenWithTime(ctx context.Context, before time.Time) ([]model.Todo, error) {
	var list []model.Todo
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND scheduled_time IS NOT NULL AND scheduled_time <> ''", false).
		Where("scheduled_date IS NULL OR scheduled_date <= ?", before).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&list).Error
	return list, err
}

func (r *todoRepo) ListOpenWithoutTime(ctx context.Context) ([]model.Todo, error) {
	var list []model.Todo
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND (scheduled_time IS NULL OR scheduled_time = '')", false).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *todoRepo) Update(ctx context.Context, t *model.Todo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *todoRepo) AdvanceReminderLevel(ctx context.Context, id string, level int) error {
	return r.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("todo_id = ? AND last_reminder_level < ?", id, level).
		Update("last_reminder_level", level).Error
}

func (r *todoRepo) Complete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("todo_id = ?", id).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

func (r *todoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("todo_id = ?", id).
		Delete(&model.Todo{}).Error
}
