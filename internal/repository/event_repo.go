package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// EventRepository is the academic-events data-access interface. Events are
// immutable once stored: no update method on purpose.
type EventRepository interface {
	Create(ctx context.Context, event *model.AcademicEvent) error
	GetByID(ctx context.Context, id string) (*model.AcademicEvent, error)
	// List returns all events ordered by start date, then insertion order.
	// This ordering is the tie-break rule for overlapping events.
	List(ctx context.Context) ([]model.AcademicEvent, error)
	Delete(ctx context.Context, id string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates the GORM-backed EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.AcademicEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.AcademicEvent, error) {
	var event model.AcademicEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context) ([]model.AcademicEvent, error) {
	var events []model.AcademicEvent
	err := r.db.WithContext(ctx).
		Order("start_date ASC, created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&model.AcademicEvent{}).Error
}
