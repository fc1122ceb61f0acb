package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// ScheduleRepository is the weekly-timetable data-access interface.
type ScheduleRepository interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id string) (*model.ScheduleSlot, error)
	List(ctx context.Context) ([]model.ScheduleSlot, error)
	ListByDay(ctx context.Context, dayOfWeek int) ([]model.ScheduleSlot, error)
	Update(ctx context.Context, slot *model.ScheduleSlot) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll swaps the whole timetable in one transaction (ICS import).
	ReplaceAll(ctx context.Context, slots []model.ScheduleSlot) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the GORM-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleSlot, error) {
	var slot model.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.ScheduleSlot, error) {
	var slots []model.ScheduleSlot
	err := r.db.WithContext(ctx).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *scheduleRepo) ListByDay(ctx context.Context, dayOfWeek int) ([]model.ScheduleSlot, error) {
	var slots []model.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("day_of_week = ?", dayOfWeek).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *scheduleRepo) Update(ctx context.Context, slot *model.ScheduleSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.ScheduleSlot{}).Error
}

func (r *scheduleRepo) ReplaceAll(ctx context.Context, slots []model.ScheduleSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ScheduleSlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}
