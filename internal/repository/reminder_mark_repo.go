package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devHanif-git/productivityHelper/internal/model"
)

// ReminderMarkRepository persists fired levels for calendar-driven
// pseudo-escalations (currently only the semester-starting alert).
type ReminderMarkRepository interface {
	// Get returns the mark for (event, kind), or nil when never fired.
	Get(ctx context.Context, eventID, kind string) (*model.EventReminderMark, error)
	// Advance records a fired level. The GREATEST keeps the level
	// monotonic under concurrent writers.
	Advance(ctx context.Context, eventID, kind string, level int) error
}

type reminderMarkRepo struct {
	db *gorm.DB
}

// NewReminderMarkRepo creates the GORM-backed ReminderMarkRepository.
func NewReminderMarkRepo(db *gorm.DB) ReminderMarkRepository {
	return &reminderMarkRepo{db: db}
}

func (r *reminderMarkRepo) Get(ctx context.Context, eventID, kind string) (*model.EventReminderMark, error) {
	var mark model.EventReminderMark
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND kind = ?", eventID, kind).
		First(&mark).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &mark, nil
}

func (r *reminderMarkRepo) Advance(ctx context.Context, eventID, kind string, level int) error {
	mark := model.EventReminderMark{EventID: eventID, Kind: kind, Level: level}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}, {Name: "kind"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"level": gorm.Expr("GREATEST(event_reminder_marks.level, EXCLUDED.level)"),
			}),
		}).
		Create(&mark).Error
}
