package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/model"
	"github.com/devHanif-git/productivityHelper/internal/notify"
	"github.com/devHanif-git/productivityHelper/internal/reminder"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/semester"
	"github.com/devHanif-git/productivityHelper/pkg/redis"
)

// ReminderService runs the escalation polls. Every poll is idempotent: the
// new level is persisted before the message goes out, so a crash between
// the two loses a message, never duplicates one, and re-running a poll is
// always safe.
type ReminderService interface {
	CheckAssignments(ctx context.Context) error
	CheckExams(ctx context.Context) error
	CheckTasks(ctx context.Context) error
	CheckTodos(ctx context.Context) error
}

type reminderService struct {
	repo     *repository.Repository
	clk      clock.Clock
	dispatch *dispatcher
	logger   *zap.Logger
}

// NewReminderService creates a ReminderService.
func NewReminderService(
	repo *repository.Repository,
	clk clock.Clock,
	notifier notify.Notifier,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ReminderService {
	return &reminderService{
		repo:     repo,
		clk:      clk,
		dispatch: newDispatcher(repo, notifier, rdb, cfg.Notify.SendTimeout, logger),
		logger:   logger,
	}
}

// ── assignments ──

func (s *reminderService) CheckAssignments(ctx context.Context) error {
	now := s.clk.Now()
	limit := now.Add(reminder.QueryHorizon(reminder.AssignmentThresholds))

	assignments, err := s.repo.Assignment.ListOpenDueBefore(ctx, limit)
	if err != nil {
		return err
	}

	for i := range assignments {
		a := &assignments[i]
		level, due := reminder.NextLevel(now, a.DueAt, a.LastReminderLevel, reminder.AssignmentThresholds)
		if !due {
			continue
		}
		if err := s.repo.Assignment.AdvanceReminderLevel(ctx, a.AssignmentID, level); err != nil {
			s.logger.Error("advancing assignment reminder level failed",
				zap.String("id", a.AssignmentID), zap.Error(err))
			continue
		}
		s.dispatch.sendToAll(ctx, assignmentReminderText(a, level))
		s.logger.Info("assignment reminder fired",
			zap.String("id", a.AssignmentID),
			zap.Int("level", level),
		)
	}
	return nil
}

func assignmentReminderText(a *model.Assignment, level int) string {
	title := a.Title
	if a.SubjectCode != "" {
		title = fmt.Sprintf("%s (%s)", a.Title, a.SubjectCode)
	}
	dueDate := a.DueAt.Format("Mon 02 Jan")
	dueTime := a.DueAt.Format("3:04PM")

	switch level {
	case 1:
		return fmt.Sprintf("⏰ Assignment '%s' due in 3 days (%s)", title, dueDate)
	case 2:
		return fmt.Sprintf("⏰ Assignment '%s' due in 2 days (%s)", title, dueDate)
	case 3:
		return fmt.Sprintf("⏰ Assignment '%s' due TOMORROW at %s!", title, dueTime)
	case 4:
		return fmt.Sprintf("⏰ 8 hours left for '%s'!", title)
	case 5:
		return fmt.Sprintf("⏰ Only 3 hours left for '%s'!", title)
	case 6:
		return fmt.Sprintf("⏰ URGENT: 1 hour remaining for '%s'!", title)
	case 7:
		return fmt.Sprintf("⏰ Assignment '%s' is NOW DUE!", title)
	default:
		return fmt.Sprintf("⏰ Reminder for '%s'", title)
	}
}

// ── exams ──

func (s *reminderService) CheckExams(ctx context.Context) error {
	now := s.clk.Now()
	limit := now.Add(reminder.QueryHorizon(reminder.ExamThresholds))

	exams, err := s.repo.Exam.ListOpenStartingBefore(ctx, limit)
	if err != nil {
		return err
	}

	for i := range exams {
		e := &exams[i]
		level, due := reminder.NextLevel(now, e.StartsAt, e.LastReminderLevel, reminder.ExamThresholds)
		if !due {
			continue
		}
		if err := s.repo.Exam.AdvanceReminderLevel(ctx, e.ExamID, level); err != nil {
			s.logger.Error("advancing exam reminder level failed",
				zap.String("id", e.ExamID), zap.Error(err))
			continue
		}
		s.dispatch.sendToAll(ctx, examReminderText(e, level))
		s.logger.Info("exam reminder fired",
			zap.String("id", e.ExamID),
			zap.Int("level", level),
		)
	}
	return nil
}

func examReminderText(e *model.Exam, level int) string {
	title := e.Title
	if e.SubjectCode != "" {
		title = fmt.Sprintf("%s (%s)", e.Title, e.SubjectCode)
	}
	date := e.StartsAt.Format("Mon 02 Jan")
	clockStr := e.StartsAt.Format("3:04PM")

	var msg string
	switch level {
	case 1:
		msg = fmt.Sprintf("📖 Exam '%s' in 1 week (%s)", title, date)
	case 2:
		msg = fmt.Sprintf("📖 Exam '%s' in 3 days (%s)", title, date)
	case 3:
		msg = fmt.Sprintf("📖 Exam '%s' TOMORROW at %s!", title, clockStr)
	case 4:
		msg = fmt.Sprintf("📖 Exam '%s' starts in 3 hours at %s!", title, clockStr)
	default:
		msg = fmt.Sprintf("📖 Exam reminder for '%s'", title)
	}
	if e.Venue != "" && level >= 3 {
		msg += "\n📍 " + e.Venue
	}
	return msg
}

// ── tasks ──

func (s *reminderService) CheckTasks(ctx context.Context) error {
	now := s.clk.Now()
	// scheduled_date is a plain date; the day after today covers the 24h
	// threshold for any time-of-day anchor
	limit := s.clk.Today().AddDate(0, 0, 1)

	tasks, err := s.repo.Task.ListOpenScheduledBefore(ctx, limit)
	if err != nil {
		return err
	}

	for i := range tasks {
		t := &tasks[i]
		deadline, err := semester.CombineDateTime(t.ScheduledDate, t.ScheduledTime, s.clk.Location())
		if err != nil {
			s.logger.Warn("skipping task with bad scheduled time",
				zap.String("id", t.TaskID),
				zap.String("time", t.ScheduledTime),
			)
			continue
		}
		level, due := reminder.NextLevel(now, deadline, t.LastReminderLevel, reminder.TaskThresholds)
		if !due {
			continue
		}
		if err := s.repo.Task.AdvanceReminderLevel(ctx, t.TaskID, level); err != nil {
			s.logger.Error("advancing task reminder level failed",
				zap.String("id", t.TaskID), zap.Error(err))
			continue
		}
		s.dispatch.sendToAll(ctx, taskReminderText(t, level))
		s.logger.Info("task reminder fired",
			zap.String("id", t.TaskID),
			zap.Int("level", level),
		)
	}
	return nil
}

func taskReminderText(t *model.Task, level int) string {
	var msg string
	if level == 1 {
		msg = "📋 Task Tomorrow: " + t.Title
	} else {
		msg = "⏰ Task in 2 hours: " + t.Title
	}
	if t.ScheduledTime != "" {
		msg += " at " + semester.FormatClock(t.ScheduledTime)
	}
	if t.Location != "" {
		msg += "\n📍 " + t.Location
	}
	return msg
}

// ── todos ──

func (s *reminderService) CheckTodos(ctx context.Context) error {
	now := s.clk.Now()
	// scheduled_date is a plain date; the day after today covers the 1h
	// threshold across midnight
	limit := s.clk.Today().AddDate(0, 0, 1)

	todos, err := s.repo.Todo.ListOpenWithTime(ctx, limit)
	if err != nil {
		return err
	}

	for i := range todos {
		t := &todos[i]
		// a dateless timed todo means today
		date := s.clk.Today()
		if t.ScheduledDate != nil {
			date = *t.ScheduledDate
		}
		deadline, err := semester.CombineDateTime(date, t.ScheduledTime, s.clk.Location())
		if err != nil {
			s.logger.Warn("skipping todo with bad scheduled time",
				zap.String("id", t.TodoID),
				zap.String("time", t.ScheduledTime),
			)
			continue
		}
		level, due := reminder.NextLevel(now, deadline, t.LastReminderLevel, reminder.TodoThresholds)
		if !due {
			continue
		}
		if err := s.repo.Todo.AdvanceReminderLevel(ctx, t.TodoID, level); err != nil {
			s.logger.Error("advancing todo reminder level failed",
				zap.String("id", t.TodoID), zap.Error(err))
			continue
		}
		msg := "⏰ TODO Reminder: " + t.Title + " at " + semester.FormatClock(t.ScheduledTime)
		s.dispatch.sendToAll(ctx, msg)
		s.logger.Info("todo reminder fired",
			zap.String("id", t.TodoID),
			zap.Int("level", level),
		)
	}
	return nil
}
