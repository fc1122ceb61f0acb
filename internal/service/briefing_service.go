package service

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// BriefingService runs the daily calendar briefing jobs. Each method is one
// scheduler job body: it decides whether anything is worth saying today,
// formats the message, and fans it out.
type BriefingService interface {
	// ClassBriefing (22:00): tomorrow's classes, skipped when tomorrow is
	// not a teaching day (the off-day alert covers that).
	ClassBriefing(ctx context.Context) error
	// OffdayAlert (20:00): warns that tomorrow's classes are cancelled.
	OffdayAlert(ctx context.Context) error
	// MidnightReview (00:00): lists open timeless todos and tasks, only to
	// profiles that opted in.
	MidnightReview(ctx context.Context) error
	// SemesterCheck (20:30): one-shot heads-up a week before the
	// inter-semester break ends.
	SemesterCheck(ctx context.Context) error
}

type briefingService struct {
	repo     *repository.Repository
	clk      clock.Clock
	dispatch *dispatcher
	logger   *zap.Logger
}

// NewBriefingService creates a BriefingService.
func NewBriefingService(
	repo *repository.Repository,
	clk clock.Clock,
	notifier notify.Notifier,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) BriefingService {
	return &briefingService{
		repo:     repo,
		clk:      clk,
		dispatch: newDispatcher(repo, notifier, rdb, cfg.Notify.SendTimeout, logger),
		logger:   logger,
	}
}

// ── ClassBriefing ──

func (s *briefingService) ClassBriefing(ctx context.Context) error {
	tomorrow := s.clk.Today().AddDate(0, 0, 1)

	events, err := s.repo.Event.List(ctx)
	if err != nil {
		return err
	}
	if !semester.IsTeachingDay(tomorrow, events) {
		s.logger.Info("tomorrow is not a teaching day, skipping class briefing")
		return nil
	}

	slots, err := s.repo.Schedule.ListByDay(ctx, semester.WeekdayIndex(tomorrow))
	if err != nil {
		return err
	}

	msg := formatClassBriefing(tomorrow, slots)
	sent := s.dispatch.sendToAll(ctx, msg)
	s.logger.Info("class briefing sent", zap.Int("recipients", sent))
	return nil
}

func formatClassBriefing(tomorrow time.Time, slots []model.ScheduleSlot) string {
	header := fmt.Sprintf("(%s, %s)", semester.DayName(tomorrow), tomorrow.Format("02 Jan"))

	if len(slots) == 0 {
		return "📚 Tomorrow " + header + "\n\nNo classes on your timetable!\nEnjoy your free day 🎉"
	}

	var b strings.Builder
	b.WriteString("📚 Classes Tomorrow " + header + ":\n")
	for _, slot := range slots {
		fmt.Fprintf(&b, "\n• %s %s-%s (%s)",
			slot.SubjectCode,
			semester.FormatClock(slot.StartTime),
			semester.FormatClock(slot.EndTime),
			slot.ClassType,
		)
		if slot.Room != "" {
			b.WriteString("\n  📍 " + slot.Room)
		}
		if slot.LecturerName != "" {
			b.WriteString("\n  👨‍🏫 " + slot.LecturerName)
		}
	}
	return b.String()
}

// ── OffdayAlert ──

func (s *briefingService) OffdayAlert(ctx context.Context) error {
	tomorrow := s.clk.Today().AddDate(0, 0, 1)

	events, err := s.repo.Event.List(ctx)
	if err != nil {
		return err
	}
	event := semester.EventOnDate(tomorrow, events)
	if event == nil {
		s.logger.Info("tomorrow is not an off day")
		return nil
	}

	slots, err := s.repo.Schedule.ListByDay(ctx, semester.WeekdayIndex(tomorrow))
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("🎉 No Classes Tomorrow!\n\n")
	fmt.Fprintf(&b, "Tomorrow (%s, %s) is:\n📅 %s",
		semester.DayName(tomorrow), tomorrow.Format("02 Jan"), event.DisplayName())
	if len(slots) > 0 {
		b.WriteString("\n\nClasses cancelled:")
		for _, slot := range slots {
			fmt.Fprintf(&b, "\n• %s at %s", slot.SubjectCode, semester.FormatClock(slot.StartTime))
		}
	}

	sent := s.dispatch.sendToAll(ctx, b.String())
	s.logger.Info("off-day alert sent",
		zap.String("event", event.DisplayName()),
		zap.Int("recipients", sent),
	)
	return nil
}

// ── MidnightReview ──

func (s *briefingService) MidnightReview(ctx context.Context) error {
	todos, err := s.repo.Todo.ListOpenWithoutTime(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.repo.Task.ListOpenWithoutTime(ctx)
	if err != nil {
		return err
	}
	if len(todos) == 0 && len(tasks) == 0 {
		s.logger.Info("nothing pending for midnight review")
		return nil
	}

	msg := formatMidnightReview(todos, tasks)

	profiles, err := s.repo.Profile.List(ctx)
	if err != nil {
		return err
	}
	sent := 0
	for i := range profiles {
		p := &profiles[i]
		if p.IsMuted || !p.MidnightReview {
			continue
		}
		if s.dispatch.sendTo(ctx, p.TelegramChatID, msg) {
			sent++
		}
	}
	s.logger.Info("midnight review sent",
		zap.Int("todos", len(todos)),
		zap.Int("tasks", len(tasks)),
		zap.Int("recipients", sent),
	)
	return nil
}

func formatMidnightReview(todos []model.Todo, tasks []model.Task) string {
	var b strings.Builder
	b.WriteString("📝 Midnight Review\n")
	fmt.Fprintf(&b, "\nYou have %d pending item(s):\n", len(todos)+len(tasks))

	n := 1
	for i := range todos {
		fmt.Fprintf(&b, "\n%d. %s", n, todos[i].Title)
		if todos[i].ScheduledDate != nil {
			fmt.Fprintf(&b, " (scheduled: %s)", todos[i].ScheduledDate.Format("2006-01-02"))
		}
		n++
	}
	for i := range tasks {
		fmt.Fprintf(&b, "\n%d. %s (task on %s)", n, tasks[i].Title, tasks[i].ScheduledDate.Format("2006-01-02"))
		n++
	}

	b.WriteString("\n\nMark items done to clear them from this review.")
	return b.String()
}

// ── SemesterCheck ──

// SemesterCheck fires once per inter-semester break: when "now" is within
// a week of the break's end, the heads-up goes out and the fired level is
// persisted against the event so restarts cannot re-send it.
func (s *briefingService) SemesterCheck(ctx context.Context) error {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		return err
	}

	// first inter-semester break with a valid range, list order
	var interBreak *model.AcademicEvent
	for i := range events {
		e := &events[i]
		if e.EventType != model.EventTypeBreak {
			continue
		}
		if semester.ClassifyBreakEvent(e) != semester.BreakInterSemester {
			continue
		}
		if _, _, ok := semester.EventRange(e); !ok {
			continue
		}
		interBreak = e
		break
	}
	if interBreak == nil {
		s.logger.Info("no inter-semester break on the calendar")
		return nil
	}
	if interBreak.EndDate == nil {
		s.logger.Info("inter-semester break has no end date")
		return nil
	}

	_, end, _ := semester.EventRange(interBreak)
	// the new term starts the day after the break ends
	termStart := end.AddDate(0, 0, 1)

	mark, err := s.repo.ReminderMark.Get(ctx, interBreak.EventID, model.ReminderKindSemesterStart)
	if err != nil {
		return err
	}
	lastLevel := 0
	if mark != nil {
		lastLevel = mark.Level
	}

	// the break's end date is the pseudo-deadline the 168h threshold runs
	// against
	level, due := reminder.NextLevel(s.clk.Now(), end, lastLevel, reminder.SemesterStartThresholds)
	if !due {
		s.logger.Info("semester-starting alert not due",
			zap.String("break_end", end.Format("2006-01-02")),
			zap.Int("last_level", lastLevel),
		)
		return nil
	}

	// persist before send: at-most-once even if delivery then fails
	if err := s.repo.ReminderMark.Advance(ctx, interBreak.EventID, model.ReminderKindSemesterStart, level); err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"📚 Heads Up!\n\nThe inter-semester break ends in 1 week!\n\n"+
			"New semester starts: %s, %s\nThat will be Week 1 of the new semester.\n\n"+
			"Time to prepare for classes!",
		semester.DayName(termStart), termStart.Format("02 Jan 2006"),
	)
	sent := s.dispatch.sendToAll(ctx, msg)
	s.logger.Info("semester-starting alert sent",
		zap.String("event_id", interBreak.EventID),
		zap.Int("recipients", sent),
	)
	return nil
}
