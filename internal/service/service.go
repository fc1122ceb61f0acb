package service

import (
	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/notify"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/pkg/redis"
)

// Service aggregates every business-logic entry point.
type Service struct {
	Event      EventService
	Schedule   ScheduleService
	Assignment AssignmentService
	Exam       ExamService
	Task       TaskService
	Todo       TodoService
	Profile    ProfileService
	Calendar   CalendarService
	Export     ExportService
	Briefing   BriefingService
	Reminder   ReminderService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	clk clock.Clock,
	notifier notify.Notifier,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	calendar := NewCalendarService(repo, clk, cfg, logger)
	return &Service{
		Event:      NewEventService(repo, clk, logger),
		Schedule:   NewScheduleService(repo, clk, logger),
		Assignment: NewAssignmentService(repo, clk, logger),
		Exam:       NewExamService(repo, clk, logger),
		Task:       NewTaskService(repo, clk, logger),
		Todo:       NewTodoService(repo, clk, logger),
		Profile:    NewProfileService(repo, clk, logger),
		Calendar:   calendar,
		Export:     NewExportService(repo, clk, logger),
		Briefing:   NewBriefingService(repo, clk, notifier, rdb, cfg, logger),
		Reminder:   NewReminderService(repo, clk, notifier, rdb, cfg, logger),
	}
}
