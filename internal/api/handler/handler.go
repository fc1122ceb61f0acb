package handler

import (
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/scheduler"
	"github.com/devHanif-git/productivityHelper/internal/service"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Calendar   *CalendarHandler
	Event      *EventHandler
	Schedule   *ScheduleHandler
	Assignment *AssignmentHandler
	Exam       *ExamHandler
	Task       *TaskHandler
	Todo       *TodoHandler
	Profile    *ProfileHandler
	Export     *ExportHandler
	Debug      *DebugHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service, clk *clock.SystemClock, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		Calendar:   NewCalendarHandler(svc.Calendar),
		Event:      NewEventHandler(svc.Event),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Exam:       NewExamHandler(svc.Exam),
		Task:       NewTaskHandler(svc.Task),
		Todo:       NewTodoHandler(svc.Todo),
		Profile:    NewProfileHandler(svc.Profile),
		Export:     NewExportHandler(svc.Export),
		Debug:      NewDebugHandler(clk, sched),
	}
}
