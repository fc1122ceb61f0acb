package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	Event        EventRepository
	Schedule     ScheduleRepository
	Assignment   AssignmentRepository
	Exam         ExamRepository
	Task         TaskRepository
	Todo         TodoRepository
	Profile      ProfileRepository
	ReminderMark ReminderMarkRepository
}

// NewRepository wires the GORM-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Event:        NewEventRepo(db),
		Schedule:     NewScheduleRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Exam:         NewExamRepo(db),
		Task:         NewTaskRepo(db),
		Todo:         NewTodoRepo(db),
		Profile:      NewProfileRepo(db),
		ReminderMark: NewReminderMarkRepo(db),
	}
}
