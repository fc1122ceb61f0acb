package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/devHanif-git/productivityHelper/internal/model"
	"github.com/devHanif-git/productivityHelper/internal/repository"
)

// ── Mock EventRepository ──

type mockEventRepo struct {
	events []model.AcademicEvent
	nextID int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.AcademicEvent) error {
	if event.EventID == "" {
		m.nextID++
		event.EventID = fmt.Sprintf("evt-%03d", m.nextID)
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.AcademicEvent, error) {
	for i := range m.events {
		if m.events[i].EventID == id {
			e := m.events[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context) ([]model.AcademicEvent, error) {
	return append([]model.AcademicEvent(nil), m.events...), nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	for i := range m.events {
		if m.events[i].EventID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	slots  []model.ScheduleSlot
	nextID int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{}
}

func (m *mockScheduleRepo) Create(_ context.Context, slot *model.ScheduleSlot) error {
	if slot.SlotID == "" {
		m.nextID++
		slot.SlotID = fmt.Sprintf("slot-%03d", m.nextID)
	}
	m.slots = append(m.slots, *slot)
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduleSlot, error) {
	for i := range m.slots {
		if m.slots[i].SlotID == id {
			s := m.slots[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.ScheduleSlot, error) {
	return append([]model.ScheduleSlot(nil), m.slots...), nil
}

func (m *mockScheduleRepo) ListByDay(_ context.Context, dayOfWeek int) ([]model.ScheduleSlot, error) {
	var result []model.ScheduleSlot
	for _, s := range m.slots {
		if s.DayOfWeek == dayOfWeek {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, slot *model.ScheduleSlot) error {
	for i := range m.slots {
		if m.slots[i].SlotID == slot.SlotID {
			m.slots[i] = *slot
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	for i := range m.slots {
		if m.slots[i].SlotID == id {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockScheduleRepo) ReplaceAll(_ context.Context, slots []model.ScheduleSlot) error {
	m.slots = nil
	for i := range slots {
		if slots[i].SlotID == "" {
			m.nextID++
			slots[i].SlotID = fmt.Sprintf("slot-%03d", m.nextID)
		}
		m.slots = append(m.slots, slots[i])
	}
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	nextID      int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	if a.AssignmentID == "" {
		m.nextID++
		a.AssignmentID = fmt.Sprintf("asg-%03d", m.nextID)
	}
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context, includeCompleted bool) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if !includeCompleted && a.IsCompleted {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListOpenDueBefore(_ context.Context, limit time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.IsCompleted || a.DueAt.After(limit) {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) AdvanceReminderLevel(_ context.Context, id string, level int) error {
	if a, ok := m.assignments[id]; ok && a.LastReminderLevel < level {
		a.LastReminderLevel = level
	}
	return nil
}

func (m *mockAssignmentRepo) Complete(_ context.Context, id string, at time.Time) error {
	if a, ok := m.assignments[id]; ok {
		a.IsCompleted = true
		a.CompletedAt = &at
	}
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	exams  map[string]*model.Exam
	nextID int
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{exams: make(map[string]*model.Exam)}
}

func (m *mockExamRepo) Create(_ context.Context, e *model.Exam) error {
	if e.ExamID == "" {
		m.nextID++
		e.ExamID = fmt.Sprintf("exm-%03d", m.nextID)
	}
	cp := *e
	m.exams[e.ExamID] = &cp
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) List(_ context.Context, includeCompleted bool) ([]model.Exam, error) {
	var result []model.Exam
	for _, e := range m.exams {
		if !includeCompleted && e.IsCompleted {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockExamRepo) ListOpenStartingBefore(_ context.Context, limit time.Time) ([]model.Exam, error) {
	var result []model.Exam
	for _, e := range m.exams {
		if e.IsCompleted || e.StartsAt.After(limit) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockExamRepo) Update(_ context.Context, e *model.Exam) error {
	cp := *e
	m.exams[e.ExamID] = &cp
	return nil
}

func (m *mockExamRepo) AdvanceReminderLevel(_ context.Context, id string, level int) error {
	if e, ok := m.exams[id]; ok && e.LastReminderLevel < level {
		e.LastReminderLevel = level
	}
	return nil
}

func (m *mockExamRepo) Complete(_ context.Context, id string, at time.Time) error {
	if e, ok := m.exams[id]; ok {
		e.IsCompleted = true
		e.CompletedAt = &at
	}
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string) error {
	delete(m.exams, id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks  map[string]*model.Task
	nextID int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, t *model.Task) error {
	if t.TaskID == "" {
		m.nextID++
		t.TaskID = fmt.Sprintf("tsk-%03d", m.nextID)
	}
	cp := *t
	m.tasks[t.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context, includeCompleted bool) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if !includeCompleted && t.IsCompleted {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTaskRepo) ListOpenScheduledBefore(_ context.Context, limit time.Time) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.IsCompleted || t.ScheduledDate.After(limit) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTaskRepo) ListOpenWithoutTime(_ context.Context) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.IsCompleted || t.ScheduledTime != "" {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, t *model.Task) error {
	cp := *t
	m.tasks[t.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) AdvanceReminderLevel(_ context.Context, id string, level int) error {
	if t, ok := m.tasks[id]; ok && t.LastReminderLevel < level {
		t.LastReminderLevel = level
	}
	return nil
}

func (m *mockTaskRepo) Complete(_ context.Context, id string, at time.Time) error {
	if t, ok := m.tasks[id]; ok {
		t.IsCompleted = true
		t.CompletedAt = &at
	}
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

// ── Mock TodoRepository ──

type mockTodoRepo struct {
	todos  map[string]*model.Todo
	nextID int
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{todos: make(map[string]*model.Todo)}
}

func (m *mockTodoRepo) Create(_ context.Context, t *model.Todo) error {
	if t.TodoID == "" {
		m.nextID++
		t.TodoID = fmt.Sprintf("tdo-%03d", m.nextID)
	}
	cp := *t
	m.todos[t.TodoID] = &cp
	return nil
}

func (m *mockTodoRepo) GetByID(_ context.Context, id string) (*model.Todo, error) {
	if t, ok := m.todos[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTodoRepo) List(_ context.Context, includeCompleted bool) ([]model.Todo, error) {
	var result []model.Todo
	for _, t := range m.todos {
		if !includeCompleted && t.IsCompleted {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTodoRepo) ListOpenWithTime(_ context.Context, before time.Time) ([]model.Todo, error) {
	var result []model.Todo
	for _, t := range m.todos {
		if t.IsCompleted || t.ScheduledTime == "" {
			continue
		}
		if t.ScheduledDate != nil && t.ScheduledDate.After(before) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTodoRepo) ListOpenWithoutTime(_ context.Context) ([]model.Todo, error) {
	var result []model.Todo
	for _, t := range m.todos {
		if t.IsCompleted || t.ScheduledTime != "" {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTodoRepo) Update(_ context.Context, t *model.Todo) error {
	cp := *t
	m.todos[t.TodoID] = &cp
	return nil
}

func (m *mockTodoRepo) AdvanceReminderLevel(_ context.Context, id string, level int) error {
	if t, ok := m.todos[id]; ok && t.LastReminderLevel < level {
		t.LastReminderLevel = level
	}
	return nil
}

func (m *mockTodoRepo) Complete(_ context.Context, id string, at time.Time) error {
	if t, ok := m.todos[id]; ok {
		t.IsCompleted = true
		t.CompletedAt = &at
	}
	return nil
}

func (m *mockTodoRepo) Delete(_ context.Context, id string) error {
	delete(m.todos, id)
	return nil
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles []model.UserProfile
	nextID   int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{}
}

func (m *mockProfileRepo) Upsert(_ context.Context, p *model.UserProfile) error {
	for i := range m.profiles {
		if m.profiles[i].TelegramChatID == p.TelegramChatID {
			p.UserProfileID = m.profiles[i].UserProfileID
			m.profiles[i] = *p
			return nil
		}
	}
	if p.UserProfileID == "" {
		m.nextID++
		p.UserProfileID = fmt.Sprintf("prf-%03d", m.nextID)
	}
	m.profiles = append(m.profiles, *p)
	return nil
}

func (m *mockProfileRepo) GetByChatID(_ context.Context, chatID int64) (*model.UserProfile, error) {
	for i := range m.profiles {
		if m.profiles[i].TelegramChatID == chatID {
			p := m.profiles[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) List(_ context.Context) ([]model.UserProfile, error) {
	return append([]model.UserProfile(nil), m.profiles...), nil
}

func (m *mockProfileRepo) Update(_ context.Context, p *model.UserProfile) error {
	for i := range m.profiles {
		if m.profiles[i].UserProfileID == p.UserProfileID {
			m.profiles[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ReminderMarkRepository ──

type mockReminderMarkRepo struct {
	marks map[string]*model.EventReminderMark // key: eventID + "/" + kind
}

func newMockReminderMarkRepo() *mockReminderMarkRepo {
	return &mockReminderMarkRepo{marks: make(map[string]*model.EventReminderMark)}
}

func (m *mockReminderMarkRepo) Get(_ context.Context, eventID, kind string) (*model.EventReminderMark, error) {
	if mk, ok := m.marks[eventID+"/"+kind]; ok {
		cp := *mk
		return &cp, nil
	}
	return nil, nil
}

func (m *mockReminderMarkRepo) Advance(_ context.Context, eventID, kind string, level int) error {
	key := eventID + "/" + kind
	if mk, ok := m.marks[key]; ok {
		if level > mk.Level {
			mk.Level = level
		}
		return nil
	}
	m.marks[key] = &model.EventReminderMark{EventID: eventID, Kind: kind, Level: level}
	return nil
}

// testLoc is the fixed timezone every service test runs in.
var testLoc = time.FixedZone("MYT", 8*3600)

// ── assembly helper ──

// mockRepos bundles every mock so tests can reach into the ones they seed.
type mockRepos struct {
	event        *mockEventRepo
	schedule     *mockScheduleRepo
	assignment   *mockAssignmentRepo
	exam         *mockExamRepo
	task         *mockTaskRepo
	todo         *mockTodoRepo
	profile      *mockProfileRepo
	reminderMark *mockReminderMarkRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		event:        newMockEventRepo(),
		schedule:     newMockScheduleRepo(),
		assignment:   newMockAssignmentRepo(),
		exam:         newMockExamRepo(),
		task:         newMockTaskRepo(),
		todo:         newMockTodoRepo(),
		profile:      newMockProfileRepo(),
		reminderMark: newMockReminderMarkRepo(),
	}
	repo := &repository.Repository{
		Event:        m.event,
		Schedule:     m.schedule,
		Assignment:   m.assignment,
		Exam:         m.exam,
		Task:         m.task,
		Todo:         m.todo,
		Profile:      m.profile,
		ReminderMark: m.reminderMark,
	}
	return repo, m
}

// ── Mock Notifier ──

type sentMessage struct {
	ChatID int64
	Text   string
}

// mockNotifier records every send; FailFor makes sends to a chat id fail.
type mockNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]bool
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{failFor: make(map[int64]bool)}
}

func (m *mockNotifier) Send(_ context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[chatID] {
		return fmt.Errorf("delivery to %d failed", chatID)
	}
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *mockNotifier) Sent() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}
