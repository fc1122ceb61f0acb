package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/dto"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/semester"
)

// ── calendar business errors ──

var (
	ErrNoTermStart     = errors.New("no semester start date configured")
	ErrCalendarBadDate = errors.New("date must be ISO-8601")
)

// CalendarService answers "where in the term are we" questions: current
// week, teaching-day status, next off-day. It reads the event list fresh on
// every call; the resolver itself is pure.
type CalendarService interface {
	// Week resolves today's term position.
	Week(ctx context.Context) (*dto.WeekResponse, error)
	// WeekOn resolves an arbitrary ISO-8601 date.
	WeekOn(ctx context.Context, date string) (*dto.WeekResponse, error)
	// Today lists today's classes and teaching-day status.
	Today(ctx context.Context) (*dto.DayClassesResponse, error)
	// Tomorrow lists tomorrow's classes and teaching-day status.
	Tomorrow(ctx context.Context) (*dto.DayClassesResponse, error)
	// NextOffDay finds the next class-canceling event within the
	// configured horizon.
	NextOffDay(ctx context.Context) (*dto.OffDayResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	clk    clock.Clock
	cfg    *config.Config
	logger *zap.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, clk clock.Clock, cfg *config.Config, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, clk: clk, cfg: cfg, logger: logger}
}

func (s *calendarService) Week(ctx context.Context) (*dto.WeekResponse, error) {
	return s.weekFor(ctx, s.clk.Today())
}

func (s *calendarService) WeekOn(ctx context.Context, date string) (*dto.WeekResponse, error) {
	day, err := semester.ParseDate(date, s.clk.Location())
	if err != nil {
		return nil, ErrCalendarBadDate
	}
	return s.weekFor(ctx, day)
}

func (s *calendarService) weekFor(ctx context.Context, day time.Time) (*dto.WeekResponse, error) {
	termStart, err := s.termStart(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("listing events failed", zap.Error(err))
		return nil, err
	}

	status := semester.ResolveWeek(day, termStart, events)
	resp := &dto.WeekResponse{
		Date:   day.Format("2006-01-02"),
		Status: weekKindString(status.Kind),
		Week:   status.Week,
		Label:  status.Label(),
	}
	if status.Event != nil {
		resp.Event = status.Event.DisplayName()
	}
	return resp, nil
}

func (s *calendarService) Today(ctx context.Context) (*dto.DayClassesResponse, error) {
	return s.dayClasses(ctx, s.clk.Today())
}

func (s *calendarService) Tomorrow(ctx context.Context) (*dto.DayClassesResponse, error) {
	return s.dayClasses(ctx, s.clk.Today().AddDate(0, 0, 1))
}

func (s *calendarService) dayClasses(ctx context.Context, day time.Time) (*dto.DayClassesResponse, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("listing events failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.DayClassesResponse{
		Date:          day.Format("2006-01-02"),
		DayName:       semester.DayName(day),
		IsTeachingDay: semester.IsTeachingDay(day, events),
		Classes:       []dto.SlotResponse{},
	}
	if event := semester.EventOnDate(day, events); event != nil {
		resp.Event = event.DisplayName()
	}

	slots, err := s.repo.Schedule.ListByDay(ctx, semester.WeekdayIndex(day))
	if err != nil {
		s.logger.Error("listing day schedule failed", zap.Error(err))
		return nil, err
	}
	resp.Classes = toSlotResponses(slots)
	return resp, nil
}

func (s *calendarService) NextOffDay(ctx context.Context) (*dto.OffDayResponse, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("listing events failed", zap.Error(err))
		return nil, err
	}

	today := s.clk.Today()
	event := semester.NextOffDay(today, events, s.cfg.Notify.OffdayHorizonDays)
	if event == nil {
		return &dto.OffDayResponse{Found: false}, nil
	}

	start, end, _ := semester.EventRange(event)
	resp := &dto.OffDayResponse{
		Found:     true,
		Name:      event.DisplayName(),
		StartDate: start.Format("2006-01-02"),
		DaysAway:  int(start.Sub(today).Hours() / 24),
	}
	if event.EndDate != nil {
		endStr := end.Format("2006-01-02")
		resp.EndDate = &endStr
	}
	return resp, nil
}

// ── internal helpers ──

// termStart reads the semester start date off the first profile that has
// one set.
func (s *calendarService) termStart(ctx context.Context) (time.Time, error) {
	profiles, err := s.repo.Profile.List(ctx)
	if err != nil {
		s.logger.Error("listing profiles failed", zap.Error(err))
		return time.Time{}, err
	}
	for i := range profiles {
		if profiles[i].SemesterStartDate != nil {
			return *profiles[i].SemesterStartDate, nil
		}
	}
	return time.Time{}, ErrNoTermStart
}

func weekKindString(kind semester.WeekKind) string {
	switch kind {
	case semester.WeekMidBreak:
		return "mid_break"
	case semester.WeekInterBreak:
		return "inter_break"
	case semester.WeekBeforeTerm:
		return "before_term"
	case semester.WeekAfterTerm:
		return "after_term"
	default:
		return "teaching"
	}
}
