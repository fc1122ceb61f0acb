// Package scheduler drives the recurring jobs: daily briefings on cron
// times, escalation polls on a fixed interval. It owns per-job state
// (running flag, counters, last error) so the debug surface can inspect
// and trigger jobs by name.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/semester"
	"github.com/devHanif-git/productivityHelper/internal/service"
	"github.com/devHanif-git/productivityHelper/pkg/redis"
)

// Job names, used by the trigger endpoint and the Redis day-marks.
const (
	JobClassBriefing  = "class_briefing"
	JobOffdayAlert    = "offday_alert"
	JobMidnightReview = "midnight_review"
	JobSemesterCheck  = "semester_check"
	JobAssignments    = "assignment_reminders"
	JobExams          = "exam_reminders"
	JobTasks          = "task_reminders"
	JobTodos          = "todo_reminders"
)

// ErrUnknownJob is returned by TriggerJob for an unregistered name.
var ErrUnknownJob = fmt.Errorf("unknown job name")

// JobState is one job's observable state snapshot.
type JobState struct {
	Name      string
	Spec      string
	Running   bool
	Runs      int64
	Skips     int64
	Failures  int64
	LastRunAt time.Time
	LastError string
}

// job wraps a job body with its bookkeeping. An occurrence that lands while
// the previous one still runs is skipped, not queued.
type job struct {
	name  string
	spec  string
	daily bool // daily jobs get Redis day-marks and startup catch-up
	at    string
	run   func(ctx context.Context) error

	running  atomic.Bool
	runs     atomic.Int64
	skips    atomic.Int64
	failures atomic.Int64

	mu        sync.Mutex
	lastRunAt time.Time
	lastError string
}

// Scheduler owns the cron runner and the registered jobs.
type Scheduler struct {
	cron   *cron.Cron
	jobs   []*job
	byName map[string]*job
	clk    clock.Clock
	rdb    *redis.Client
	cfg    *config.Config
	logger *zap.Logger
}

// New builds the scheduler with the full job set registered against the
// configured times.
func New(svc *service.Service, clk clock.Clock, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(clk.Location())),
		byName: make(map[string]*job),
		clk:    clk,
		rdb:    rdb,
		cfg:    cfg,
		logger: logger,
	}

	pollSpec := fmt.Sprintf("@every %s", cfg.Notify.PollInterval)
	defs := []struct {
		name  string
		at    string // "HH:MM" for daily jobs, empty for interval polls
		spec  string
		run   func(ctx context.Context) error
		daily bool
	}{
		{JobClassBriefing, cfg.Notify.ClassBriefingAt, "", svc.Briefing.ClassBriefing, true},
		{JobOffdayAlert, cfg.Notify.OffdayAlertAt, "", svc.Briefing.OffdayAlert, true},
		{JobMidnightReview, cfg.Notify.MidnightReviewAt, "", svc.Briefing.MidnightReview, true},
		{JobSemesterCheck, cfg.Notify.SemesterCheckAt, "", svc.Briefing.SemesterCheck, true},
		{JobAssignments, "", pollSpec, svc.Reminder.CheckAssignments, false},
		{JobExams, "", pollSpec, svc.Reminder.CheckExams, false},
		{JobTasks, "", pollSpec, svc.Reminder.CheckTasks, false},
		{JobTodos, "", pollSpec, svc.Reminder.CheckTodos, false},
	}

	for _, def := range defs {
		spec := def.spec
		if def.at != "" {
			hour, minute, err := semester.ParseTimeOfDay(def.at)
			if err != nil {
				return nil, fmt.Errorf("job %s: %w", def.name, err)
			}
			spec = fmt.Sprintf("%d %d * * *", minute, hour)
		}

		j := &job{name: def.name, spec: spec, daily: def.daily, at: def.at, run: def.run}
		s.jobs = append(s.jobs, j)
		s.byName[def.name] = j

		if _, err := s.cron.AddFunc(spec, func() { s.execute(j) }); err != nil {
			return nil, fmt.Errorf("registering job %s: %w", def.name, err)
		}
	}

	return s, nil
}

// Start launches the cron runner and, if configured, replays daily jobs
// whose slot already passed today but never ran (per the Redis day-marks).
func (s *Scheduler) Start() {
	if s.cfg.Notify.CatchUpOnStart {
		go s.catchUp()
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// TriggerJob runs a job by name, synchronously, bypassing the cron clock.
// The skip-if-running guard still applies.
func (s *Scheduler) TriggerJob(name string) error {
	j, ok := s.byName[name]
	if !ok {
		return ErrUnknownJob
	}
	s.execute(j)
	return nil
}

// JobStates snapshots every job's state, in registration order.
func (s *Scheduler) JobStates() []JobState {
	states := make([]JobState, 0, len(s.jobs))
	for _, j := range s.jobs {
		j.mu.Lock()
		state := JobState{
			Name:      j.name,
			Spec:      j.spec,
			Running:   j.running.Load(),
			Runs:      j.runs.Load(),
			Skips:     j.skips.Load(),
			Failures:  j.failures.Load(),
			LastRunAt: j.lastRunAt,
			LastError: j.lastError,
		}
		j.mu.Unlock()
		states = append(states, state)
	}
	return states
}

// execute runs one job occurrence with the skip guard, panic containment,
// and bookkeeping.
func (s *Scheduler) execute(j *job) {
	if !j.running.CompareAndSwap(false, true) {
		j.skips.Add(1)
		s.logger.Warn("job occurrence skipped, previous run still active",
			zap.String("job", j.name),
			zap.Int64("skips", j.skips.Load()),
		)
		return
	}
	defer j.running.Store(false)

	started := s.clk.Now()
	err := s.runBody(j)

	j.runs.Add(1)
	j.mu.Lock()
	j.lastRunAt = started
	if err != nil {
		j.lastError = err.Error()
	} else {
		j.lastError = ""
	}
	j.mu.Unlock()

	if err != nil {
		j.failures.Add(1)
		s.logger.Error("job failed", zap.String("job", j.name), zap.Error(err))
		return
	}

	if j.daily {
		s.markRan(j)
	}
	s.logger.Debug("job completed", zap.String("job", j.name))
}

// runBody invokes the job function, converting a panic into an error so one
// bad occurrence cannot take down the process.
func (s *Scheduler) runBody(j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return j.run(context.Background())
}

// markRan records a daily job's day-mark; failures only cost catch-up
// accuracy, so they are logged and dropped.
func (s *Scheduler) markRan(j *job) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.rdb.MarkJobRan(ctx, j.name, s.clk.Today()); err != nil {
		s.logger.Warn("recording job day-mark failed",
			zap.String("job", j.name), zap.Error(err))
	}
}

// catchUp replays daily jobs whose slot already passed today but carry no
// day-mark (the process was down at the time).
func (s *Scheduler) catchUp() {
	if s.rdb == nil {
		s.logger.Info("no redis, skipping startup catch-up")
		return
	}

	now := s.clk.Now()
	today := s.clk.Today()

	for _, j := range s.jobs {
		if !j.daily {
			continue
		}
		hour, minute, err := semester.ParseTimeOfDay(j.at)
		if err != nil {
			continue
		}
		slot := time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, s.clk.Location())
		if now.Before(slot) {
			continue // still ahead today, cron will handle it
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		ran, err := s.rdb.JobRanOn(ctx, j.name, today)
		cancel()
		if err != nil {
			s.logger.Warn("day-mark lookup failed", zap.String("job", j.name), zap.Error(err))
			continue
		}
		if ran {
			continue
		}

		s.logger.Info("catching up missed daily job", zap.String("job", j.name))
		s.execute(j)
	}
}
