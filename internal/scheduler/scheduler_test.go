package scheduler

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/config"
	"github.com/devHanif-git/productivityHelper/internal/clock"
	"github.com/devHanif-git/productivityHelper/internal/notify"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/internal/service"
)

func setupTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Notify.ClassBriefingAt = "20:00"
	cfg.Notify.OffdayAlertAt = "18:00"
	cfg.Notify.MidnightReviewAt = "00:00"
	cfg.Notify.SemesterCheckAt = "20:30"
	cfg.Notify.PollInterval = 30 * time.Minute

	loc := time.FixedZone("MYT", 8*3600)
	clk := clock.NewFixed(time.Date(2025, 11, 10, 12, 0, 0, 0, loc))
	logger := zap.NewNop()
	svc := service.NewService(cfg, &repository.Repository{}, clk, notify.NewConsoleNotifier(logger), nil, logger)

	s, err := New(svc, clk, nil, cfg, logger)
	if err != nil {
		t.Fatalf("New should succeed: %v", err)
	}
	return s
}

func TestScheduler_RegistersAllJobs(t *testing.T) {
	s := setupTestScheduler(t)

	states := s.JobStates()
	if len(states) != 8 {
		t.Fatalf("expected 8 registered jobs, got %d", len(states))
	}

	specs := make(map[string]string, len(states))
	for _, st := range states {
		specs[st.Name] = st.Spec
		if st.Runs != 0 || st.Running {
			t.Errorf("job %s should start idle, got %+v", st.Name, st)
		}
	}

	want := map[string]string{
		JobClassBriefing:  "0 20 * * *",
		JobOffdayAlert:    "0 18 * * *",
		JobMidnightReview: "0 0 * * *",
		JobSemesterCheck:  "30 20 * * *",
		JobAssignments:    "@every 30m0s",
		JobExams:          "@every 30m0s",
		JobTasks:          "@every 30m0s",
		JobTodos:          "@every 30m0s",
	}
	for name, spec := range want {
		if specs[name] != spec {
			t.Errorf("job %s: expected spec %q, got %q", name, spec, specs[name])
		}
	}
}

func TestScheduler_New_BadTime(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notify.ClassBriefingAt = "8pm"
	cfg.Notify.OffdayAlertAt = "18:00"
	cfg.Notify.MidnightReviewAt = "00:00"
	cfg.Notify.SemesterCheckAt = "20:30"
	cfg.Notify.PollInterval = 30 * time.Minute

	loc := time.FixedZone("MYT", 8*3600)
	clk := clock.NewFixed(time.Date(2025, 11, 10, 12, 0, 0, 0, loc))
	logger := zap.NewNop()
	svc := service.NewService(cfg, &repository.Repository{}, clk, notify.NewConsoleNotifier(logger), nil, logger)

	if _, err := New(svc, clk, nil, cfg, logger); err == nil {
		t.Fatal("expected an error for an unparseable job time")
	}
}

func TestScheduler_TriggerJob_Unknown(t *testing.T) {
	s := setupTestScheduler(t)

	if err := s.TriggerJob("defrag_disk"); !errors.Is(err, ErrUnknownJob) {
		t.Errorf("expected ErrUnknownJob, got %v", err)
	}
}
