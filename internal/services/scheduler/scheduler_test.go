package scheduler

import (
	"os"
	"testing"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/sirupsen/logrus"
)

func newTestScheduler() *Scheduler {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return New(time.UTC, log)
}

func TestScheduleRegistersJob(t *testing.T) {
	s := newTestScheduler()
	defer s.Stop()

	if err := s.Schedule(1, models.ClockTime{Hour: 8}, func() {}); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !s.HasJob(1) {
		t.Error("expected job for user 1")
	}
	if s.JobCount() != 1 {
		t.Errorf("expected 1 job, got %d", s.JobCount())
	}
}

func TestRescheduleReplacesJob(t *testing.T) {
	s := newTestScheduler()
	defer s.Stop()

	if err := s.Schedule(1, models.ClockTime{Hour: 8}, func() {}); err != nil {
		t.Fatal(err)
	}
	if err := s.Schedule(1, models.ClockTime{Hour: 9}, func() {}); err != nil {
		t.Fatal(err)
	}

	if s.JobCount() != 1 {
		t.Errorf("replace must leave exactly one job, got %d", s.JobCount())
	}
}

func TestJobsPerUserAreIndependent(t *testing.T) {
	s := newTestScheduler()
	defer s.Stop()

	s.Schedule(1, models.ClockTime{Hour: 8}, func() {})
	s.Schedule(2, models.ClockTime{Hour: 9}, func() {})

	if s.JobCount() != 2 {
		t.Fatalf("expected 2 jobs, got %d", s.JobCount())
	}

	s.Cancel(1)
	if s.HasJob(1) {
		t.Error("user 1 job should be gone")
	}
	if !s.HasJob(2) {
		t.Error("user 2 job must survive user 1 cancellation")
	}
}

func TestCancelAbsentJobIsNoop(t *testing.T) {
	s := newTestScheduler()
	defer s.Stop()

	s.Cancel(42)
	if s.JobCount() != 0 {
		t.Errorf("expected no jobs, got %d", s.JobCount())
	}
}
