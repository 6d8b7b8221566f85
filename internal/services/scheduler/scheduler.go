package scheduler

import (
	"strconv"
	"sync"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Scheduler maintains at most one recurring daily job per user, tagged by
// user id. Replace and cancel are atomic with respect to each other.
type Scheduler struct {
	mu     sync.Mutex
	sched  *gocron.Scheduler
	logger *logrus.Logger
}

// New creates a scheduler firing in the given zone.
func New(tz *time.Location, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		sched:  gocron.NewScheduler(tz),
		logger: logger,
	}
}

// Start begins executing registered jobs in the background.
func (s *Scheduler) Start() {
	s.sched.StartAsync()
}

// Stop halts the scheduler and drops all jobs.
func (s *Scheduler) Stop() {
	s.sched.Stop()
}

// Schedule registers or replaces the user's daily job. After it returns,
// any previously registered trigger for the user will not fire again.
func (s *Scheduler) Schedule(userID int64, at models.ClockTime, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag := jobTag(userID)
	// RemoveByTag errors when no job carries the tag; replace is idempotent.
	_ = s.sched.RemoveByTag(tag)

	_, err := s.sched.Every(1).Day().At(at.String()).Tag(tag).Do(task)
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"at":      at.String(),
	}).Info("Daily notification scheduled")
	return nil
}

// Cancel removes the user's job if one exists.
func (s *Scheduler) Cancel(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sched.RemoveByTag(jobTag(userID)); err == nil {
		s.logger.WithField("user_id", userID).Info("Daily notification cancelled")
	}
}

// HasJob reports whether a job is registered for the user.
func (s *Scheduler) HasJob(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.sched.FindJobsByTag(jobTag(userID))
	return err == nil && len(jobs) > 0
}

// JobCount returns the number of registered jobs.
func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sched.Jobs())
}

func jobTag(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
