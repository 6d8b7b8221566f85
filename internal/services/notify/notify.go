package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/middleware"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/MickGomez/weather-bot-telegram/internal/services/scheduler"
	"github.com/MickGomez/weather-bot-telegram/internal/services/weather"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender delivers a message through the chat transport.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// PreferenceSource provides fresh preference reads at fire time.
type PreferenceSource interface {
	GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error)
	AllPreferences(ctx context.Context) ([]*models.UserPreferences, error)
}

// Service owns the daily weather notification lifecycle: registering one
// job per user, firing the summary, and restoring jobs after a restart.
type Service struct {
	sender    Sender
	store     PreferenceSource
	weather   weather.Service
	scheduler *scheduler.Scheduler
	localizer *i18n.Localizer
	metrics   *middleware.Metrics
	logger    *logrus.Logger
}

// NewService creates the notification service.
func NewService(
	sender Sender,
	store PreferenceSource,
	weatherService weather.Service,
	sched *scheduler.Scheduler,
	localizer *i18n.Localizer,
	metrics *middleware.Metrics,
	logger *logrus.Logger,
) *Service {
	return &Service{
		sender:    sender,
		store:     store,
		weather:   weatherService,
		scheduler: sched,
		localizer: localizer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Reschedule registers or replaces the user's daily job.
func (s *Service) Reschedule(userID int64, at models.ClockTime) error {
	err := s.scheduler.Schedule(userID, at, func() {
		s.SendDailySummary(userID)
	})
	if err == nil {
		s.metrics.SetScheduledJobs(float64(s.scheduler.JobCount()))
	}
	return err
}

// Cancel removes the user's daily job if one exists.
func (s *Service) Cancel(userID int64) {
	s.scheduler.Cancel(userID)
	s.metrics.SetScheduledJobs(float64(s.scheduler.JobCount()))
}

// RestoreJobs re-registers jobs for every user with active notifications.
// Jobs live only in memory, so a restart would otherwise drop them.
func (s *Service) RestoreJobs(ctx context.Context) int {
	all, err := s.store.AllPreferences(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to enumerate preferences for job restore")
		return 0
	}

	restored := 0
	for _, prefs := range all {
		if !prefs.NotificationsActive() {
			continue
		}
		if err := s.Reschedule(prefs.UserID, *prefs.NotificationTime); err != nil {
			s.logger.WithError(err).WithField("user_id", prefs.UserID).
				Error("Failed to restore notification job")
			continue
		}
		restored++
	}
	return restored
}

// SendDailySummary fires one daily notification. Preferences are re-read
// fresh; a user that disabled notifications or cleared the location since
// scheduling is silently skipped. Fetch and delivery failures are logged
// and the job stays registered for the next day.
func (s *Service) SendDailySummary(userID int64) {
	log := s.logger.WithField("user_id", userID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to read preferences for daily summary")
		s.metrics.RecordNotification("error")
		return
	}
	if prefs == nil || !prefs.DailyForecast || !prefs.HasLocation() {
		s.metrics.RecordNotification("skipped")
		return
	}

	// Low-frequency per-user call, go straight to the provider.
	forecast, err := s.weather.FetchForecast(ctx, *prefs.Location, 1)
	if err != nil {
		log.WithError(err).Error("Failed to fetch forecast for daily summary")
		s.metrics.RecordNotification("fetch_failed")
		return
	}
	if len(forecast.Days) == 0 {
		log.Error("Forecast response contained no days")
		s.metrics.RecordNotification("fetch_failed")
		return
	}

	text := s.formatSummary(prefs, forecast)
	if _, err := s.sender.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		// Retried implicitly on the next daily fire.
		log.WithError(err).Error("Failed to deliver daily summary")
		s.metrics.RecordNotification("delivery_failed")
		return
	}

	s.metrics.RecordNotification("sent")
	log.Info("Daily summary delivered")
}

func (s *Service) formatSummary(prefs *models.UserPreferences, forecast *models.Forecast) string {
	unit := prefs.TemperatureUnit
	day := forecast.Days[0]

	text := s.localizer.Get(prefs.Language, i18n.MsgDailySummary, map[string]interface{}{
		"Location":  forecast.LocationName,
		"Temp":      formatTemp(forecast.Current.Temp(unit)),
		"Max":       formatTemp(day.MaxTemp(unit)),
		"Min":       formatTemp(day.MinTemp(unit)),
		"Unit":      unit,
		"Condition": i18n.TranslateCondition(prefs.Language, day.Condition),
		"Rain":      day.RainChance,
	})

	if prefs.TempAlertThresholds != nil {
		t := prefs.TempAlertThresholds
		if day.MinTemp(unit) < t.Min {
			text += "\n\n" + s.localizer.Get(prefs.Language, i18n.MsgAlertTooCold, map[string]interface{}{
				"Min":   formatTemp(day.MinTemp(unit)),
				"Limit": formatTemp(t.Min),
				"Unit":  unit,
			})
		}
		if day.MaxTemp(unit) > t.Max {
			text += "\n\n" + s.localizer.Get(prefs.Language, i18n.MsgAlertTooHot, map[string]interface{}{
				"Max":   formatTemp(day.MaxTemp(unit)),
				"Limit": formatTemp(t.Max),
				"Unit":  unit,
			})
		}
	}

	return text
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
