package handlers

import (
	"context"
	"errors"

	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/MickGomez/weather-bot-telegram/internal/services/weather"
	"github.com/MickGomez/weather-bot-telegram/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleText routes a free-text message through the conversation machine.
// The pending expectation is consumed up front: whatever happens in this
// turn, the user returns to Idle and must re-invoke the menu to retry.
func (h *Handler) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := message.Text

	if !h.rateLimiter.Allow(userID) {
		h.metrics.RecordRateLimitExceeded()
		h.sendText(chatID, h.localizer.Get(h.config.I18n.DefaultLanguage, i18n.MsgRateLimited, nil))
		return
	}

	prefs, err := h.prefsFor(ctx, userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to load preferences")
		h.sendText(chatID, h.localizer.Get(h.config.I18n.DefaultLanguage, i18n.MsgGenericError, nil))
		return
	}
	lang := prefs.Language

	switch h.sessions.Take(userID) {
	case session.AwaitingLocation:
		h.applyLocation(ctx, chatID, prefs, text)
	case session.AwaitingTime:
		h.applyNotificationTime(ctx, chatID, prefs, text)
	case session.AwaitingThresholds:
		h.applyThresholds(ctx, chatID, prefs, text)
	default:
		h.sendWithKeyboard(chatID, h.localizer.Get(lang, i18n.MsgUseMenu, nil), h.mainMenuKeyboard(lang))
	}
}

// applyLocation validates a candidate location against the provider before
// saving it; a name the provider cannot resolve is never persisted.
func (h *Handler) applyLocation(ctx context.Context, chatID int64, prefs *models.UserPreferences, location string) {
	lang := prefs.Language

	current, err := h.fetchCurrent(ctx, location)
	if err != nil {
		if errors.Is(err, weather.ErrLocationNotFound) {
			h.sendText(chatID, h.localizer.Get(lang, i18n.MsgLocationNotFound, nil))
			return
		}
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgWeatherError, nil))
		return
	}

	prefs.Location = &location
	h.savePrefs(ctx, prefs)

	h.logger.WithFields(map[string]interface{}{
		"user_id":  prefs.UserID,
		"location": current.LocationName,
	}).Info("Location updated")

	text := h.localizer.Get(lang, i18n.MsgLocationSet, map[string]interface{}{
		"Location": current.LocationName,
	})
	h.sendWithKeyboard(chatID, text, h.mainMenuKeyboard(lang))
}

func (h *Handler) applyNotificationTime(ctx context.Context, chatID int64, prefs *models.UserPreferences, input string) {
	lang := prefs.Language

	at, err := models.ParseClockTime(input)
	if err != nil {
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgTimeInvalid, nil))
		return
	}

	// Only the time changes here; the daily summary stays opt-in through its
	// own toggle. The job is still registered so an already-enabled user picks
	// up the new time, and the fire-time guard skips everyone else.
	prefs.NotificationTime = &at
	h.savePrefs(ctx, prefs)

	if err := h.notifier.Reschedule(prefs.UserID, at); err != nil {
		h.logger.WithError(err).WithField("user_id", prefs.UserID).
			Error("Failed to schedule daily notification")
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgGenericError, nil))
		return
	}

	text := h.localizer.Get(lang, i18n.MsgTimeSet, map[string]interface{}{
		"Time": at.String(),
	})
	h.sendWithKeyboard(chatID, text, h.alertsKeyboard(lang))
}

func (h *Handler) applyThresholds(ctx context.Context, chatID int64, prefs *models.UserPreferences, input string) {
	lang := prefs.Language

	thresholds, err := models.ParseTempThresholds(input)
	if err != nil {
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgThresholdsInvalid, nil))
		return
	}

	prefs.TempAlertThresholds = &thresholds
	h.savePrefs(ctx, prefs)

	text := h.localizer.Get(lang, i18n.MsgThresholdsSet, map[string]interface{}{
		"Min":  formatTemp(thresholds.Min),
		"Max":  formatTemp(thresholds.Max),
		"Unit": prefs.TemperatureUnit,
	})
	h.sendWithKeyboard(chatID, text, h.alertsKeyboard(lang))
}
