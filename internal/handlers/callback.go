package handlers

import (
	"context"
	"errors"

	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/MickGomez/weather-bot-telegram/internal/services/weather"
	"github.com/MickGomez/weather-bot-telegram/internal/session"
	"github.com/MickGomez/weather-bot-telegram/pkg/markdown"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCallback processes a menu button press. The pressed menu message is
// edited in place so the chat stays a single evolving menu instead of a
// trail of stale ones.
func (h *Handler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID

	// Stop the client's loading spinner regardless of outcome.
	if _, err := h.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.WithError(err).Debug("Failed to answer callback query")
	}

	if !h.rateLimiter.Allow(userID) {
		h.metrics.RecordRateLimitExceeded()
		return
	}

	prefs, err := h.prefsFor(ctx, userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to load preferences")
		h.sendText(chatID, h.localizer.Get(h.config.I18n.DefaultLanguage, i18n.MsgGenericError, nil))
		return
	}
	lang := prefs.Language

	action, arg := parseAction(query.Data)
	h.metrics.RecordCallbackAction(action.String())

	switch action {
	case ActionWeather:
		h.editCurrentWeather(ctx, chatID, messageID, prefs)
	case ActionForecast:
		h.editForecast(ctx, chatID, messageID, prefs)
	case ActionSettings:
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgSettingsMenu, nil), h.settingsKeyboard(lang))
	case ActionAlerts:
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgAlertsMenu, nil), h.alertsKeyboard(lang))
	case ActionHelp:
		h.editHTML(chatID, messageID, markdown.ToTelegramHTML(h.helpText(lang)), h.backKeyboard(lang))
	case ActionMainMenu:
		h.sessions.Clear(userID)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgMainMenu, nil), h.mainMenuKeyboard(lang))
	case ActionChangeLocation:
		h.sessions.Expect(userID, session.AwaitingLocation)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgLocationPrompt, nil), h.backKeyboard(lang))
	case ActionChangeUnit:
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgChooseUnit, nil), h.unitKeyboard(lang))
	case ActionSetUnit:
		h.applyUnit(ctx, chatID, messageID, prefs, arg)
	case ActionChangeLanguage:
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgChooseLanguage, nil), h.languageKeyboard(lang))
	case ActionSetLanguage:
		h.applyLanguage(ctx, chatID, messageID, prefs, arg)
	case ActionDailyNotification:
		h.sessions.Expect(userID, session.AwaitingTime)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgTimePrompt, nil), h.backKeyboard(lang))
	case ActionTempAlerts:
		h.sessions.Expect(userID, session.AwaitingThresholds)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgThresholdsPrompt, nil), h.backKeyboard(lang))
	case ActionToggleDailySummary:
		h.toggleDailySummary(ctx, chatID, messageID, prefs)
	case ActionDisableAlerts:
		h.disableAlerts(ctx, chatID, messageID, prefs)
	default:
		h.logger.WithField("data", query.Data).Warn("Unknown callback action")
	}
}

func (h *Handler) applyUnit(ctx context.Context, chatID int64, messageID int, prefs *models.UserPreferences, unit string) {
	lang := prefs.Language
	if !models.ValidUnit(unit) {
		h.logger.WithField("unit", unit).Warn("Rejected unknown temperature unit")
		return
	}

	prefs.TemperatureUnit = unit
	h.savePrefs(ctx, prefs)

	text := h.localizer.Get(lang, i18n.MsgUnitChanged, map[string]interface{}{"Unit": unit})
	h.editMessage(chatID, messageID, text, h.settingsKeyboard(lang))
}

func (h *Handler) applyLanguage(ctx context.Context, chatID int64, messageID int, prefs *models.UserPreferences, lang string) {
	if !models.ValidLanguage(lang) {
		h.logger.WithField("language", lang).Warn("Rejected unknown language")
		return
	}

	prefs.Language = lang
	h.savePrefs(ctx, prefs)

	// Confirm in the language just chosen.
	text := h.localizer.Get(lang, i18n.MsgLanguageChanged, nil)
	h.editMessage(chatID, messageID, text, h.settingsKeyboard(lang))
}

// toggleDailySummary flips the daily forecast flag. Enabling without a
// notification time walks the user into the time flow instead of leaving a
// flag that can never fire.
func (h *Handler) toggleDailySummary(ctx context.Context, chatID int64, messageID int, prefs *models.UserPreferences) {
	lang := prefs.Language

	if prefs.DailyForecast {
		prefs.DailyForecast = false
		h.savePrefs(ctx, prefs)
		h.notifier.Cancel(prefs.UserID)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgDailyDisabled, nil), h.alertsKeyboard(lang))
		return
	}

	if !prefs.HasLocation() {
		h.sessions.Expect(prefs.UserID, session.AwaitingLocation)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgLocationFirst, nil), h.backKeyboard(lang))
		return
	}

	prefs.DailyForecast = true
	h.savePrefs(ctx, prefs)

	if prefs.NotificationTime == nil {
		h.sessions.Expect(prefs.UserID, session.AwaitingTime)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgTimePrompt, nil), h.backKeyboard(lang))
		return
	}

	if err := h.notifier.Reschedule(prefs.UserID, *prefs.NotificationTime); err != nil {
		h.logger.WithError(err).WithField("user_id", prefs.UserID).
			Error("Failed to schedule daily notification")
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgGenericError, nil), h.alertsKeyboard(lang))
		return
	}
	h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgDailyEnabled, nil), h.alertsKeyboard(lang))
}

// disableAlerts clears thresholds and the daily forecast flag and cancels
// any scheduled job, all in one action.
func (h *Handler) disableAlerts(ctx context.Context, chatID int64, messageID int, prefs *models.UserPreferences) {
	lang := prefs.Language

	prefs.TempAlertThresholds = nil
	prefs.DailyForecast = false
	h.savePrefs(ctx, prefs)
	h.notifier.Cancel(prefs.UserID)

	h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgAlertsDisabled, nil), h.alertsKeyboard(lang))
}

// editCurrentWeather renders the current weather into the menu message, or
// starts the location flow when none is set.
func (h *Handler) editCurrentWeather(ctx context.Context, chatID int64, messageID int, prefs *models.UserPreferences) {
	lang := prefs.Language

	if !prefs.HasLocation() {
		h.sessions.Expect(prefs.UserID, session.AwaitingLocation)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgLocationFirst, nil), h.backKeyboard(lang))
		return
	}

	text, err := h.currentWeatherText(ctx, prefs)
	if err != nil {
		h.editMessage(chatID, messageID, h.weatherErrorText(lang, err), h.backKeyboard(lang))
		return
	}
	h.editMessage(chatID, messageID, text, h.backKeyboard(lang))
}

func (h *Handler) editForecast(ctx context.Context, chatID int64, messageID int, prefs *models.UserPreferences) {
	lang := prefs.Language

	if !prefs.HasLocation() {
		h.sessions.Expect(prefs.UserID, session.AwaitingLocation)
		h.editMessage(chatID, messageID, h.localizer.Get(lang, i18n.MsgLocationFirst, nil), h.backKeyboard(lang))
		return
	}

	text, err := h.forecastText(ctx, prefs)
	if err != nil {
		h.editMessage(chatID, messageID, h.weatherErrorText(lang, err), h.backKeyboard(lang))
		return
	}
	h.editMessage(chatID, messageID, text, h.backKeyboard(lang))
}

func (h *Handler) weatherErrorText(lang string, err error) string {
	if errors.Is(err, weather.ErrLocationNotFound) {
		return h.localizer.Get(lang, i18n.MsgLocationNotFound, nil)
	}
	return h.localizer.Get(lang, i18n.MsgWeatherError, nil)
}
