package handlers

import (
	"context"

	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/pkg/markdown"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCommand processes slash commands. Commands mirror the main menu so
// power users can skip the buttons.
func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	command := message.Command()

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

	h.metrics.RecordCommandExecuted(command)

	switch command {
	case "start":
		// A fresh interaction drops any half-finished input flow.
		h.sessions.Clear(userID)
		welcome := markdown.ToTelegramHTML(h.localizer.Get(lang, i18n.MsgWelcome, nil))
		h.sendHTML(chatID, welcome, h.mainMenuKeyboard(lang))
	case "help":
		help := markdown.ToTelegramHTML(h.helpText(lang))
		h.sendHTML(chatID, help, h.backKeyboard(lang))
	case "weather":
		h.sendCurrentWeather(ctx, chatID, prefs)
	case "forecast":
		h.sendForecast(ctx, chatID, prefs)
	case "settings":
		h.sendWithKeyboard(chatID, h.localizer.Get(lang, i18n.MsgSettingsMenu, nil), h.settingsKeyboard(lang))
	case "alerts":
		h.sendWithKeyboard(chatID, h.localizer.Get(lang, i18n.MsgAlertsMenu, nil), h.alertsKeyboard(lang))
	default:
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgUnknownCommand, nil))
	}
}

func (h *Handler) helpText(lang string) string {
	return h.localizer.Get(lang, i18n.MsgHelp, map[string]interface{}{
		"Days": h.config.Weather.ForecastDays,
	})
}
