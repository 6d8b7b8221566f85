package handlers

import (
	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) button(lang, messageID, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(h.localizer.Get(lang, messageID, nil), data)
}

func (h *Handler) mainMenuKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			h.button(lang, i18n.BtnWeather, "weather"),
			h.button(lang, i18n.BtnForecast, "forecast"),
		),
		tgbotapi.NewInlineKeyboardRow(
			h.button(lang, i18n.BtnSettings, "settings"),
			h.button(lang, i18n.BtnAlerts, "alerts"),
		),
		tgbotapi.NewInlineKeyboardRow(
			h.button(lang, i18n.BtnHelp, "help"),
		),
	)
}

func (h *Handler) settingsKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnChangeLocation, "change_location")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnChangeUnit, "change_unit")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnDailyNotification, "daily_notification")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnChangeLanguage, "change_language")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnBackMain, "main_menu")),
	)
}

func (h *Handler) alertsKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnTempAlerts, "temp_alerts")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnDailySummary, "daily_summary")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnDisableAlerts, "disable_alerts")),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnBackMain, "main_menu")),
	)
}

func (h *Handler) unitKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("°C", "unit:C"),
			tgbotapi.NewInlineKeyboardButtonData("°F", "unit:F"),
		),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnBackSettings, "settings")),
	)
}

func (h *Handler) languageKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇪🇸 Español", "lang:es"),
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang:en"),
		),
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnBackSettings, "settings")),
	)
}

func (h *Handler) backKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(h.button(lang, i18n.BtnBackMain, "main_menu")),
	)
}
