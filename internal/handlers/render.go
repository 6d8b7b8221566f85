package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/MickGomez/weather-bot-telegram/internal/session"
)

// fetchCurrent reads through the cache. Failed fetches are never cached.
func (h *Handler) fetchCurrent(ctx context.Context, location string) (*models.CurrentWeather, error) {
	if cached, ok := h.cache.GetCurrent(location); ok {
		h.metrics.RecordCacheHit()
		return cached, nil
	}
	h.metrics.RecordCacheMiss()

	start := time.Now()
	current, err := h.weather.FetchCurrent(ctx, location)
	h.metrics.RecordWeatherFetch("current", fetchStatus(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	h.cache.SetCurrent(location, current)
	return current, nil
}

func (h *Handler) fetchForecast(ctx context.Context, location string, days int) (*models.Forecast, error) {
	if cached, ok := h.cache.GetForecast(location); ok {
		h.metrics.RecordCacheHit()
		return cached, nil
	}
	h.metrics.RecordCacheMiss()

	start := time.Now()
	forecast, err := h.weather.FetchForecast(ctx, location, days)
	h.metrics.RecordWeatherFetch("forecast", fetchStatus(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	h.cache.SetForecast(location, forecast)
	return forecast, nil
}

func fetchStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *Handler) currentWeatherText(ctx context.Context, prefs *models.UserPreferences) (string, error) {
	current, err := h.fetchCurrent(ctx, *prefs.Location)
	if err != nil {
		return "", err
	}

	lang := prefs.Language
	unit := prefs.TemperatureUnit
	return h.localizer.Get(lang, i18n.MsgCurrentWeather, map[string]interface{}{
		"Location":  current.LocationName,
		"Country":   current.Country,
		"Temp":      formatTemp(current.Temp(unit)),
		"Unit":      unit,
		"Condition": i18n.TranslateCondition(lang, current.Condition),
		"Humidity":  current.Humidity,
		"Wind":      fmt.Sprintf("%.1f", current.WindKph),
	}), nil
}

func (h *Handler) forecastText(ctx context.Context, prefs *models.UserPreferences) (string, error) {
	days := h.config.Weather.ForecastDays
	forecast, err := h.fetchForecast(ctx, *prefs.Location, days)
	if err != nil {
		return "", err
	}

	lang := prefs.Language
	unit := prefs.TemperatureUnit

	var b strings.Builder
	b.WriteString(h.localizer.Get(lang, i18n.MsgForecastHeader, map[string]interface{}{
		"Days":     len(forecast.Days),
		"Location": forecast.LocationName,
	}))
	for _, day := range forecast.Days {
		b.WriteString("\n\n")
		b.WriteString(h.localizer.Get(lang, i18n.MsgForecastDay, map[string]interface{}{
			"Date":      i18n.FormatDate(lang, day.Date),
			"Max":       formatTemp(day.MaxTemp(unit)),
			"Min":       formatTemp(day.MinTemp(unit)),
			"Unit":      unit,
			"Condition": i18n.TranslateCondition(lang, day.Condition),
			"Rain":      day.RainChance,
		}))
	}
	return b.String(), nil
}

// sendCurrentWeather is the slash-command variant: replies with a new
// message instead of editing a menu.
func (h *Handler) sendCurrentWeather(ctx context.Context, chatID int64, prefs *models.UserPreferences) {
	lang := prefs.Language

	if !prefs.HasLocation() {
		h.sessions.Expect(prefs.UserID, session.AwaitingLocation)
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgLocationFirst, nil))
		return
	}

	text, err := h.currentWeatherText(ctx, prefs)
	if err != nil {
		h.sendText(chatID, h.weatherErrorText(lang, err))
		return
	}
	h.sendWithKeyboard(chatID, text, h.backKeyboard(lang))
}

func (h *Handler) sendForecast(ctx context.Context, chatID int64, prefs *models.UserPreferences) {
	lang := prefs.Language

	if !prefs.HasLocation() {
		h.sessions.Expect(prefs.UserID, session.AwaitingLocation)
		h.sendText(chatID, h.localizer.Get(lang, i18n.MsgLocationFirst, nil))
		return
	}

	text, err := h.forecastText(ctx, prefs)
	if err != nil {
		h.sendText(chatID, h.weatherErrorText(lang, err))
		return
	}
	h.sendWithKeyboard(chatID, text, h.backKeyboard(lang))
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
