package storage

import (
	"github.com/MickGomez/weather-bot-telegram/internal/models"
)

// record is the serialized form of a preference entry. The time field is
// textual ("HH:MM") and thresholds are a two-element array; both tolerate
// malformed or partial values by decoding to nil.
type record struct {
	UserID              int64     `json:"user_id"`
	Location            *string   `json:"location"`
	Language            string    `json:"language"`
	TemperatureUnit     string    `json:"temperature_unit"`
	NotificationTime    *string   `json:"notification_time"`
	TempAlertThresholds []float64 `json:"temp_alert_thresholds"`
	DailyForecast       bool      `json:"daily_forecast"`
}

func encodeRecord(p *models.UserPreferences) record {
	r := record{
		UserID:          p.UserID,
		Location:        p.Location,
		Language:        p.Language,
		TemperatureUnit: p.TemperatureUnit,
		DailyForecast:   p.DailyForecast,
	}
	if p.NotificationTime != nil {
		s := p.NotificationTime.String()
		r.NotificationTime = &s
	}
	if p.TempAlertThresholds != nil {
		r.TempAlertThresholds = []float64{p.TempAlertThresholds.Min, p.TempAlertThresholds.Max}
	}
	return r
}

func decodeRecord(r record) *models.UserPreferences {
	p := &models.UserPreferences{
		UserID:          r.UserID,
		Location:        r.Location,
		Language:        r.Language,
		TemperatureUnit: r.TemperatureUnit,
		DailyForecast:   r.DailyForecast,
	}
	if !models.ValidLanguage(p.Language) {
		p.Language = models.LangSpanish
	}
	if !models.ValidUnit(p.TemperatureUnit) {
		p.TemperatureUnit = models.UnitCelsius
	}
	if r.NotificationTime != nil {
		if ct, err := models.ParseClockTime(*r.NotificationTime); err == nil {
			p.NotificationTime = &ct
		}
	}
	if len(r.TempAlertThresholds) == 2 {
		t := models.TempThresholds{Min: r.TempAlertThresholds[0], Max: r.TempAlertThresholds[1]}
		if t.Validate() == nil {
			p.TempAlertThresholds = &t
		}
	}
	return p
}
