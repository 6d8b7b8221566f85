package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Language codes supported by the bot.
const (
	LangSpanish = "es"
	LangEnglish = "en"
)

// Temperature units.
const (
	UnitCelsius    = "C"
	UnitFahrenheit = "F"
)

// ValidLanguage reports whether code is a supported language.
func ValidLanguage(code string) bool {
	return code == LangSpanish || code == LangEnglish
}

// ValidUnit reports whether unit is a supported temperature unit.
func ValidUnit(unit string) bool {
	return unit == UnitCelsius || unit == UnitFahrenheit
}

// ClockTime is a wall-clock time of day for daily notifications.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" with hour 0-23 and minute 0-59.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid minute in %q", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// String formats the time as zero-padded "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// TempThresholds is a pair of temperature alert limits.
type TempThresholds struct {
	Min float64
	Max float64
}

// ParseTempThresholds parses "MIN MAX" as two numbers with MIN < MAX.
func ParseTempThresholds(s string) (TempThresholds, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return TempThresholds{}, fmt.Errorf("expected two numbers, got %q", s)
	}
	min, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return TempThresholds{}, fmt.Errorf("invalid minimum %q", fields[0])
	}
	max, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return TempThresholds{}, fmt.Errorf("invalid maximum %q", fields[1])
	}
	t := TempThresholds{Min: min, Max: max}
	if err := t.Validate(); err != nil {
		return TempThresholds{}, err
	}
	return t, nil
}

// Validate enforces Min < Max.
func (t TempThresholds) Validate() error {
	if t.Min >= t.Max {
		return fmt.Errorf("minimum %.1f must be below maximum %.1f", t.Min, t.Max)
	}
	return nil
}

// UserPreferences holds per-user settings. A record exists for every user
// that has interacted at least once; optional fields are nil until set.
type UserPreferences struct {
	UserID              int64
	Location            *string
	Language            string
	TemperatureUnit     string
	NotificationTime    *ClockTime
	TempAlertThresholds *TempThresholds
	DailyForecast       bool
}

// DefaultPreferences returns a fresh record with Spanish and Celsius defaults.
func DefaultPreferences(userID int64) *UserPreferences {
	return &UserPreferences{
		UserID:          userID,
		Language:        LangSpanish,
		TemperatureUnit: UnitCelsius,
	}
}

// HasLocation reports whether the user has a validated location.
func (p *UserPreferences) HasLocation() bool {
	return p.Location != nil && *p.Location != ""
}

// NotificationsActive reports whether the daily summary should fire:
// the flag is on, a time is configured and a location is set.
func (p *UserPreferences) NotificationsActive() bool {
	return p.DailyForecast && p.NotificationTime != nil && p.HasLocation()
}

// CurrentWeather is the normalized current-conditions payload.
type CurrentWeather struct {
	LocationName string
	Country      string
	TempC        float64
	TempF        float64
	Condition    string
	Humidity     int
	WindKph      float64
}

// Temp returns the temperature in the requested unit.
func (w *CurrentWeather) Temp(unit string) float64 {
	if unit == UnitFahrenheit {
		return w.TempF
	}
	return w.TempC
}

// ForecastDay is one day of a forecast.
type ForecastDay struct {
	Date       string
	MaxTempC   float64
	MaxTempF   float64
	MinTempC   float64
	MinTempF   float64
	Condition  string
	RainChance int
}

// MaxTemp returns the daily maximum in the requested unit.
func (d *ForecastDay) MaxTemp(unit string) float64 {
	if unit == UnitFahrenheit {
		return d.MaxTempF
	}
	return d.MaxTempC
}

// MinTemp returns the daily minimum in the requested unit.
func (d *ForecastDay) MinTemp(unit string) float64 {
	if unit == UnitFahrenheit {
		return d.MinTempF
	}
	return d.MinTempC
}

// Forecast is a normalized multi-day forecast. Days are ordered by date.
type Forecast struct {
	LocationName string
	Country      string
	Current      CurrentWeather
	Days         []ForecastDay
}
