package i18n

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Localizer manages internationalization
type Localizer struct {
	bundle          *i18n.Bundle
	defaultLanguage string
	localizers      map[string]*i18n.Localizer
}

// NewLocalizer creates a new localizer
func NewLocalizer(cfg *config.I18nConfig) (*Localizer, error) {
	bundle := i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, lang := range cfg.Languages {
		path := filepath.Join(cfg.Directory, lang+".json")
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("failed to load language file %s: %w", lang, err)
		}
	}

	localizers := make(map[string]*i18n.Localizer)
	for _, lang := range cfg.Languages {
		localizers[lang] = i18n.NewLocalizer(bundle, lang)
	}

	return &Localizer{
		bundle:          bundle,
		defaultLanguage: cfg.DefaultLanguage,
		localizers:      localizers,
	}, nil
}

// Get returns localized message
func (l *Localizer) Get(lang, messageID string, data map[string]interface{}) string {
	localizer, exists := l.localizers[lang]
	if !exists {
		localizer = l.localizers[l.defaultLanguage]
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID // Fallback to message ID
	}

	return msg
}

// Message IDs
const (
	MsgWelcome           = "welcome"
	MsgMainMenu          = "main_menu"
	MsgHelp              = "help"
	MsgSettingsMenu      = "settings_menu"
	MsgAlertsMenu        = "alerts_menu"
	MsgUseMenu           = "use_menu"
	MsgChooseUnit        = "choose_unit"
	MsgUnitChanged       = "unit_changed"
	MsgChooseLanguage    = "choose_language"
	MsgLanguageChanged   = "language_changed"
	MsgLocationPrompt    = "location_prompt"
	MsgLocationFirst     = "location_first"
	MsgLocationSet       = "location_set"
	MsgLocationNotFound  = "location_not_found"
	MsgTimePrompt        = "time_prompt"
	MsgTimeSet           = "time_set"
	MsgTimeInvalid       = "time_invalid"
	MsgThresholdsPrompt  = "thresholds_prompt"
	MsgThresholdsSet     = "thresholds_set"
	MsgThresholdsInvalid = "thresholds_invalid"
	MsgDailyEnabled      = "daily_enabled"
	MsgDailyDisabled     = "daily_disabled"
	MsgAlertsDisabled    = "alerts_disabled"
	MsgCurrentWeather    = "current_weather"
	MsgForecastHeader    = "forecast_header"
	MsgForecastDay       = "forecast_day"
	MsgDailySummary      = "daily_summary"
	MsgAlertTooCold      = "alert_too_cold"
	MsgAlertTooHot       = "alert_too_hot"
	MsgWeatherError      = "weather_error"
	MsgGenericError      = "generic_error"
	MsgRateLimited       = "rate_limited"
	MsgUnknownCommand    = "unknown_command"
)

// Button label IDs
const (
	BtnWeather           = "button.weather"
	BtnForecast          = "button.forecast"
	BtnSettings          = "button.settings"
	BtnAlerts            = "button.alerts"
	BtnHelp              = "button.help"
	BtnChangeLocation    = "button.change_location"
	BtnChangeUnit        = "button.change_unit"
	BtnDailyNotification = "button.daily_notification"
	BtnChangeLanguage    = "button.change_language"
	BtnTempAlerts        = "button.temp_alerts"
	BtnDailySummary      = "button.daily_summary"
	BtnDisableAlerts     = "button.disable_alerts"
	BtnBackMain          = "button.back_main"
	BtnBackSettings      = "button.back_settings"
)
