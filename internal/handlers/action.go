package handlers

import "strings"

// Action identifies a menu callback. Callback payloads arrive as strings
// over the wire; parsing them once into a typed action keeps the dispatch
// switch exhaustive instead of scattering string comparisons.
type Action int

const (
	ActionUnknown Action = iota
	ActionWeather
	ActionForecast
	ActionSettings
	ActionAlerts
	ActionHelp
	ActionMainMenu
	ActionChangeLocation
	ActionChangeUnit
	ActionSetUnit
	ActionChangeLanguage
	ActionSetLanguage
	ActionDailyNotification
	ActionTempAlerts
	ActionToggleDailySummary
	ActionDisableAlerts
)

// parseAction decodes callback data into an action and an optional
// argument (the unit or language code for ActionSetUnit/ActionSetLanguage).
func parseAction(data string) (Action, string) {
	if arg, ok := strings.CutPrefix(data, "unit:"); ok {
		return ActionSetUnit, arg
	}
	if arg, ok := strings.CutPrefix(data, "lang:"); ok {
		return ActionSetLanguage, arg
	}

	switch data {
	case "weather":
		return ActionWeather, ""
	case "forecast":
		return ActionForecast, ""
	case "settings":
		return ActionSettings, ""
	case "alerts":
		return ActionAlerts, ""
	case "help":
		return ActionHelp, ""
	case "main_menu":
		return ActionMainMenu, ""
	case "change_location":
		return ActionChangeLocation, ""
	case "change_unit":
		return ActionChangeUnit, ""
	case "change_language":
		return ActionChangeLanguage, ""
	case "daily_notification":
		return ActionDailyNotification, ""
	case "temp_alerts":
		return ActionTempAlerts, ""
	case "daily_summary":
		return ActionToggleDailySummary, ""
	case "disable_alerts":
		return ActionDisableAlerts, ""
	}
	return ActionUnknown, ""
}

// String returns the wire form of the action, for logging and metrics.
func (a Action) String() string {
	switch a {
	case ActionWeather:
		return "weather"
	case ActionForecast:
		return "forecast"
	case ActionSettings:
		return "settings"
	case ActionAlerts:
		return "alerts"
	case ActionHelp:
		return "help"
	case ActionMainMenu:
		return "main_menu"
	case ActionChangeLocation:
		return "change_location"
	case ActionChangeUnit:
		return "change_unit"
	case ActionSetUnit:
		return "set_unit"
	case ActionChangeLanguage:
		return "change_language"
	case ActionSetLanguage:
		return "set_language"
	case ActionDailyNotification:
		return "daily_notification"
	case ActionTempAlerts:
		return "temp_alerts"
	case ActionToggleDailySummary:
		return "daily_summary"
	case ActionDisableAlerts:
		return "disable_alerts"
	}
	return "unknown"
}
