package models

import "testing"

func TestParseClockTimeRoundTrip(t *testing.T) {
	cases := []string{"00:00", "08:00", "09:05", "12:30", "23:59"}
	for _, in := range cases {
		ct, err := ParseClockTime(in)
		if err != nil {
			t.Fatalf("ParseClockTime(%q): %v", in, err)
		}
		if got := ct.String(); got != in {
			t.Errorf("round trip %q: got %q", in, got)
		}
	}
}

func TestParseClockTimePadding(t *testing.T) {
	ct, err := ParseClockTime("8:5")
	if err != nil {
		t.Fatalf("ParseClockTime: %v", err)
	}
	if got := ct.String(); got != "08:05" {
		t.Errorf("expected zero-padded 08:05, got %q", got)
	}
}

func TestParseClockTimeInvalid(t *testing.T) {
	cases := []string{"", "abc", "25:00", "12:60", "-1:30", "12", "12:30:00", "aa:bb"}
	for _, in := range cases {
		if _, err := ParseClockTime(in); err == nil {
			t.Errorf("ParseClockTime(%q): expected error", in)
		}
	}
}

func TestParseTempThresholds(t *testing.T) {
	th, err := ParseTempThresholds("15 25")
	if err != nil {
		t.Fatalf("ParseTempThresholds: %v", err)
	}
	if th.Min != 15 || th.Max != 25 {
		t.Errorf("got %+v", th)
	}

	if _, err := ParseTempThresholds("-5.5 12.25"); err != nil {
		t.Errorf("negative minimum should parse: %v", err)
	}
}

func TestParseTempThresholdsRejected(t *testing.T) {
	cases := []string{"", "15", "15 25 35", "abc def", "25 15", "20 20"}
	for _, in := range cases {
		if _, err := ParseTempThresholds(in); err == nil {
			t.Errorf("ParseTempThresholds(%q): expected error", in)
		}
	}
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences(42)
	if p.UserID != 42 {
		t.Errorf("user id: got %d", p.UserID)
	}
	if p.Language != LangSpanish {
		t.Errorf("default language: got %q", p.Language)
	}
	if p.TemperatureUnit != UnitCelsius {
		t.Errorf("default unit: got %q", p.TemperatureUnit)
	}
	if p.Location != nil || p.NotificationTime != nil || p.TempAlertThresholds != nil {
		t.Error("optional fields should start unset")
	}
	if p.DailyForecast {
		t.Error("daily forecast should default to off")
	}
}

func TestNotificationsActive(t *testing.T) {
	loc := "Madrid"
	ct := ClockTime{Hour: 8}

	p := DefaultPreferences(1)
	if p.NotificationsActive() {
		t.Error("fresh record must not be active")
	}

	p.Location = &loc
	p.NotificationTime = &ct
	if p.NotificationsActive() {
		t.Error("flag off must not be active")
	}

	p.DailyForecast = true
	if !p.NotificationsActive() {
		t.Error("expected active")
	}

	p.Location = nil
	if p.NotificationsActive() {
		t.Error("missing location must not be active")
	}
}

func TestTempUnitSelection(t *testing.T) {
	w := CurrentWeather{TempC: 20, TempF: 68}
	if w.Temp(UnitCelsius) != 20 {
		t.Errorf("celsius: got %v", w.Temp(UnitCelsius))
	}
	if w.Temp(UnitFahrenheit) != 68 {
		t.Errorf("fahrenheit: got %v", w.Temp(UnitFahrenheit))
	}

	d := ForecastDay{MaxTempC: 25, MaxTempF: 77, MinTempC: 10, MinTempF: 50}
	if d.MaxTemp(UnitFahrenheit) != 77 || d.MinTemp(UnitCelsius) != 10 {
		t.Errorf("forecast unit selection: %+v", d)
	}
}
