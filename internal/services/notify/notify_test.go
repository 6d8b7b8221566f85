package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/middleware"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/MickGomez/weather-bot-telegram/internal/services/scheduler"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	sendErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type fakeStore struct {
	prefs map[int64]*models.UserPreferences
	err   error
}

func (f *fakeStore) GetPreferences(_ context.Context, userID int64) (*models.UserPreferences, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prefs[userID], nil
}

func (f *fakeStore) AllPreferences(_ context.Context) ([]*models.UserPreferences, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := make([]*models.UserPreferences, 0, len(f.prefs))
	for _, p := range f.prefs {
		all = append(all, p)
	}
	return all, nil
}

type fakeWeather struct {
	forecast *models.Forecast
	err      error
	calls    int
}

func (f *fakeWeather) FetchCurrent(_ context.Context, _ string) (*models.CurrentWeather, error) {
	return nil, errors.New("not used")
}

func (f *fakeWeather) FetchForecast(_ context.Context, _ string, _ int) (*models.Forecast, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()

	dir := t.TempDir()
	catalog := `{
		"daily_summary": "Resumen para {{.Location}}: {{.Temp}}°{{.Unit}}, máx {{.Max}}, mín {{.Min}}, {{.Condition}}, lluvia {{.Rain}}%",
		"alert_too_cold": "Frío: mínima {{.Min}}°{{.Unit}} bajo tu límite de {{.Limit}}°{{.Unit}}",
		"alert_too_hot": "Calor: máxima {{.Max}}°{{.Unit}} sobre tu límite de {{.Limit}}°{{.Unit}}"
	}`
	if err := os.WriteFile(filepath.Join(dir, "es.json"), []byte(catalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	loc, err := i18n.NewLocalizer(&config.I18nConfig{
		DefaultLanguage: "es",
		Languages:       []string{"es"},
		Directory:       dir,
	})
	if err != nil {
		t.Fatalf("NewLocalizer: %v", err)
	}
	return loc
}

func activePrefs(userID int64) *models.UserPreferences {
	location := "Madrid"
	at := models.ClockTime{Hour: 8, Minute: 0}
	return &models.UserPreferences{
		UserID:           userID,
		Location:         &location,
		Language:         models.LangSpanish,
		TemperatureUnit:  models.UnitCelsius,
		NotificationTime: &at,
		DailyForecast:    true,
	}
}

func testForecast() *models.Forecast {
	return &models.Forecast{
		LocationName: "Madrid",
		Country:      "Spain",
		Current:      models.CurrentWeather{TempC: 21.0, TempF: 69.8, Condition: "Sunny"},
		Days: []models.ForecastDay{{
			Date:       "2026-09-01",
			MaxTempC:   28.0,
			MaxTempF:   82.4,
			MinTempC:   14.0,
			MinTempF:   57.2,
			Condition:  "Sunny",
			RainChance: 10,
		}},
	}
}

func newTestService(t *testing.T, sender *fakeSender, store *fakeStore, w *fakeWeather) (*Service, *scheduler.Scheduler) {
	t.Helper()

	sched := scheduler.New(time.UTC, testLogger())
	svc := NewService(sender, store, w, sched, testLocalizer(t), middleware.NewMetrics(), testLogger())
	return svc, sched
}

func TestSendDailySummaryDelivers(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{prefs: map[int64]*models.UserPreferences{42: activePrefs(42)}}
	svc, _ := newTestService(t, sender, store, &fakeWeather{forecast: testForecast()})

	svc.SendDailySummary(42)

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.ChatID != 42 {
		t.Errorf("ChatID = %d, want 42", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "Madrid") {
		t.Errorf("summary missing location: %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "Soleado") {
		t.Errorf("summary condition not translated: %q", msg.Text)
	}
}

func TestSendDailySummarySkipsDisabledUser(t *testing.T) {
	prefs := activePrefs(42)
	prefs.DailyForecast = false

	sender := &fakeSender{}
	w := &fakeWeather{forecast: testForecast()}
	svc, _ := newTestService(t, sender, &fakeStore{prefs: map[int64]*models.UserPreferences{42: prefs}}, w)

	svc.SendDailySummary(42)

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(sender.sent))
	}
	if w.calls != 0 {
		t.Errorf("weather fetched %d times for disabled user", w.calls)
	}
}

// A user can configure a time without ever enabling the daily summary; the
// job is registered but the fire-time guard must keep it silent.
func TestTimeSetWithoutSummaryEnabledDeliversNothing(t *testing.T) {
	prefs := activePrefs(42)
	prefs.DailyForecast = false

	sender := &fakeSender{}
	w := &fakeWeather{forecast: testForecast()}
	svc, sched := newTestService(t, sender, &fakeStore{prefs: map[int64]*models.UserPreferences{42: prefs}}, w)

	if err := svc.Reschedule(42, *prefs.NotificationTime); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !sched.HasJob(42) {
		t.Fatal("no job registered")
	}

	svc.SendDailySummary(42)

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(sender.sent))
	}
	if w.calls != 0 {
		t.Errorf("weather fetched %d times, want 0", w.calls)
	}
}

func TestSendDailySummarySkipsUnknownUser(t *testing.T) {
	sender := &fakeSender{}
	svc, _ := newTestService(t, sender, &fakeStore{prefs: map[int64]*models.UserPreferences{}}, &fakeWeather{forecast: testForecast()})

	svc.SendDailySummary(42)

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(sender.sent))
	}
}

func TestSendDailySummaryFetchFailure(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{prefs: map[int64]*models.UserPreferences{42: activePrefs(42)}}
	svc, _ := newTestService(t, sender, store, &fakeWeather{err: errors.New("upstream down")})

	svc.SendDailySummary(42)

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d messages after fetch failure, want 0", len(sender.sent))
	}
}

func TestSendDailySummaryThresholdAlerts(t *testing.T) {
	prefs := activePrefs(42)
	prefs.TempAlertThresholds = &models.TempThresholds{Min: 15, Max: 25}

	sender := &fakeSender{}
	store := &fakeStore{prefs: map[int64]*models.UserPreferences{42: prefs}}
	svc, _ := newTestService(t, sender, store, &fakeWeather{forecast: testForecast()})

	svc.SendDailySummary(42)

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	text := sender.sent[0].Text
	if !strings.Contains(text, "Frío") {
		t.Errorf("expected cold alert, got %q", text)
	}
	if !strings.Contains(text, "Calor") {
		t.Errorf("expected heat alert, got %q", text)
	}
}

func TestSendDailySummaryThresholdsNotCrossed(t *testing.T) {
	prefs := activePrefs(42)
	prefs.TempAlertThresholds = &models.TempThresholds{Min: 10, Max: 35}

	sender := &fakeSender{}
	store := &fakeStore{prefs: map[int64]*models.UserPreferences{42: prefs}}
	svc, _ := newTestService(t, sender, store, &fakeWeather{forecast: testForecast()})

	svc.SendDailySummary(42)

	text := sender.sent[0].Text
	if strings.Contains(text, "Frío") || strings.Contains(text, "Calor") {
		t.Errorf("unexpected alert lines: %q", text)
	}
}

func TestRescheduleAndCancel(t *testing.T) {
	store := &fakeStore{prefs: map[int64]*models.UserPreferences{}}
	svc, sched := newTestService(t, &fakeSender{}, store, &fakeWeather{})

	if err := svc.Reschedule(42, models.ClockTime{Hour: 8, Minute: 30}); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !sched.HasJob(42) {
		t.Fatal("no job registered after Reschedule")
	}

	if err := svc.Reschedule(42, models.ClockTime{Hour: 9, Minute: 0}); err != nil {
		t.Fatalf("Reschedule replace: %v", err)
	}
	if sched.JobCount() != 1 {
		t.Fatalf("JobCount = %d after replace, want 1", sched.JobCount())
	}

	svc.Cancel(42)
	if sched.HasJob(42) {
		t.Fatal("job still registered after Cancel")
	}
}

func TestRestoreJobs(t *testing.T) {
	active := activePrefs(1)

	inactive := activePrefs(2)
	inactive.DailyForecast = false

	noTime := activePrefs(3)
	noTime.NotificationTime = nil

	store := &fakeStore{prefs: map[int64]*models.UserPreferences{
		1: active,
		2: inactive,
		3: noTime,
	}}
	svc, sched := newTestService(t, &fakeSender{}, store, &fakeWeather{})

	restored := svc.RestoreJobs(context.Background())

	if restored != 1 {
		t.Fatalf("restored %d jobs, want 1", restored)
	}
	if !sched.HasJob(1) {
		t.Error("active user has no job")
	}
	if sched.HasJob(2) || sched.HasJob(3) {
		t.Error("job registered for user without active notifications")
	}
}
