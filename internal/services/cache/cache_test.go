package cache

import (
	"os"
	"testing"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestCurrentWeatherWithinTTL(t *testing.T) {
	c := New(time.Minute, time.Minute, 100, testLogger())

	payload := &models.CurrentWeather{LocationName: "Madrid", TempC: 21.5}
	c.SetCurrent("Madrid", payload)

	got, found := c.GetCurrent("Madrid")
	if !found {
		t.Fatal("expected cache hit")
	}
	if got != payload {
		t.Error("expected the identical payload back")
	}
	if !c.HasCurrent("Madrid") {
		t.Error("HasCurrent should report true")
	}
}

func TestCurrentWeatherExpires(t *testing.T) {
	c := New(20*time.Millisecond, time.Minute, 100, testLogger())

	c.SetCurrent("Madrid", &models.CurrentWeather{LocationName: "Madrid"})
	time.Sleep(50 * time.Millisecond)

	if _, found := c.GetCurrent("Madrid"); found {
		t.Error("entry should be absent after TTL")
	}
	if c.HasCurrent("Madrid") {
		t.Error("HasCurrent should report false after TTL")
	}
}

func TestTTLClassesAreIndependent(t *testing.T) {
	c := New(20*time.Millisecond, time.Minute, 100, testLogger())

	c.SetCurrent("Madrid", &models.CurrentWeather{})
	c.SetForecast("Madrid", &models.Forecast{LocationName: "Madrid"})
	time.Sleep(50 * time.Millisecond)

	if _, found := c.GetCurrent("Madrid"); found {
		t.Error("current entry should have expired")
	}
	if _, found := c.GetForecast("Madrid"); !found {
		t.Error("forecast entry should still be valid")
	}
}

func TestKeysAreCaseSensitive(t *testing.T) {
	c := New(time.Minute, time.Minute, 100, testLogger())

	c.SetCurrent("Madrid", &models.CurrentWeather{})
	if _, found := c.GetCurrent("madrid"); found {
		t.Error("keys must match exactly as typed")
	}
}

func TestSizeBoundEvictsLeastRecentlySet(t *testing.T) {
	c := New(time.Minute, time.Minute, 2, testLogger())

	c.SetCurrent("Madrid", &models.CurrentWeather{LocationName: "Madrid"})
	time.Sleep(2 * time.Millisecond)
	c.SetCurrent("Paris", &models.CurrentWeather{LocationName: "Paris"})
	time.Sleep(2 * time.Millisecond)
	c.SetCurrent("Berlin", &models.CurrentWeather{LocationName: "Berlin"})

	if n := c.current.ItemCount(); n > 2 {
		t.Errorf("cache holds %d entries, bound is 2", n)
	}
	if c.HasCurrent("Madrid") {
		t.Error("least recently set entry survived eviction")
	}
	if !c.HasCurrent("Paris") || !c.HasCurrent("Berlin") {
		t.Error("newer entries evicted instead of the oldest")
	}
}

func TestDisabledCacheIsEmpty(t *testing.T) {
	c := &WeatherCache{enabled: false}

	c.SetCurrent("Madrid", &models.CurrentWeather{})
	if _, found := c.GetCurrent("Madrid"); found {
		t.Error("disabled cache must never hit")
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute, time.Minute, 100, testLogger())

	c.SetCurrent("Madrid", &models.CurrentWeather{})
	c.SetForecast("Madrid", &models.Forecast{})
	c.Clear()

	if c.HasCurrent("Madrid") || c.HasForecast("Madrid") {
		t.Error("cache should be empty after Clear")
	}
}
