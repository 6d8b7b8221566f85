package middleware

import (
	"testing"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/sirupsen/logrus"
)

func testConfig(enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.RateLimit.Enabled = enabled
	cfg.RateLimit.RequestsPerMinute = 60
	cfg.RateLimit.Burst = 2
	return cfg
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRateLimiterEnforcesBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig(true), quietLogger())

	if !rl.Allow(1) || !rl.Allow(1) {
		t.Fatal("burst requests rejected")
	}
	if rl.Allow(1) {
		t.Error("third immediate request allowed, want rejected")
	}

	// Other users have their own budget.
	if !rl.Allow(2) {
		t.Error("different user rejected")
	}
}

func TestRateLimiterResetRestoresBudget(t *testing.T) {
	rl := NewRateLimiter(testConfig(true), quietLogger())

	rl.Allow(1)
	rl.Allow(1)
	rl.Reset(1)

	if !rl.Allow(1) {
		t.Error("request rejected after reset")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(testConfig(false), quietLogger())

	for i := 0; i < 100; i++ {
		if !rl.Allow(1) {
			t.Fatal("disabled limiter rejected a request")
		}
	}
}
