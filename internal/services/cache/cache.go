package cache

import (
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Service caches upstream weather payloads keyed by the location string
// exactly as the user typed it. Current and forecast entries expire on
// independent TTL clocks.
type Service interface {
	GetCurrent(location string) (*models.CurrentWeather, bool)
	SetCurrent(location string, data *models.CurrentWeather)
	GetForecast(location string) (*models.Forecast, bool)
	SetForecast(location string, data *models.Forecast)
	HasCurrent(location string) bool
	HasForecast(location string) bool
	Clear()
}

// WeatherCache implements Service on two go-cache instances.
type WeatherCache struct {
	enabled  bool
	current  *cache.Cache
	forecast *cache.Cache
	maxSize  int
	logger   *logrus.Logger
}

// NewCache creates a weather cache from config. A disabled cache behaves
// as permanently empty.
func NewCache(cfg *config.Config, logger *logrus.Logger) Service {
	if !cfg.Cache.Enabled {
		return &WeatherCache{enabled: false}
	}
	return New(cfg.Cache.CurrentTTL, cfg.Cache.ForecastTTL, cfg.Cache.MaxSize, logger)
}

// New creates an enabled cache with explicit TTLs, mainly for tests.
func New(currentTTL, forecastTTL time.Duration, maxSize int, logger *logrus.Logger) *WeatherCache {
	return &WeatherCache{
		enabled:  true,
		current:  cache.New(currentTTL, currentTTL*2),
		forecast: cache.New(forecastTTL, forecastTTL*2),
		maxSize:  maxSize,
		logger:   logger,
	}
}

func (c *WeatherCache) GetCurrent(location string) (*models.CurrentWeather, bool) {
	if !c.enabled {
		return nil, false
	}
	if val, found := c.current.Get(location); found {
		c.logger.WithField("location", location).Debug("Current weather cache hit")
		return val.(*models.CurrentWeather), true
	}
	return nil, false
}

func (c *WeatherCache) SetCurrent(location string, data *models.CurrentWeather) {
	if !c.enabled {
		return
	}
	c.evictIfFull(c.current)
	c.current.SetDefault(location, data)
}

func (c *WeatherCache) GetForecast(location string) (*models.Forecast, bool) {
	if !c.enabled {
		return nil, false
	}
	if val, found := c.forecast.Get(location); found {
		c.logger.WithField("location", location).Debug("Forecast cache hit")
		return val.(*models.Forecast), true
	}
	return nil, false
}

func (c *WeatherCache) SetForecast(location string, data *models.Forecast) {
	if !c.enabled {
		return
	}
	c.evictIfFull(c.forecast)
	c.forecast.SetDefault(location, data)
}

func (c *WeatherCache) HasCurrent(location string) bool {
	if !c.enabled {
		return false
	}
	_, found := c.current.Get(location)
	return found
}

func (c *WeatherCache) HasForecast(location string) bool {
	if !c.enabled {
		return false
	}
	_, found := c.forecast.Get(location)
	return found
}

// Clear removes all cached entries from both classes.
func (c *WeatherCache) Clear() {
	if !c.enabled {
		return
	}
	c.current.Flush()
	c.forecast.Flush()
	c.logger.Info("Weather cache cleared")
}

// evictIfFull keeps a class under the size bound. Expired entries go
// first; if the class is still full, the entry closest to expiry is the
// least recently set (TTL is constant per class) and gets dropped.
func (c *WeatherCache) evictIfFull(store *cache.Cache) {
	if c.maxSize <= 0 || store.ItemCount() < c.maxSize {
		return
	}

	store.DeleteExpired()
	for store.ItemCount() >= c.maxSize {
		oldestKey := ""
		var oldestExpiry int64
		for key, item := range store.Items() {
			if oldestKey == "" || item.Expiration < oldestExpiry {
				oldestKey = key
				oldestExpiry = item.Expiration
			}
		}
		if oldestKey == "" {
			return
		}
		store.Delete(oldestKey)
		c.logger.WithField("location", oldestKey).Debug("Evicted cache entry over size limit")
	}
}
