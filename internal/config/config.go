package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Bot        BotConfig        `mapstructure:"bot"`
	Weather    WeatherConfig    `mapstructure:"weather"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	I18n       I18nConfig       `mapstructure:"i18n"`
}

type BotConfig struct {
	Token         string        `mapstructure:"token"`
	Webhook       WebhookConfig `mapstructure:"webhook"`
	UpdateTimeout int           `mapstructure:"update_timeout"`
}

type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Port    int    `mapstructure:"port"`
}

type WeatherConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ForecastDays int           `mapstructure:"forecast_days"`
}

type StorageConfig struct {
	Type  string      `mapstructure:"type"`
	File  FileStorage `mapstructure:"file"`
	Redis RedisConfig `mapstructure:"redis"`
}

type FileStorage struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	CurrentTTL  time.Duration `mapstructure:"current_ttl"`
	ForecastTTL time.Duration `mapstructure:"forecast_ttl"`
	MaxSize     int           `mapstructure:"max_size"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"`
	Output string     `mapstructure:"output"`
	File   FileConfig `mapstructure:"file"`
}

type FileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type MonitoringConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

type I18nConfig struct {
	DefaultLanguage string   `mapstructure:"default_language"`
	Languages       []string `mapstructure:"languages"`
	Directory       string   `mapstructure:"directory"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variable overrides
	viper.BindEnv("bot.token", "BOT_TOKEN")
	viper.BindEnv("weather.api_key", "WEATHER_API_KEY")
	viper.BindEnv("storage.redis.addr", "REDIS_ADDR")
	viper.BindEnv("storage.redis.password", "REDIS_PASSWORD")
	viper.BindEnv("storage.redis.db", "REDIS_DB")

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("bot.update_timeout", 60)
	viper.SetDefault("weather.base_url", "http://api.weatherapi.com/v1")
	viper.SetDefault("weather.timeout", "10s")
	viper.SetDefault("weather.forecast_days", 3)
	viper.SetDefault("storage.type", "file")
	viper.SetDefault("storage.file.path", "data/user_preferences.json")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.current_ttl", "300s")
	viper.SetDefault("cache.forecast_ttl", "600s")
	viper.SetDefault("cache.max_size", 100)
	viper.SetDefault("scheduler.timezone", "Local")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output", "stdout")
	viper.SetDefault("i18n.default_language", "es")
	viper.SetDefault("i18n.languages", []string{"es", "en"})
	viper.SetDefault("i18n.directory", "configs/i18n")
	viper.SetDefault("monitoring.metrics.path", "/metrics")
}

func validateConfig(cfg *Config) error {
	if cfg.Bot.Token == "" {
		return fmt.Errorf("bot token is required")
	}
	if cfg.Weather.APIKey == "" {
		return fmt.Errorf("weather api key is required")
	}
	if cfg.Weather.Timeout <= 0 {
		return fmt.Errorf("weather timeout must be positive")
	}
	if cfg.Weather.ForecastDays < 1 || cfg.Weather.ForecastDays > 10 {
		return fmt.Errorf("forecast days must be between 1 and 10")
	}
	switch cfg.Storage.Type {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
	return nil
}
