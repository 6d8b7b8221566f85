package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/handlers"
	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/middleware"
	"github.com/MickGomez/weather-bot-telegram/internal/services/cache"
	"github.com/MickGomez/weather-bot-telegram/internal/services/notify"
	"github.com/MickGomez/weather-bot-telegram/internal/services/scheduler"
	"github.com/MickGomez/weather-bot-telegram/internal/services/storage"
	"github.com/MickGomez/weather-bot-telegram/internal/services/weather"
	"github.com/MickGomez/weather-bot-telegram/internal/session"
	"github.com/MickGomez/weather-bot-telegram/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	envFile := flag.String("env", ".env", "Path to .env file")
	flag.Parse()

	// Load .env file if exists
	if err := godotenv.Load(*envFile); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("Starting weather bot...")

	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.WithError(err).Fatal("Failed to create bot")
	}

	bot.Debug = cfg.Logging.Level == "debug"
	log.WithField("username", bot.Self.UserName).Info("Bot authorized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewManager(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}

	weatherClient := weather.NewClient(&cfg.Weather, log)
	weatherCache := cache.NewCache(cfg, log)
	sessions := session.NewManager()
	rateLimiter := middleware.NewRateLimiter(cfg, log)
	metrics := middleware.NewMetrics()

	localizer, err := i18n.NewLocalizer(&cfg.I18n)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize i18n")
	}

	tz, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Scheduler.Timezone).
			Fatal("Failed to load scheduler timezone")
	}
	sched := scheduler.New(tz, log)

	notifier := notify.NewService(bot, storageManager, weatherClient, sched, localizer, metrics, log)

	// Jobs live in memory only; rebuild them from persisted preferences.
	restored := notifier.RestoreJobs(ctx)
	log.WithField("jobs", restored).Info("Notification jobs restored")
	sched.Start()

	handler := handlers.New(cfg, bot, storageManager, weatherClient, weatherCache,
		sessions, notifier, rateLimiter, localizer, metrics, log)

	if cfg.Monitoring.Metrics.Enabled {
		go func() {
			log.WithFields(logrus.Fields{
				"port": cfg.Monitoring.Metrics.Port,
				"path": cfg.Monitoring.Metrics.Path,
			}).Info("Starting metrics server")

			if err := middleware.StartMetricsServer(cfg.Monitoring.Metrics.Port, cfg.Monitoring.Metrics.Path); err != nil {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	var updates tgbotapi.UpdatesChannel

	if cfg.Bot.Webhook.Enabled {
		webhookURL := fmt.Sprintf("%s/%s", cfg.Bot.Webhook.URL, bot.Token)
		webhook, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to create webhook")
		}

		if _, err := bot.Request(webhook); err != nil {
			log.WithError(err).Fatal("Failed to set webhook")
		}

		updates = bot.ListenForWebhook("/" + bot.Token)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Bot.Webhook.Port)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.WithError(err).Error("Webhook server failed")
			}
		}()
		log.WithField("url", webhookURL).Info("Webhook set")
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = cfg.Bot.UpdateTimeout

		updates = bot.GetUpdatesChan(u)
		log.Info("Using long polling")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for update := range updates {
			update := update
			handler.HandleUpdate(ctx, &update)
		}
	}()

	<-sigChan
	log.Info("Shutdown signal received")

	if cfg.Bot.Webhook.Enabled {
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.WithError(err).Error("Failed to delete webhook")
		}
	}

	sched.Stop()
	cancel()

	// Give in-flight handlers time to finish
	time.Sleep(2 * time.Second)

	log.Info("Bot stopped")
}
