package handlers

import (
	"context"
	"strings"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/i18n"
	"github.com/MickGomez/weather-bot-telegram/internal/middleware"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/MickGomez/weather-bot-telegram/internal/services/cache"
	"github.com/MickGomez/weather-bot-telegram/internal/services/weather"
	"github.com/MickGomez/weather-bot-telegram/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the subset of the bot API the handlers need. *tgbotapi.BotAPI
// satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// PreferenceStore is the storage surface the handlers need.
type PreferenceStore interface {
	GetOrCreatePreferences(ctx context.Context, userID int64) (*models.UserPreferences, error)
	GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *models.UserPreferences) error
}

// Notifier manages the user's daily notification job.
type Notifier interface {
	Reschedule(userID int64, at models.ClockTime) error
	Cancel(userID int64)
}

// Handler routes inbound updates: commands, menu callbacks and free text.
type Handler struct {
	config      *config.Config
	bot         Sender
	store       PreferenceStore
	weather     weather.Service
	cache       cache.Service
	sessions    *session.Manager
	notifier    Notifier
	rateLimiter middleware.RateLimiter
	localizer   *i18n.Localizer
	metrics     *middleware.Metrics
	logger      *logrus.Logger
}

// New creates the update handler.
func New(
	cfg *config.Config,
	bot Sender,
	store PreferenceStore,
	weatherService weather.Service,
	weatherCache cache.Service,
	sessions *session.Manager,
	notifier Notifier,
	rateLimiter middleware.RateLimiter,
	localizer *i18n.Localizer,
	metrics *middleware.Metrics,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		config:      cfg,
		bot:         bot,
		store:       store,
		weather:     weatherService,
		cache:       weatherCache,
		sessions:    sessions,
		notifier:    notifier,
		rateLimiter: rateLimiter,
		localizer:   localizer,
		metrics:     metrics,
		logger:      logger,
	}
}

// HandleUpdate dispatches one inbound update. A panic in a handler is
// contained here so one bad update cannot take the process down.
func (h *Handler) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithField("panic", r).Error("Recovered from panic in update handler")
			if chatID, ok := updateChatID(update); ok {
				h.sendText(chatID, h.localizer.Get(h.config.I18n.DefaultLanguage, i18n.MsgGenericError, nil))
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.metrics.RecordMessageReceived("callback")
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.metrics.RecordMessageReceived("command")
		h.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		h.metrics.RecordMessageReceived("text")
		h.handleText(ctx, update.Message)
	}
}

func updateChatID(update *tgbotapi.Update) (int64, bool) {
	if update.Message != nil {
		return update.Message.Chat.ID, true
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

// prefsFor loads the user's record, creating it with defaults on first
// contact.
func (h *Handler) prefsFor(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	return h.store.GetOrCreatePreferences(ctx, userID)
}

func (h *Handler) savePrefs(ctx context.Context, prefs *models.UserPreferences) {
	if err := h.store.SavePreferences(ctx, prefs); err != nil {
		h.logger.WithError(err).WithField("user_id", prefs.UserID).
			Error("Failed to persist preferences")
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (h *Handler) sendHTML(chatID int64, html string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

// editMessage rewrites a menu message in place. Re-rendering an unchanged
// menu makes the transport report "message is not modified"; that is not a
// failure.
func (h *Handler) editMessage(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	if _, err := h.bot.Send(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to edit message")
	}
}

func (h *Handler) editHTML(chatID int64, messageID int, html string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, html, keyboard)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.bot.Send(edit); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to edit message")
	}
}
