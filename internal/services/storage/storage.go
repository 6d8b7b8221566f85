package storage

import (
	"context"
	"fmt"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/sirupsen/logrus"
)

// Store defines preference persistence operations. Get returns (nil, nil)
// when no record exists for the user.
type Store interface {
	GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *models.UserPreferences) error
	DeletePreferences(ctx context.Context, userID int64) error
	AllPreferences(ctx context.Context) ([]*models.UserPreferences, error)
}

// Manager wraps the configured storage backend.
type Manager struct {
	store  Store
	logger *logrus.Logger
}

// NewManager creates a storage manager for the configured backend.
func NewManager(cfg *config.Config, logger *logrus.Logger) (*Manager, error) {
	manager := &Manager{logger: logger}

	switch cfg.Storage.Type {
	case "file":
		fileStore, err := NewFileStore(cfg.Storage.File.Path, logger)
		if err != nil {
			return nil, err
		}
		manager.store = fileStore
	case "redis":
		redisStore, err := NewRedisStore(cfg, logger)
		if err != nil {
			return nil, err
		}
		manager.store = redisStore
	case "memory":
		manager.store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	return manager, nil
}

// GetOrCreatePreferences returns the user's record, lazily creating a
// default one on first contact.
func (m *Manager) GetOrCreatePreferences(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	prefs, err := m.store.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs != nil {
		return prefs, nil
	}

	prefs = models.DefaultPreferences(userID)
	if err := m.store.SavePreferences(ctx, prefs); err != nil {
		// Best-effort degradation: keep serving the in-memory record but
		// log loudly, this risks silent data loss.
		m.logger.WithError(err).WithField("user_id", userID).
			Error("Failed to persist new preference record")
	}
	return prefs, nil
}

func (m *Manager) GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	return m.store.GetPreferences(ctx, userID)
}

func (m *Manager) SavePreferences(ctx context.Context, prefs *models.UserPreferences) error {
	return m.store.SavePreferences(ctx, prefs)
}

func (m *Manager) DeletePreferences(ctx context.Context, userID int64) error {
	return m.store.DeletePreferences(ctx, userID)
}

func (m *Manager) AllPreferences(ctx context.Context) ([]*models.UserPreferences, error) {
	return m.store.AllPreferences(ctx)
}
