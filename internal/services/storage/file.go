package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/sirupsen/logrus"
)

// FileStore persists preferences as one JSON object keyed by string user id.
// The whole mapping is loaded at startup and rewritten on every mutation;
// writes go through a temp file with fsync before rename.
type FileStore struct {
	path   string
	mu     sync.Mutex
	data   map[string]record
	logger *logrus.Logger
}

// NewFileStore loads the persisted mapping, skipping malformed records.
func NewFileStore(path string, logger *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{
		path:   path,
		data:   make(map[string]record),
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preference file: %w", err)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.WithError(err).WithField("path", path).
			Error("Preference file is not valid JSON, starting empty")
		return s, nil
	}

	for key, rawRec := range entries {
		var rec record
		if err := json.Unmarshal(rawRec, &rec); err != nil {
			logger.WithError(err).WithField("user_key", key).
				Warn("Skipping malformed preference record")
			continue
		}
		if rec.UserID == 0 {
			// Key is authoritative when the record misses its own id.
			if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
				rec.UserID = id
			} else {
				logger.WithField("user_key", key).Warn("Skipping record without user id")
				continue
			}
		}
		s.data[key] = rec
	}

	logger.WithFields(logrus.Fields{
		"path":  path,
		"users": len(s.data),
	}).Info("Preference store loaded")

	return s, nil
}

func (s *FileStore) GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[strconv.FormatInt(userID, 10)]
	if !ok {
		return nil, nil
	}
	return decodeRecord(rec), nil
}

func (s *FileStore) SavePreferences(ctx context.Context, prefs *models.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[strconv.FormatInt(prefs.UserID, 10)] = encodeRecord(prefs)
	return s.flush()
}

func (s *FileStore) DeletePreferences(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strconv.FormatInt(userID, 10)
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

func (s *FileStore) AllPreferences(ctx context.Context) ([]*models.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*models.UserPreferences, 0, len(s.data))
	for _, rec := range s.data {
		all = append(all, decodeRecord(rec))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	return all, nil
}

// flush rewrites the full mapping durably. Callers hold s.mu.
func (s *FileStore) flush() error {
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace preference file: %w", err)
	}
	return nil
}
