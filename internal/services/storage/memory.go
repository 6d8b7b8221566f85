package storage

import (
	"context"
	"sort"
	"strconv"

	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/patrickmn/go-cache"
)

// MemoryStore is a non-durable backend for development and tests.
type MemoryStore struct {
	prefs *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: cache.New(cache.NoExpiration, cache.NoExpiration)}
}

func (m *MemoryStore) GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	if val, found := m.prefs.Get(strconv.FormatInt(userID, 10)); found {
		rec := val.(record)
		return decodeRecord(rec), nil
	}
	return nil, nil
}

func (m *MemoryStore) SavePreferences(ctx context.Context, prefs *models.UserPreferences) error {
	m.prefs.Set(strconv.FormatInt(prefs.UserID, 10), encodeRecord(prefs), cache.NoExpiration)
	return nil
}

func (m *MemoryStore) DeletePreferences(ctx context.Context, userID int64) error {
	m.prefs.Delete(strconv.FormatInt(userID, 10))
	return nil
}

func (m *MemoryStore) AllPreferences(ctx context.Context) ([]*models.UserPreferences, error) {
	items := m.prefs.Items()
	all := make([]*models.UserPreferences, 0, len(items))
	for _, item := range items {
		all = append(all, decodeRecord(item.Object.(record)))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	return all, nil
}
