package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MickGomez/weather-bot-telegram/internal/config"
	"github.com/MickGomez/weather-bot-telegram/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisStore keeps one JSON record per user under "prefs:<id>".
type RedisStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewRedisStore(cfg *config.Config, logger *logrus.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.Redis.Addr,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, logger: logger}, nil
}

func prefsKey(userID int64) string {
	return fmt.Sprintf("prefs:%d", userID)
}

func (r *RedisStore) GetPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	data, err := r.client.Get(ctx, prefsKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		r.logger.WithError(err).WithField("user_id", userID).
			Warn("Malformed preference record in redis")
		return nil, nil
	}
	return decodeRecord(rec), nil
}

func (r *RedisStore) SavePreferences(ctx context.Context, prefs *models.UserPreferences) error {
	data, err := json.Marshal(encodeRecord(prefs))
	if err != nil {
		return err
	}
	// Preferences never expire.
	return r.client.Set(ctx, prefsKey(prefs.UserID), data, 0).Err()
}

func (r *RedisStore) DeletePreferences(ctx context.Context, userID int64) error {
	return r.client.Del(ctx, prefsKey(userID)).Err()
}

func (r *RedisStore) AllPreferences(ctx context.Context) ([]*models.UserPreferences, error) {
	var all []*models.UserPreferences

	iter := r.client.Scan(ctx, 0, "prefs:*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var rec record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			r.logger.WithError(err).WithField("key", iter.Val()).
				Warn("Skipping malformed preference record")
			continue
		}
		all = append(all, decodeRecord(rec))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return all, nil
}
