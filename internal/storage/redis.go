package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mgiraldez/mansion-engine/pkg/state"
)

const (
	saveKeyPrefix = "save:"
	saveIndexKey  = "saves"
	highScoresKey = "highscores"
)

// RedisStorage implements the Storage interface using Redis. Saves live in
// plain keys indexed by a set; the leaderboard is a sorted set scored by
// points.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL accepts
// either a redis:// URL or a bare host:port address.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}

	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveGame(ctx context.Context, rec *state.SaveRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("Failed to marshal save record", "slot", rec.Slot, "error", err)
		return fmt.Errorf("failed to marshal save record: %w", err)
	}

	key := saveKeyPrefix + rec.Slot
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to write save record", "slot", rec.Slot, "error", err)
		return fmt.Errorf("failed to write save record: %w", err)
	}

	if err := r.client.SAdd(ctx, saveIndexKey, rec.Slot).Err(); err != nil {
		r.logger.Error("Failed to index save slot", "slot", rec.Slot, "error", err)
		return fmt.Errorf("failed to index save slot: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadGame(ctx context.Context, slot string) (*state.SaveRecord, error) {
	key := saveKeyPrefix + slot
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("Save slot is empty", "slot", slot)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to read save record", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to read save record: %w", err)
	}

	var rec state.SaveRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		r.logger.Error("Failed to unmarshal save record", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to unmarshal save record: %w", err)
	}

	return &rec, nil
}

func (r *RedisStorage) ListGames(ctx context.Context) ([]*state.SaveRecord, error) {
	slots, err := r.client.SMembers(ctx, saveIndexKey).Result()
	if err != nil {
		r.logger.Error("Failed to list save slots", "error", err)
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}

	records := make([]*state.SaveRecord, 0, len(slots))
	for _, slot := range slots {
		rec, err := r.LoadGame(ctx, slot)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// Slot in the index but key missing; drop the stale entry.
			r.client.SRem(ctx, saveIndexKey, slot)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *RedisStorage) DeleteGame(ctx context.Context, slot string) (bool, error) {
	key := saveKeyPrefix + slot
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to delete save record", "slot", slot, "error", err)
		return false, fmt.Errorf("failed to delete save record: %w", err)
	}

	if err := r.client.SRem(ctx, saveIndexKey, slot).Err(); err != nil {
		r.logger.Error("Failed to unindex save slot", "slot", slot, "error", err)
		return false, fmt.Errorf("failed to unindex save slot: %w", err)
	}

	return deleted > 0, nil
}

func (r *RedisStorage) AddHighScore(ctx context.Context, hs *state.HighScore) error {
	data, err := json.Marshal(hs)
	if err != nil {
		r.logger.Error("Failed to marshal high score", "name", hs.Name, "error", err)
		return fmt.Errorf("failed to marshal high score: %w", err)
	}

	member := redis.Z{
		Score:  float64(hs.Score),
		Member: string(data),
	}
	if err := r.client.ZAdd(ctx, highScoresKey, member).Err(); err != nil {
		r.logger.Error("Failed to add high score", "name", hs.Name, "error", err)
		return fmt.Errorf("failed to add high score: %w", err)
	}

	// Keep only the top MaxHighScores entries.
	if err := r.client.ZRemRangeByRank(ctx, highScoresKey, 0, int64(-(MaxHighScores + 1))).Err(); err != nil {
		r.logger.Error("Failed to trim high scores", "error", err)
		return fmt.Errorf("failed to trim high scores: %w", err)
	}

	return nil
}

func (r *RedisStorage) HighScores(ctx context.Context) ([]*state.HighScore, error) {
	members, err := r.client.ZRevRange(ctx, highScoresKey, 0, MaxHighScores-1).Result()
	if err != nil {
		r.logger.Error("Failed to read high scores", "error", err)
		return nil, fmt.Errorf("failed to read high scores: %w", err)
	}

	scores := make([]*state.HighScore, 0, len(members))
	for _, m := range members {
		var hs state.HighScore
		if err := json.Unmarshal([]byte(m), &hs); err != nil {
			r.logger.Error("Failed to unmarshal high score", "error", err)
			return nil, fmt.Errorf("failed to unmarshal high score: %w", err)
		}
		scores = append(scores, &hs)
	}

	return scores, nil
}
