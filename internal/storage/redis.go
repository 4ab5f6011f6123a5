package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aimarket/haggle-engine/pkg/level"
	"github.com/aimarket/haggle-engine/pkg/session"
)

// RedisStorage implements the Storage interface using Redis for
// negotiation sessions and filesystem for the static level catalog.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
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

// sessionKey builds the Redis key for a player x level pair. Each pair
// has at most one session, so the key carries both IDs.
func sessionKey(userID, levelID string) string {
	return "session:" + userID + ":" + levelID
}

// Session operations (Redis-backed)

func (r *RedisStorage) SaveSession(ctx context.Context, s *session.NegotiationState) error {
	s.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal session", "user_id", s.UserID, "level_id", s.LevelID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Sessions are permanent progress records, so no TTL.
	key := sessionKey(s.UserID, s.LevelID)
	cmd := r.client.Set(ctx, key, string(data), 0)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save session", "user_id", s.UserID, "level_id", s.LevelID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, userID, levelID string) (*session.NegotiationState, error) {
	key := sessionKey(userID, levelID)
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load session", "user_id", userID, "level_id", levelID, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		return nil, nil
	}

	var s session.NegotiationState
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		r.logger.Error("Failed to unmarshal session", "user_id", userID, "level_id", levelID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

// Level operations (filesystem-backed)

func (r *RedisStorage) ListLevels(ctx context.Context) ([]*level.Level, error) {
	levelsDir := filepath.Join(r.dataDir, "levels")
	levels := make([]*level.Level, 0)

	err := filepath.WalkDir(levelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read level file", "path", path, "error", err)
			return nil
		}

		var l level.Level
		if err := json.Unmarshal(file, &l); err != nil {
			r.logger.Warn("Failed to unmarshal level file", "path", path, "error", err)
			return nil
		}

		levels = append(levels, &l)
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk levels directory", "error", err)
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	// Cheapest unlocks first.
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].RequiredPoints != levels[j].RequiredPoints {
			return levels[i].RequiredPoints < levels[j].RequiredPoints
		}
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

func (r *RedisStorage) GetLevel(ctx context.Context, id string) (*level.Level, error) {
	path := filepath.Join(r.dataDir, "levels", id+".json")

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Return nil for not found
		}
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	var l level.Level
	if err := json.Unmarshal(file, &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level: %w", err)
	}
	l.ID = id // Filename overrides any ID in the JSON

	return &l, nil
}
