package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

// RedisStorage keeps the investigator document under a single Redis key.
type RedisStorage struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL is either
// a redis:// URL or a bare host:port address.
func NewRedisStorage(redisURL, key string, logger *slog.Logger) (*RedisStorage, error) {
	opt := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opt = parsed
	}

	if key == "" {
		key = "tracker:investigators"
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		key:    key,
		logger: logger,
	}, nil
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

// Investigator document operations

func (r *RedisStorage) LoadInvestigators(ctx context.Context) ([]*actor.Investigator, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis key %s: %w", r.key, storage.ErrNotFound)
		}
		r.logger.Error("Failed to load investigators", "key", r.key, "error", err)
		return nil, fmt.Errorf("failed to load investigators: %w", err)
	}

	investigators, err := actor.DecodeInvestigators(data)
	if err != nil {
		r.logger.Error("Failed to decode investigators", "key", r.key, "error", err)
		return nil, storage.WrapMalformed(err)
	}

	return investigators, nil
}

func (r *RedisStorage) SaveInvestigators(ctx context.Context, investigators []*actor.Investigator) error {
	data, err := actor.EncodeInvestigators(investigators)
	if err != nil {
		r.logger.Error("Failed to marshal investigators", "error", err)
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save investigators", "key", r.key, "error", err)
		return fmt.Errorf("failed to save investigators: %w", err)
	}

	return nil
}
