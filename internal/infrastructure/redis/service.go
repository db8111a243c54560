package redis

import (
	"context"

	"github.com/mor1n0/answerbot/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Service wraps the Redis client used by the Redis-backed conversation store.
type Service struct {
	client *redis.Client
}

// NewService connects to Redis when REDIS_URL is configured. Returns nil when
// Redis is not configured or unreachable; callers treat nil as "no Redis".
func NewService() *Service {
	url := config.GetRedisURL()

	if url == "" {
		log.Info().Msg("Redis not configured - conversation store will be in-memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: config.GetRedisPassword(),
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Error().
			Err(err).
			Str("addr", url).
			Msg("Failed to establish Redis connection")
		return nil
	}

	return &Service{
		client: client,
	}
}

// SetNX stores a value only if the key does not exist yet.
func (s *Service) SetNX(ctx context.Context, key string, value interface{}) error {
	if err := s.client.SetNX(ctx, key, value, 0).Err(); err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Redis SETNX operation failed")
		return err
	}
	return nil
}

// Exists reports whether the key is present.
func (s *Service) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Redis EXISTS operation failed")
		return false, err
	}
	return n > 0, nil
}

// PushList appends a value to the end of the list at key.
func (s *Service) PushList(ctx context.Context, key string, value interface{}) error {
	if err := s.client.RPush(ctx, key, value).Err(); err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Redis RPUSH operation failed")
		return err
	}
	return nil
}

// GetList retrieves the full list stored at key, oldest first.
func (s *Service) GetList(ctx context.Context, key string) ([]string, error) {
	vals, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		log.Error().
			Err(err).
			Str("key", key).
			Msg("Redis LRANGE operation failed")
		return nil, err
	}
	return vals, nil
}

// Delete removes the given keys, reporting how many existed.
func (s *Service) Delete(ctx context.Context, keys ...string) (int64, error) {
	n, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		log.Error().
			Err(err).
			Strs("keys", keys).
			Msg("Redis DEL operation failed")
		return 0, err
	}
	return n, nil
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	return s.client.Close()
}
