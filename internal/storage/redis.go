package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

type RedisSlot struct {
	logger zerolog.Logger
	client *redis.Client
}

func NewRedisSlot(logger zerolog.Logger, client *redis.Client) *RedisSlot {
	return &RedisSlot{
		logger: logger,
		client: client,
	}
}

func (s *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}

		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to get slot")
		return nil, err
	}
	s.logger.Debug().
		Str("key", key).
		Int("size", len(value)).
		Msg("got slot")
	return value, nil
}

func (s *RedisSlot) Set(ctx context.Context, key string, value []byte) error {
	err := s.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to set slot")
		return err
	}
	s.logger.Debug().
		Str("key", key).
		Int("size", len(value)).
		Msg("set slot")
	return nil
}

func (s *RedisSlot) Delete(ctx context.Context, key string) error {
	err := s.client.Del(ctx, key).Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to delete slot")
		return err
	}
	return nil
}

func (s *RedisSlot) Close() error {
	return s.client.Close()
}
