// Package redisstore persists game snapshots as JSON values in Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bisca/internal/domain"
)

const keyPrefix = "bisca:session:"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// TTL expires idle snapshots; zero keeps them forever.
	TTL time.Duration
}

// Store is a SessionStore backed by a Redis client.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a store and checks the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &Store{rdb: rdb, ttl: cfg.TTL}, nil
}

func (s *Store) Load(ctx context.Context, slot string) (*domain.GameState, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", slot, err)
	}
	var state domain.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", slot, err)
	}
	return &state, nil
}

func (s *Store) Save(ctx context.Context, slot string, state *domain.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", slot, err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+slot, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", slot, err)
	}
	return nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
