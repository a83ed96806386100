// Package redis keeps storage slots as plain Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

var _ ports.SlotStore = (*SlotStore)(nil)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every slot key.
	Prefix string
}

// SlotStore maps slot keys to Redis keys without expiry.
type SlotStore struct {
	client goredis.Cmdable
	prefix string
}

// NewSlotStore wraps an existing client.
func NewSlotStore(client goredis.Cmdable, prefix string) *SlotStore {
	return &SlotStore{client: client, prefix: prefix}
}

// Connect dials Redis, verifies it answers PING and returns the store with
// a close function.
func Connect(ctx context.Context, opts Options) (*SlotStore, func() error, error) {
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return NewSlotStore(client, opts.Prefix), client.Close, nil
}

// Get returns the value stored under key.
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, errors.New("redis client not configured")
	}
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ports.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Put overwrites the value stored under key.
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
