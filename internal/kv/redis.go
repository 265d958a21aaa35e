package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisAddr = "localhost:6379"
	defaultRedisKey  = "folio:preferences"
	redisTimeout     = 2 * time.Second
)

// Redis keeps preferences as fields of a single redis hash, so several
// terminals (or a web front end) can share one profile.
type Redis struct {
	client *redis.Client
	hash   string
}

// NewRedis returns a store using the hash named key on the server at addr.
func NewRedis(addr, key string) (*Redis, error) {
	if addr == "" {
		addr = defaultRedisAddr
	}
	if key == "" {
		key = defaultRedisKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  redisTimeout,
		ReadTimeout:  redisTimeout,
		WriteTimeout: redisTimeout,
	})
	return &Redis{client: client, hash: key}, nil
}

func (r *Redis) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := r.client.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
