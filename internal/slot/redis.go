package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores the snapshot under a single key with no expiry.
type Redis struct {
	client *redis.Client
	key    string
}

// OpenRedis connects to the server described by rawURL and verifies it
// answers PING.
func OpenRedis(ctx context.Context, rawURL, key string) (*Redis, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("slot.OpenRedis: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("slot.OpenRedis: ping: %w", err)
	}
	return NewRedis(client, key), nil
}

// NewRedis wraps an existing client. Close closes the client.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

// Read returns the value stored under the slot key.
func (r *Redis) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("slot.Redis.Read: %w", err)
	}
	return data, nil
}

// Write replaces the value stored under the slot key.
func (r *Redis) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("slot.Redis.Write: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
