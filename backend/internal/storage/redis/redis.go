// Package redis keeps notification feeds in Redis lists, one list per
// recipient, trimmed to a fixed capacity.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "huddle:notifications:"

type Feed struct {
	client   *redis.Client
	capacity int64
}

// New parses redisURL and pings the server.
func New(ctx context.Context, redisURL string, capacity int) (*Feed, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, capacity), nil
}

// NewWithClient creates a feed from an existing client
func NewWithClient(client *redis.Client, capacity int) *Feed {
	return &Feed{client: client, capacity: int64(capacity)}
}

func key(recipient domain.UserId) string {
	return keyPrefix + recipient
}

// Append pushes n onto its recipient's list and drops the oldest entries
// above capacity, atomically.
func (f *Feed) Append(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	k := key(n.Recipient)
	_, err = f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, data)
		pipe.LTrim(ctx, k, -f.capacity, -1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// List returns up to limit notifications for recipient, newest first.
func (f *Feed) List(ctx context.Context, recipient domain.UserId, limit int) ([]domain.Notification, error) {
	raw, err := f.client.LRange(ctx, key(recipient), -int64(limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result := make([]domain.Notification, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var n domain.Notification
		if err := json.Unmarshal([]byte(raw[i]), &n); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		n.Recipient = recipient
		result = append(result, n)
	}
	return result, nil
}

func (f *Feed) Close() error {
	return f.client.Close()
}
