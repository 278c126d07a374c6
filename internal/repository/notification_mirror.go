package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NotificationMirror copies queued notifications to an external list so other
// processes can observe them. It is write-only from the engine's side.
type NotificationMirror interface {
	Mirror(ctx context.Context, username, message string) error
}

type redisNotificationMirror struct {
	client *redis.Client
	prefix string
}

// NewRedisNotificationMirror returns a mirror that RPUSHes onto
// "<prefix>:notifications:<username>".
func NewRedisNotificationMirror(client *redis.Client, prefix string) NotificationMirror {
	return &redisNotificationMirror{client: client, prefix: prefix}
}

func (m *redisNotificationMirror) Mirror(ctx context.Context, username, message string) error {
	return m.client.RPush(ctx, NotificationKey(m.prefix, username), message).Err()
}

// NotificationKey builds the list key for username.
func NotificationKey(prefix, username string) string {
	if prefix == "" {
		return fmt.Sprintf("notifications:%s", username)
	}
	return fmt.Sprintf("%s:notifications:%s", prefix, username)
}
