package service

import (
	"context"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/logger"
	"github.com/huddle-dev/huddle/shared/middleware/metrics"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

type NotificationService interface {
	List(ctx context.Context, user domain.User, limit int) ([]domain.Notification, error)
}

// Notifier appends derived events. It never fails the caller.
type Notifier interface {
	Publish(ctx context.Context, items ...domain.Notification)
}

type NotificationFeed interface {
	Append(ctx context.Context, n domain.Notification) error
	List(ctx context.Context, recipient domain.UserId, limit int) ([]domain.Notification, error)
}

type Notification struct {
	feed NotificationFeed
}

func NewNotification(feed NotificationFeed) *Notification {
	return &Notification{feed: feed}
}

// List returns the newest notifications first. limit falls back to the
// default when not positive and is capped at the maximum.
func (n *Notification) List(ctx context.Context, user domain.User, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	limit = min(limit, MaxNotificationLimit)
	return n.feed.List(ctx, user.Id, limit)
}

// Publish is best effort. Feed failures are logged and counted.
func (n *Notification) Publish(ctx context.Context, items ...domain.Notification) {
	for _, item := range items {
		if err := n.feed.Append(ctx, item); err != nil {
			metrics.NotificationFailed()
			logger.Log.Warn("failed to append notification",
				"component", "notification",
				"kind", item.Kind,
				"recipient", item.Recipient,
				"message_id", item.MessageId,
				"error", err)
		}
	}
}
