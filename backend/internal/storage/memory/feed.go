package memory

import (
	"context"
	"sync"

	"github.com/huddle-dev/huddle/shared/domain"
)

// Feed keeps the newest capacity notifications per recipient.
type Feed struct {
	mu       sync.Mutex
	lists    map[domain.UserId][]domain.Notification
	capacity int
}

func NewFeed(capacity int) *Feed {
	return &Feed{lists: make(map[domain.UserId][]domain.Notification), capacity: capacity}
}

func (f *Feed) Append(ctx context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := append(f.lists[n.Recipient], n)
	if over := len(list) - f.capacity; over > 0 {
		list = append([]domain.Notification(nil), list[over:]...)
	}
	f.lists[n.Recipient] = list
	return nil
}

// List returns up to limit notifications, newest first.
func (f *Feed) List(ctx context.Context, recipient domain.UserId, limit int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.lists[recipient]
	result := make([]domain.Notification, 0, min(limit, len(list)))
	for i := len(list) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, list[i])
	}
	return result, nil
}
