package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestFeed(t *testing.T, capacity int) (*Feed, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client, capacity), s
}

func mention(recipient, text string) domain.Notification {
	return domain.Notification{
		Kind:       domain.NotificationMention,
		Recipient:  recipient,
		SourceUser: "alice",
		TargetUser: "bob",
		MessageId:  "m1",
		Message:    text,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAppendList(t *testing.T) {
	feed, _ := setupTestFeed(t, 10)
	ctx := context.Background()

	require.NoError(t, feed.Append(ctx, mention("u-bob", "first")))
	require.NoError(t, feed.Append(ctx, mention("u-bob", "second")))
	require.NoError(t, feed.Append(ctx, mention("u-carol", "other")))

	got, err := feed.List(ctx, "u-bob", 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)
	assert.Equal(t, "first", got[1].Message)
	assert.Equal(t, "u-bob", got[0].Recipient)
	assert.Equal(t, domain.NotificationMention, got[0].Kind)
}

func TestListLimit(t *testing.T) {
	feed, _ := setupTestFeed(t, 10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, feed.Append(ctx, mention("u-bob", fmt.Sprint(i))))
	}

	got, err := feed.List(ctx, "u-bob", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].Message)
	assert.Equal(t, "3", got[1].Message)
}

func TestCapacityTrim(t *testing.T) {
	feed, s := setupTestFeed(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, feed.Append(ctx, mention("u-bob", fmt.Sprint(i))))
	}

	list, err := s.List(key("u-bob"))
	require.NoError(t, err)
	assert.Len(t, list, 3)

	got, err := feed.List(ctx, "u-bob", 50)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "4", got[0].Message)
	assert.Equal(t, "2", got[2].Message)
}

func TestListEmpty(t *testing.T) {
	feed, _ := setupTestFeed(t, 3)
	got, err := feed.List(context.Background(), "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendServerDown(t *testing.T) {
	feed, s := setupTestFeed(t, 3)
	s.Close()
	assert.Error(t, feed.Append(context.Background(), mention("u-bob", "x")))
}

func TestNew(t *testing.T) {
	s := miniredis.RunT(t)
	feed, err := New(context.Background(), "redis://"+s.Addr(), 5)
	require.NoError(t, err)
	defer feed.Close()

	_, err = New(context.Background(), "not a url", 5)
	assert.Error(t, err)
}
