package pg

import (
	"context"
	"testing"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()
	ws, ch := setupChannel(t)

	att := &domain.Attachment{URL: "https://cdn.example.com/a.png", MimeType: "image/png"}
	msg, err := storage.CreateMessage(ctx, domain.MessageCreationData{ChannelId: ch.Id, Author: alice, Text: "hello @bob", Attachment: att})
	require.NoError(t, err)
	assert.Equal(t, "hello @bob", msg.Text)
	assert.Empty(t, msg.Reactions)
	assert.Empty(t, msg.Replies)

	got, err := storage.GetMessage(ctx, msg.Id)
	require.NoError(t, err)
	assert.Equal(t, msg.Id, got.Id)
	assert.Equal(t, alice, got.Author)
	assert.Equal(t, att, got.Attachment)
	assert.Nil(t, got.ParentId)
	assert.True(t, msg.CreatedAt.Equal(got.CreatedAt))

	t.Run("missing channel", func(t *testing.T) {
		_, err := storage.CreateMessage(ctx, domain.MessageCreationData{ChannelId: "missing", Author: alice, Text: "x"})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("reply to a reply", func(t *testing.T) {
		reply := post(t, ch.Id, bob, "sure", &msg.Id)
		_, err := storage.CreateMessage(ctx, domain.MessageCreationData{ChannelId: ch.Id, Author: alice, Text: "x", ParentId: &reply.Id})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("parent from another channel", func(t *testing.T) {
		other, err := storage.CreateChannel(ctx, domain.ChannelCreationData{WorkspaceId: ws.Id, Name: "other", Creator: alice})
		require.NoError(t, err)
		_, err = storage.CreateMessage(ctx, domain.MessageCreationData{ChannelId: other.Id, Author: alice, Text: "x", ParentId: &msg.Id})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("missing message", func(t *testing.T) {
		_, err := storage.GetMessage(ctx, "missing")
		assert.True(t, errors.IsNotFound(err))
		_, err = storage.GetMessageRef(ctx, "missing")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestListTopLevel(t *testing.T) {
	ctx := context.Background()
	_, ch := setupChannel(t)

	first := post(t, ch.Id, alice, "first", nil)
	second := post(t, ch.Id, bob, "second", nil)
	r1 := post(t, ch.Id, bob, "sure thing", &first.Id)
	r2 := post(t, ch.Id, carol, "me too", &first.Id)
	_, err := storage.ToggleReaction(ctx, r1.Id, alice.Id, "🎉")
	require.NoError(t, err)
	_, err = storage.ToggleReaction(ctx, second.Id, alice.Id, "👍")
	require.NoError(t, err)

	list, err := storage.ListTopLevel(ctx, ch.Id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.Id, list[0].Id)
	assert.Equal(t, second.Id, list[1].Id)
	assert.Equal(t, domain.ReactionCounts{"👍": 1}, list[1].Reactions)
	assert.Empty(t, list[0].Reactions)

	require.Len(t, list[0].Replies, 2)
	assert.Equal(t, r1.Id, list[0].Replies[0].Id)
	assert.Equal(t, r2.Id, list[0].Replies[1].Id)
	assert.Equal(t, domain.ReactionCounts{"🎉": 1}, list[0].Replies[0].Reactions)
	assert.Empty(t, list[1].Replies)

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}

	ref, err := storage.GetMessageRef(ctx, r2.Id)
	require.NoError(t, err)
	assert.Equal(t, ch.WorkspaceId, ref.WorkspaceId)
	assert.Equal(t, carol, ref.Author)
	require.NotNil(t, ref.ParentId)
	assert.Equal(t, first.Id, *ref.ParentId)

	_, err = storage.ListTopLevel(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestListTopLevelStableOrder(t *testing.T) {
	ctx := context.Background()
	_, ch := setupChannel(t)
	for i := 0; i < 20; i++ {
		post(t, ch.Id, alice, "m", nil)
	}

	first, err := storage.ListTopLevel(ctx, ch.Id)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := storage.ListTopLevel(ctx, ch.Id)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Id, again[j].Id)
		}
	}
}
