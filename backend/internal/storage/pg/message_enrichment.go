package pg

import (
	"context"
	"fmt"

	"github.com/huddle-dev/huddle/shared/domain"
	sharedpg "github.com/huddle-dev/huddle/shared/storage/pg"
	"github.com/lib/pq"
)

// enrichThreads attaches replies to top-level messages and reaction counts
// to every message and reply, with one query each.
func enrichThreads(ctx context.Context, q sharedpg.Querier, messages []*domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	idToMessage := make(map[domain.MsgId]*domain.Message, len(messages))
	parentIds := make([]domain.MsgId, 0, len(messages))
	for _, msg := range messages {
		idToMessage[msg.Id] = msg
		if !msg.IsReply() {
			parentIds = append(parentIds, msg.Id)
		}
	}

	if err := enrichMessagesWithReplies(ctx, q, parentIds, idToMessage); err != nil {
		return err
	}

	allIds := make([]domain.MsgId, 0, len(idToMessage))
	for id := range idToMessage {
		allIds = append(allIds, id)
	}
	return enrichMessagesWithReactions(ctx, q, allIds, idToMessage)
}

// enrichMessagesWithReplies appends replies in (created_at, seq) order and
// registers them in idToMessage.
func enrichMessagesWithReplies(
	ctx context.Context,
	q sharedpg.Querier,
	parentIds []domain.MsgId,
	idToMessage map[domain.MsgId]*domain.Message,
) error {
	if len(parentIds) == 0 {
		return nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE parent_id = ANY($1)
		ORDER BY created_at, seq
	`, pq.Array(parentIds))
	if err != nil {
		return fmt.Errorf("failed to fetch replies: %w", err)
	}
	replies, err := scanMessages(rows)
	if err != nil {
		return fmt.Errorf("failed to scan reply row: %w", err)
	}

	for _, reply := range replies {
		if parent, ok := idToMessage[*reply.ParentId]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
		idToMessage[reply.Id] = reply
	}
	return nil
}

// enrichMessagesWithReactions fills Reactions from the ledger. Emojis
// without rows never appear.
func enrichMessagesWithReactions(
	ctx context.Context,
	q sharedpg.Querier,
	messageIds []domain.MsgId,
	idToMessage map[domain.MsgId]*domain.Message,
) error {
	if len(messageIds) == 0 {
		return nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT message_id, emoji, count(*)
		FROM reactions
		WHERE message_id = ANY($1)
		GROUP BY message_id, emoji
	`, pq.Array(messageIds))
	if err != nil {
		return fmt.Errorf("failed to fetch reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id domain.MsgId
		var emoji domain.Emoji
		var count int
		if err := rows.Scan(&id, &emoji, &count); err != nil {
			return fmt.Errorf("failed to scan reaction row: %w", err)
		}
		if msg, ok := idToMessage[id]; ok {
			msg.Reactions[emoji] = count
		}
	}
	return rows.Err()
}
