package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huddle-dev/huddle/shared/domain"
	sharedpg "github.com/huddle-dev/huddle/shared/storage/pg"
)

// tripleLockKey is unambiguous for any ids: every part but the last is
// length prefixed.
func tripleLockKey(msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) string {
	return fmt.Sprintf("reaction:%d:%s%d:%s%s", len(msgId), msgId, len(userId), userId, emoji)
}

// ToggleReaction serializes on a transaction scoped advisory lock for the
// triple, then deletes the row if present or inserts it if absent. Other
// triples hash to other locks and do not wait.
func (s *Storage) ToggleReaction(ctx context.Context, msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) (domain.ReactionAction, error) {
	var action domain.ReactionAction

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
			tripleLockKey(msgId, userId, emoji)); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT true FROM messages WHERE id = $1`, msgId).Scan(&exists); err != nil {
			return sharedpg.MapError(err, "", messageNotFound)
		}

		result, err := tx.ExecContext(ctx, `
		DELETE FROM reactions
		WHERE message_id = $1 AND user_id = $2 AND emoji = $3`,
			msgId, userId, emoji)
		if err != nil {
			return err
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if deleted > 0 {
			action = domain.ReactionRemoved
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
		INSERT INTO reactions(message_id, user_id, emoji, created_at)
		VALUES($1, $2, $3, $4)`,
			msgId, userId, emoji, now()); err != nil {
			return err
		}
		action = domain.ReactionAdded
		return nil
	})
	if err != nil {
		return "", sharedpg.MapError(err, "", messageNotFound)
	}
	return action, nil
}

func (s *Storage) ReactionCounts(ctx context.Context, msgId domain.MsgId) (domain.ReactionCounts, error) {
	var counts domain.ReactionCounts
	err := sharedpg.WithSnapshot(ctx, s.db, func(tx *sql.Tx) error {
		msg := &domain.Message{Id: msgId, Reactions: domain.ReactionCounts{}}
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT true FROM messages WHERE id = $1`, msgId).Scan(&exists); err != nil {
			return sharedpg.MapError(err, "", messageNotFound)
		}
		if err := enrichMessagesWithReactions(ctx, tx, []domain.MsgId{msgId}, map[domain.MsgId]*domain.Message{msgId: msg}); err != nil {
			return err
		}
		counts = msg.Reactions
		return nil
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", "")
	}
	return counts, nil
}
