package pg

import (
	"context"
	"database/sql"

	"github.com/huddle-dev/huddle/shared/domain"
	sharedpg "github.com/huddle-dev/huddle/shared/storage/pg"
)

const messageNotFound = "Message not found"

const messageColumns = `id, channel_id, parent_id, author_id, author_name, text, attachment_url, attachment_mime_type, created_at`

// CreateMessage checks the channel and parent and inserts in one transaction.
func (s *Storage) CreateMessage(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error) {
	msg := &domain.Message{
		Id:         newId(),
		ChannelId:  data.ChannelId,
		Author:     data.Author,
		Text:       data.Text,
		CreatedAt:  now(),
		ParentId:   data.ParentId,
		Attachment: data.Attachment,
		Reactions:  domain.ReactionCounts{},
		Replies:    []*domain.Message{},
	}

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT true FROM channels WHERE id = $1 FOR KEY SHARE`, data.ChannelId).Scan(&exists)
		if err != nil {
			return sharedpg.MapError(err, "", channelNotFound)
		}

		if data.ParentId != nil {
			err := tx.QueryRowContext(ctx, `
			SELECT true FROM messages
			WHERE id = $1 AND channel_id = $2 AND parent_id IS NULL
			FOR KEY SHARE`, *data.ParentId, data.ChannelId).Scan(&exists)
			if err != nil {
				return sharedpg.MapError(err, "", "Parent message not found")
			}
		}

		var url, mime sql.NullString
		if data.Attachment != nil {
			url = sql.NullString{String: data.Attachment.URL, Valid: true}
			mime = sql.NullString{String: data.Attachment.MimeType, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
		INSERT INTO messages(id, channel_id, parent_id, author_id, author_name, text, attachment_url, attachment_mime_type, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			msg.Id, msg.ChannelId, nullableId(data.ParentId), msg.Author.Id, msg.Author.Name, msg.Text, url, mime, msg.CreatedAt)
		return err
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", channelNotFound)
	}
	return msg, nil
}

// GetMessage loads a message with its reactions and, for top-level
// messages, its replies.
func (s *Storage) GetMessage(ctx context.Context, id domain.MsgId) (*domain.Message, error) {
	var msg *domain.Message
	err := sharedpg.WithSnapshot(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
		var err error
		msg, err = scanMessage(row)
		if err != nil {
			return sharedpg.MapError(err, "", messageNotFound)
		}
		return enrichThreads(ctx, tx, []*domain.Message{msg})
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", "")
	}
	return msg, nil
}

func (s *Storage) GetMessageRef(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error) {
	var ref domain.MessageRef
	var parent sql.NullString
	err := s.db.QueryRowContext(ctx, `
	SELECT m.id, m.channel_id, c.workspace_id, m.author_id, m.author_name, m.parent_id
	FROM messages m
	JOIN channels c ON c.id = m.channel_id
	WHERE m.id = $1`, id).
		Scan(&ref.Id, &ref.ChannelId, &ref.WorkspaceId, &ref.Author.Id, &ref.Author.Name, &parent)
	if err != nil {
		return nil, sharedpg.MapError(err, "", messageNotFound)
	}
	if parent.Valid {
		ref.ParentId = &parent.String
	}
	return &ref, nil
}

// ListTopLevel returns the channel transcript ordered by (created_at, seq),
// every message with its reactions and replies.
func (s *Storage) ListTopLevel(ctx context.Context, channelId domain.ChannelId) ([]*domain.Message, error) {
	var result []*domain.Message
	err := sharedpg.WithSnapshot(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getChannel(ctx, tx, channelId); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE channel_id = $1 AND parent_id IS NULL
		ORDER BY created_at, seq`, channelId)
		if err != nil {
			return err
		}
		result, err = scanMessages(rows)
		if err != nil {
			return err
		}
		return enrichThreads(ctx, tx, result)
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", "")
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var msg domain.Message
	var parent, url, mime sql.NullString
	if err := row.Scan(&msg.Id, &msg.ChannelId, &parent, &msg.Author.Id, &msg.Author.Name,
		&msg.Text, &url, &mime, &msg.CreatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		msg.ParentId = &parent.String
	}
	if url.Valid {
		msg.Attachment = &domain.Attachment{URL: url.String, MimeType: mime.String}
	}
	msg.Reactions = domain.ReactionCounts{}
	msg.Replies = []*domain.Message{}
	return &msg, nil
}

func scanMessages(rows *sql.Rows) ([]*domain.Message, error) {
	defer rows.Close()
	result := make([]*domain.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func nullableId(id *domain.MsgId) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *id, Valid: true}
}

