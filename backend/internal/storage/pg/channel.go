package pg

import (
	"context"
	"database/sql"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
	sharedpg "github.com/huddle-dev/huddle/shared/storage/pg"
)

const channelNotFound = "Channel not found"

func (s *Storage) CreateChannel(ctx context.Context, data domain.ChannelCreationData) (*domain.Channel, error) {
	ch := &domain.Channel{
		Id:          newId(),
		WorkspaceId: data.WorkspaceId,
		Name:        data.Name,
		CreatedBy:   data.Creator.Id,
		CreatedAt:   now(),
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO channels(id, workspace_id, name, created_by, created_at)
	VALUES($1, $2, $3, $4, $5)`,
		ch.Id, ch.WorkspaceId, ch.Name, ch.CreatedBy, ch.CreatedAt)
	if err != nil {
		return nil, sharedpg.MapError(err, "Channel name is already taken", workspaceNotFound)
	}
	return ch, nil
}

func (s *Storage) GetChannel(ctx context.Context, id domain.ChannelId) (*domain.Channel, error) {
	return getChannel(ctx, s.db, id)
}

func getChannel(ctx context.Context, q sharedpg.Querier, id domain.ChannelId) (*domain.Channel, error) {
	var ch domain.Channel
	err := q.QueryRowContext(ctx, `
	SELECT id, workspace_id, name, created_by, created_at
	FROM channels WHERE id = $1`, id).
		Scan(&ch.Id, &ch.WorkspaceId, &ch.Name, &ch.CreatedBy, &ch.CreatedAt)
	if err != nil {
		return nil, sharedpg.MapError(err, "", channelNotFound)
	}
	return &ch, nil
}

// ListChannels returns channels in creation order.
func (s *Storage) ListChannels(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Channel, error) {
	var result []domain.Channel
	err := sharedpg.WithSnapshot(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getWorkspace(ctx, tx, workspaceId); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, `
		SELECT id, workspace_id, name, created_by, created_at
		FROM channels
		WHERE workspace_id = $1
		ORDER BY created_at, seq`, workspaceId)
		if err != nil {
			return err
		}
		defer rows.Close()

		result = make([]domain.Channel, 0)
		for rows.Next() {
			var ch domain.Channel
			if err := rows.Scan(&ch.Id, &ch.WorkspaceId, &ch.Name, &ch.CreatedBy, &ch.CreatedAt); err != nil {
				return err
			}
			result = append(result, ch)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", "")
	}
	return result, nil
}

func (s *Storage) DeleteChannel(ctx context.Context, id domain.ChannelId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return errors.Store(err)
	}
	return expectOneRow(result, channelNotFound)
}
