package pg

import (
	"context"
	"database/sql"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
	sharedpg "github.com/huddle-dev/huddle/shared/storage/pg"
)

const workspaceNotFound = "Workspace not found"

func (s *Storage) CreateWorkspace(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error) {
	ws := &domain.Workspace{Id: newId(), Name: name, CreatedAt: now()}

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workspaces(id, name, created_at) VALUES($1, $2, $3)`,
			ws.Id, ws.Name, ws.CreatedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO workspace_members(workspace_id, user_id, user_name, joined_at)
		VALUES($1, $2, $3, $4)`,
			ws.Id, creator.Id, creator.Name, ws.CreatedAt)
		return err
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", "")
	}
	return ws, nil
}

func (s *Storage) GetWorkspace(ctx context.Context, id domain.WorkspaceId) (*domain.Workspace, error) {
	return getWorkspace(ctx, s.db, id)
}

func getWorkspace(ctx context.Context, q sharedpg.Querier, id domain.WorkspaceId) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workspaces WHERE id = $1`, id).
		Scan(&ws.Id, &ws.Name, &ws.CreatedAt)
	if err != nil {
		return nil, sharedpg.MapError(err, "", workspaceNotFound)
	}
	return &ws, nil
}

// ListWorkspaces returns the user's workspaces, newest first.
func (s *Storage) ListWorkspaces(ctx context.Context, userId domain.UserId) ([]domain.Workspace, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT w.id, w.name, w.created_at
	FROM workspaces w
	JOIN workspace_members m ON m.workspace_id = w.id
	WHERE m.user_id = $1
	ORDER BY w.created_at DESC, w.seq DESC`, userId)
	if err != nil {
		return nil, errors.Store(err)
	}
	defer rows.Close()

	result := make([]domain.Workspace, 0)
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.Id, &ws.Name, &ws.CreatedAt); err != nil {
			return nil, errors.Store(err)
		}
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store(err)
	}
	return result, nil
}

func (s *Storage) AddMember(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error) {
	m := &domain.Member{WorkspaceId: workspaceId, User: user, JoinedAt: now()}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO workspace_members(workspace_id, user_id, user_name, joined_at)
	VALUES($1, $2, $3, $4)`,
		workspaceId, user.Id, user.Name, m.JoinedAt)
	if err != nil {
		return nil, sharedpg.MapError(err, "User is already a member", workspaceNotFound)
	}
	return m, nil
}

// ListMembers returns members in join order.
func (s *Storage) ListMembers(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error) {
	var result []domain.Member
	err := sharedpg.WithSnapshot(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getWorkspace(ctx, tx, workspaceId); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, `
		SELECT user_id, user_name, joined_at
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY joined_at, seq`, workspaceId)
		if err != nil {
			return err
		}
		defer rows.Close()

		result = make([]domain.Member, 0)
		for rows.Next() {
			m := domain.Member{WorkspaceId: workspaceId}
			if err := rows.Scan(&m.Id, &m.Name, &m.JoinedAt); err != nil {
				return err
			}
			result = append(result, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, sharedpg.MapError(err, "", "")
	}
	return result, nil
}

func (s *Storage) IsMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx, `
	SELECT EXISTS(SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND user_id = $2)`,
		workspaceId, userId).Scan(&ok)
	if err != nil {
		return false, errors.Store(err)
	}
	return ok, nil
}

// DeleteWorkspace cascades to channels, messages and reactions through
// foreign keys.
func (s *Storage) DeleteWorkspace(ctx context.Context, id domain.WorkspaceId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return errors.Store(err)
	}
	return expectOneRow(result, workspaceNotFound)
}

func expectOneRow(result sql.Result, notFoundMsg string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Store(err)
	}
	if n == 0 {
		return errors.NotFound(notFoundMsg)
	}
	return nil
}
