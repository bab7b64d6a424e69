package memory

import (
	"context"
	"sort"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
)

var errWorkspaceNotFound = errors.NotFound("Workspace not found")

func (s *Storage) CreateWorkspace(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	row := &workspaceRow{
		ws:      domain.Workspace{Id: newId(), Name: name, CreatedAt: now},
		seq:     s.nextSeq(),
		members: make(map[domain.UserId]memberRow),
	}
	row.members[creator.Id] = memberRow{
		member: domain.Member{WorkspaceId: row.ws.Id, User: creator, JoinedAt: now},
		seq:    s.nextSeq(),
	}
	s.workspaces[row.ws.Id] = row

	ws := row.ws
	return &ws, nil
}

func (s *Storage) GetWorkspace(ctx context.Context, id domain.WorkspaceId) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.workspaces[id]
	if !ok {
		return nil, errWorkspaceNotFound
	}
	ws := row.ws
	return &ws, nil
}

// ListWorkspaces returns the user's workspaces, newest first.
func (s *Storage) ListWorkspaces(ctx context.Context, userId domain.UserId) ([]domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*workspaceRow, 0)
	for _, row := range s.workspaces {
		if _, ok := row.members[userId]; ok {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ws.CreatedAt.Equal(rows[j].ws.CreatedAt) {
			return rows[i].ws.CreatedAt.After(rows[j].ws.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	result := make([]domain.Workspace, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.ws)
	}
	return result, nil
}

func (s *Storage) AddMember(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.workspaces[workspaceId]
	if !ok {
		return nil, errWorkspaceNotFound
	}
	if _, exists := row.members[user.Id]; exists {
		return nil, errors.Conflict("User is already a member")
	}
	m := domain.Member{WorkspaceId: workspaceId, User: user, JoinedAt: s.timestamp()}
	row.members[user.Id] = memberRow{member: m, seq: s.nextSeq()}
	return &m, nil
}

// ListMembers returns members in join order.
func (s *Storage) ListMembers(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.workspaces[workspaceId]
	if !ok {
		return nil, errWorkspaceNotFound
	}
	rows := make([]memberRow, 0, len(row.members))
	for _, m := range row.members {
		rows = append(rows, m)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	result := make([]domain.Member, 0, len(rows))
	for _, m := range rows {
		result = append(result, m.member)
	}
	return result, nil
}

func (s *Storage) IsMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.workspaces[workspaceId]
	if !ok {
		return false, nil
	}
	_, member := row.members[userId]
	return member, nil
}

// DeleteWorkspace removes the workspace with its channels, messages and reactions.
func (s *Storage) DeleteWorkspace(ctx context.Context, id domain.WorkspaceId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return errWorkspaceNotFound
	}
	for chId, ch := range s.channels {
		if ch.ch.WorkspaceId == id {
			s.dropChannel(chId)
		}
	}
	delete(s.workspaces, id)
	return nil
}
