package memory

import (
	"context"
	"sort"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
)

var errChannelNotFound = errors.NotFound("Channel not found")

func (s *Storage) CreateChannel(ctx context.Context, data domain.ChannelCreationData) (*domain.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[data.WorkspaceId]; !ok {
		return nil, errWorkspaceNotFound
	}
	for _, row := range s.channels {
		if row.ch.WorkspaceId == data.WorkspaceId && row.ch.Name == data.Name {
			return nil, errors.Conflict("Channel name is already taken")
		}
	}

	row := &channelRow{
		ch: domain.Channel{
			Id:          newId(),
			WorkspaceId: data.WorkspaceId,
			Name:        data.Name,
			CreatedBy:   data.Creator.Id,
			CreatedAt:   s.timestamp(),
		},
		seq: s.nextSeq(),
	}
	s.channels[row.ch.Id] = row
	s.lastCreated[row.ch.Id] = row.ch.CreatedAt

	ch := row.ch
	return &ch, nil
}

func (s *Storage) GetChannel(ctx context.Context, id domain.ChannelId) (*domain.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.channels[id]
	if !ok {
		return nil, errChannelNotFound
	}
	ch := row.ch
	return &ch, nil
}

// ListChannels returns channels in creation order.
func (s *Storage) ListChannels(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.workspaces[workspaceId]; !ok {
		return nil, errWorkspaceNotFound
	}
	rows := make([]*channelRow, 0)
	for _, row := range s.channels {
		if row.ch.WorkspaceId == workspaceId {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	result := make([]domain.Channel, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.ch)
	}
	return result, nil
}

func (s *Storage) DeleteChannel(ctx context.Context, id domain.ChannelId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.channels[id]; !ok {
		return errChannelNotFound
	}
	s.dropChannel(id)
	return nil
}

// dropChannel must be called with mu held for writing.
func (s *Storage) dropChannel(id domain.ChannelId) {
	for _, top := range s.topLevel[id] {
		for _, reply := range s.replies[top] {
			delete(s.messages, reply)
		}
		delete(s.replies, top)
		delete(s.messages, top)
	}
	delete(s.topLevel, id)
	delete(s.lastCreated, id)
	delete(s.channels, id)
}
