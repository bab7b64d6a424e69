package memory

import (
	"context"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
)

var errMessageNotFound = errors.NotFound("Message not found")

// CreateMessage appends to the channel, or to the parent's replies when
// ParentId is set. The parent must be a top-level message of the same
// channel. createdAt never goes backwards within a channel.
func (s *Storage) CreateMessage(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.channels[data.ChannelId]; !ok {
		return nil, errChannelNotFound
	}
	if data.ParentId != nil {
		parent, ok := s.messages[*data.ParentId]
		if !ok || parent.msg.ChannelId != data.ChannelId || parent.msg.IsReply() {
			return nil, errors.NotFound("Parent message not found")
		}
	}

	createdAt := s.timestamp()
	if last := s.lastCreated[data.ChannelId]; createdAt.Before(last) {
		createdAt = last
	}
	s.lastCreated[data.ChannelId] = createdAt

	row := &messageRow{
		msg: domain.Message{
			Id:         newId(),
			ChannelId:  data.ChannelId,
			Author:     data.Author,
			Text:       data.Text,
			CreatedAt:  createdAt,
			ParentId:   copyId(data.ParentId),
			Attachment: copyAttachment(data.Attachment),
		},
		seq:       s.nextSeq(),
		reactions: &reactionSet{},
	}
	s.messages[row.msg.Id] = row
	if data.ParentId != nil {
		s.replies[*data.ParentId] = append(s.replies[*data.ParentId], row.msg.Id)
	} else {
		s.topLevel[data.ChannelId] = append(s.topLevel[data.ChannelId], row.msg.Id)
	}

	return s.view(row, false), nil
}

func (s *Storage) GetMessage(ctx context.Context, id domain.MsgId) (*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.messages[id]
	if !ok {
		return nil, errMessageNotFound
	}
	return s.view(row, true), nil
}

func (s *Storage) GetMessageRef(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.messages[id]
	if !ok {
		return nil, errMessageNotFound
	}
	return &domain.MessageRef{
		Id:          row.msg.Id,
		ChannelId:   row.msg.ChannelId,
		WorkspaceId: s.channels[row.msg.ChannelId].ch.WorkspaceId,
		Author:      row.msg.Author,
		ParentId:    copyId(row.msg.ParentId),
	}, nil
}

// ListTopLevel returns the channel transcript in (createdAt, seq) order.
// Appends happen under the write lock with clamped timestamps, so slice
// order already is that order.
func (s *Storage) ListTopLevel(ctx context.Context, channelId domain.ChannelId) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.channels[channelId]; !ok {
		return nil, errChannelNotFound
	}
	ids := s.topLevel[channelId]
	result := make([]*domain.Message, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.view(s.messages[id], true))
	}
	return result, nil
}

// view copies a row into a fresh message. mu must be held.
func (s *Storage) view(row *messageRow, withReplies bool) *domain.Message {
	msg := row.msg
	msg.ParentId = copyId(row.msg.ParentId)
	msg.Attachment = copyAttachment(row.msg.Attachment)
	msg.Reactions = row.reactions.counts()
	msg.Replies = []*domain.Message{}
	if withReplies && !msg.IsReply() {
		for _, id := range s.replies[msg.Id] {
			msg.Replies = append(msg.Replies, s.view(s.messages[id], false))
		}
	}
	return &msg
}

func copyId(id *domain.MsgId) *domain.MsgId {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyAttachment(a *domain.Attachment) *domain.Attachment {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}
