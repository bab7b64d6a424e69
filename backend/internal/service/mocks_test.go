package service

import (
	"context"
	"io"
	"sync"

	"github.com/huddle-dev/huddle/shared/domain"
)

type MockWorkspaceStorage struct {
	CreateWorkspaceFunc func(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error)
	GetWorkspaceFunc    func(ctx context.Context, id domain.WorkspaceId) (*domain.Workspace, error)
	ListWorkspacesFunc  func(ctx context.Context, userId domain.UserId) ([]domain.Workspace, error)
	AddMemberFunc       func(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error)
	ListMembersFunc     func(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error)
	IsMemberFunc        func(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) (bool, error)
	DeleteWorkspaceFunc func(ctx context.Context, id domain.WorkspaceId) error

	isMemberCalls int
}

func (m *MockWorkspaceStorage) CreateWorkspace(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error) {
	if m.CreateWorkspaceFunc != nil {
		return m.CreateWorkspaceFunc(ctx, name, creator)
	}
	return &domain.Workspace{Id: "ws-1", Name: name}, nil
}

func (m *MockWorkspaceStorage) GetWorkspace(ctx context.Context, id domain.WorkspaceId) (*domain.Workspace, error) {
	if m.GetWorkspaceFunc != nil {
		return m.GetWorkspaceFunc(ctx, id)
	}
	return &domain.Workspace{Id: id}, nil
}

func (m *MockWorkspaceStorage) ListWorkspaces(ctx context.Context, userId domain.UserId) ([]domain.Workspace, error) {
	if m.ListWorkspacesFunc != nil {
		return m.ListWorkspacesFunc(ctx, userId)
	}
	return []domain.Workspace{}, nil
}

func (m *MockWorkspaceStorage) AddMember(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, workspaceId, user)
	}
	return &domain.Member{WorkspaceId: workspaceId, User: user}, nil
}

func (m *MockWorkspaceStorage) ListMembers(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, workspaceId)
	}
	return []domain.Member{}, nil
}

func (m *MockWorkspaceStorage) IsMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) (bool, error) {
	m.isMemberCalls++
	if m.IsMemberFunc != nil {
		return m.IsMemberFunc(ctx, workspaceId, userId)
	}
	return true, nil
}

func (m *MockWorkspaceStorage) DeleteWorkspace(ctx context.Context, id domain.WorkspaceId) error {
	if m.DeleteWorkspaceFunc != nil {
		return m.DeleteWorkspaceFunc(ctx, id)
	}
	return nil
}

type MockMembership struct {
	RequireMemberFunc func(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) error
}

func (m *MockMembership) RequireMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) error {
	if m.RequireMemberFunc != nil {
		return m.RequireMemberFunc(ctx, workspaceId, userId)
	}
	return nil
}

type MockChannelStorage struct {
	CreateChannelFunc func(ctx context.Context, data domain.ChannelCreationData) (*domain.Channel, error)
	GetChannelFunc    func(ctx context.Context, id domain.ChannelId) (*domain.Channel, error)
	ListChannelsFunc  func(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Channel, error)
	DeleteChannelFunc func(ctx context.Context, id domain.ChannelId) error
}

func (m *MockChannelStorage) CreateChannel(ctx context.Context, data domain.ChannelCreationData) (*domain.Channel, error) {
	if m.CreateChannelFunc != nil {
		return m.CreateChannelFunc(ctx, data)
	}
	return &domain.Channel{Id: "ch-1", WorkspaceId: data.WorkspaceId, Name: data.Name, CreatedBy: data.Creator.Id}, nil
}

func (m *MockChannelStorage) GetChannel(ctx context.Context, id domain.ChannelId) (*domain.Channel, error) {
	if m.GetChannelFunc != nil {
		return m.GetChannelFunc(ctx, id)
	}
	return &domain.Channel{Id: id, WorkspaceId: "ws-1"}, nil
}

func (m *MockChannelStorage) ListChannels(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Channel, error) {
	if m.ListChannelsFunc != nil {
		return m.ListChannelsFunc(ctx, workspaceId)
	}
	return []domain.Channel{}, nil
}

func (m *MockChannelStorage) DeleteChannel(ctx context.Context, id domain.ChannelId) error {
	if m.DeleteChannelFunc != nil {
		return m.DeleteChannelFunc(ctx, id)
	}
	return nil
}

type MockMessageStorage struct {
	GetChannelFunc    func(ctx context.Context, id domain.ChannelId) (*domain.Channel, error)
	ListMembersFunc   func(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error)
	CreateMessageFunc func(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error)
	GetMessageFunc    func(ctx context.Context, id domain.MsgId) (*domain.Message, error)
	GetMessageRefFunc func(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error)
	ListTopLevelFunc  func(ctx context.Context, channelId domain.ChannelId) ([]*domain.Message, error)
}

func (m *MockMessageStorage) GetChannel(ctx context.Context, id domain.ChannelId) (*domain.Channel, error) {
	if m.GetChannelFunc != nil {
		return m.GetChannelFunc(ctx, id)
	}
	return &domain.Channel{Id: id, WorkspaceId: "ws-1"}, nil
}

func (m *MockMessageStorage) ListMembers(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, workspaceId)
	}
	return []domain.Member{}, nil
}

func (m *MockMessageStorage) CreateMessage(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error) {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(ctx, data)
	}
	return &domain.Message{
		Id:        "msg-1",
		ChannelId: data.ChannelId,
		Author:    data.Author,
		Text:      data.Text,
		ParentId:  data.ParentId,
		Reactions: domain.ReactionCounts{},
		Replies:   []*domain.Message{},
	}, nil
}

func (m *MockMessageStorage) GetMessage(ctx context.Context, id domain.MsgId) (*domain.Message, error) {
	if m.GetMessageFunc != nil {
		return m.GetMessageFunc(ctx, id)
	}
	return &domain.Message{Id: id, Reactions: domain.ReactionCounts{}, Replies: []*domain.Message{}}, nil
}

func (m *MockMessageStorage) GetMessageRef(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error) {
	if m.GetMessageRefFunc != nil {
		return m.GetMessageRefFunc(ctx, id)
	}
	return &domain.MessageRef{Id: id, ChannelId: "ch-1", WorkspaceId: "ws-1"}, nil
}

func (m *MockMessageStorage) ListTopLevel(ctx context.Context, channelId domain.ChannelId) ([]*domain.Message, error) {
	if m.ListTopLevelFunc != nil {
		return m.ListTopLevelFunc(ctx, channelId)
	}
	return []*domain.Message{}, nil
}

type MockReactionStorage struct {
	GetMessageRefFunc  func(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error)
	ToggleReactionFunc func(ctx context.Context, msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) (domain.ReactionAction, error)
	ReactionCountsFunc func(ctx context.Context, msgId domain.MsgId) (domain.ReactionCounts, error)
}

func (m *MockReactionStorage) GetMessageRef(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error) {
	if m.GetMessageRefFunc != nil {
		return m.GetMessageRefFunc(ctx, id)
	}
	return &domain.MessageRef{Id: id, ChannelId: "ch-1", WorkspaceId: "ws-1", Author: domain.User{Id: "u-alice", Name: "alice"}}, nil
}

func (m *MockReactionStorage) ToggleReaction(ctx context.Context, msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) (domain.ReactionAction, error) {
	if m.ToggleReactionFunc != nil {
		return m.ToggleReactionFunc(ctx, msgId, userId, emoji)
	}
	return domain.ReactionAdded, nil
}

func (m *MockReactionStorage) ReactionCounts(ctx context.Context, msgId domain.MsgId) (domain.ReactionCounts, error) {
	if m.ReactionCountsFunc != nil {
		return m.ReactionCountsFunc(ctx, msgId)
	}
	return domain.ReactionCounts{}, nil
}

// MockNotifier records what was published.
type MockNotifier struct {
	mu        sync.Mutex
	Published []domain.Notification
}

func (m *MockNotifier) Publish(ctx context.Context, items ...domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, items...)
}

type MockFeed struct {
	AppendFunc func(ctx context.Context, n domain.Notification) error
	ListFunc   func(ctx context.Context, recipient domain.UserId, limit int) ([]domain.Notification, error)
}

func (m *MockFeed) Append(ctx context.Context, n domain.Notification) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, n)
	}
	return nil
}

func (m *MockFeed) List(ctx context.Context, recipient domain.UserId, limit int) ([]domain.Notification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, recipient, limit)
	}
	return []domain.Notification{}, nil
}

type MockBlobStore struct {
	PutFunc func(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error)
}

func (m *MockBlobStore) Put(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, contentType, data, size)
	}
	return "http://files/" + key, nil
}
