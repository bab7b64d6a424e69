package service

import (
	"context"
	"strings"
	"time"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/logger"
	"github.com/huddle-dev/huddle/shared/mention"
	"github.com/huddle-dev/huddle/shared/middleware/metrics"
)

type MessageService interface {
	Post(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error)
	ListTopLevel(ctx context.Context, channelId domain.ChannelId, caller domain.User) ([]*domain.Message, error)
	Get(ctx context.Context, id domain.MsgId, caller domain.User) (*domain.Message, error)
}

type Message struct {
	storage    MessageStorage
	validator  MessageValidator
	membership Membership
	notifier   Notifier
}

type MessageStorage interface {
	GetChannel(ctx context.Context, id domain.ChannelId) (*domain.Channel, error)
	ListMembers(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error)
	CreateMessage(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error)
	GetMessage(ctx context.Context, id domain.MsgId) (*domain.Message, error)
	GetMessageRef(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error)
	ListTopLevel(ctx context.Context, channelId domain.ChannelId) ([]*domain.Message, error)
}

type MessageValidator interface {
	Text(text domain.MsgText, hasAttachment bool) error
	Attachment(a *domain.Attachment) error
}

func NewMessage(storage MessageStorage, validator MessageValidator, membership Membership, notifier Notifier) MessageService {
	return &Message{storage, validator, membership, notifier}
}

func (m *Message) Post(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error) {
	if err := m.validator.Text(data.Text, data.Attachment != nil); err != nil {
		return nil, err
	}
	if err := m.validator.Attachment(data.Attachment); err != nil {
		return nil, err
	}

	ch, err := m.storage.GetChannel(ctx, data.ChannelId)
	if err != nil {
		return nil, err
	}
	if err := m.membership.RequireMember(ctx, ch.WorkspaceId, data.Author.Id); err != nil {
		return nil, err
	}

	msg, err := m.storage.CreateMessage(ctx, data)
	if err != nil {
		return nil, err
	}

	kind := metrics.KindTopLevel
	if msg.IsReply() {
		kind = metrics.KindReply
	}
	metrics.MessagePosted(kind)

	members := m.members(ctx, ch.WorkspaceId)
	msg.Mentions = mention.Extract(msg.Text, domain.MemberNames(members))
	m.notifier.Publish(ctx, mentionNotifications(msg, members)...)

	return msg, nil
}

func (m *Message) ListTopLevel(ctx context.Context, channelId domain.ChannelId, caller domain.User) ([]*domain.Message, error) {
	ch, err := m.storage.GetChannel(ctx, channelId)
	if err != nil {
		return nil, err
	}
	if err := m.membership.RequireMember(ctx, ch.WorkspaceId, caller.Id); err != nil {
		return nil, err
	}

	messages, err := m.storage.ListTopLevel(ctx, channelId)
	if err != nil {
		return nil, err
	}
	names := domain.MemberNames(m.members(ctx, ch.WorkspaceId))
	for _, msg := range messages {
		deriveMentions(msg, names)
	}
	return messages, nil
}

func (m *Message) Get(ctx context.Context, id domain.MsgId, caller domain.User) (*domain.Message, error) {
	ref, err := m.storage.GetMessageRef(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.membership.RequireMember(ctx, ref.WorkspaceId, caller.Id); err != nil {
		return nil, err
	}

	msg, err := m.storage.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	deriveMentions(msg, domain.MemberNames(m.members(ctx, ref.WorkspaceId)))
	return msg, nil
}

// members is used for mention derivation only. A failed lookup degrades to
// no mentions instead of failing a message that is already stored.
func (m *Message) members(ctx context.Context, workspaceId domain.WorkspaceId) []domain.Member {
	members, err := m.storage.ListMembers(ctx, workspaceId)
	if err != nil {
		logger.Log.Warn("failed to list members for mentions", "component", "message", "workspace_id", workspaceId, "error", err)
		return nil
	}
	return members
}

func deriveMentions(msg *domain.Message, names []domain.UserName) {
	msg.Mentions = mention.Extract(msg.Text, names)
	for _, reply := range msg.Replies {
		deriveMentions(reply, names)
	}
}

// mentionNotifications emits one event per mention occurrence and member
// carrying that name.
func mentionNotifications(msg *domain.Message, members []domain.Member) []domain.Notification {
	if len(msg.Mentions) == 0 {
		return nil
	}
	byName := make(map[string][]domain.User, len(members))
	for _, member := range members {
		key := strings.ToLower(member.Name)
		byName[key] = append(byName[key], member.User)
	}

	ts := time.Now().UTC()
	result := make([]domain.Notification, 0, len(msg.Mentions))
	for _, name := range msg.Mentions {
		for _, target := range byName[strings.ToLower(name)] {
			result = append(result, domain.Notification{
				Kind:          domain.NotificationMention,
				Recipient:     target.Id,
				SourceUser:    msg.Author.Name,
				TargetUser:    target.Name,
				TargetChannel: msg.ChannelId,
				MessageId:     msg.Id,
				Message:       msg.Text,
				CreatedAt:     ts,
			})
		}
	}
	return result
}
