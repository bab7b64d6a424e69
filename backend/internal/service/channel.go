package service

import (
	"context"

	"github.com/huddle-dev/huddle/shared/domain"
)

type ChannelService interface {
	Create(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User, name domain.ChannelName) (*domain.Channel, error)
	List(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Channel, error)
	Get(ctx context.Context, channelId domain.ChannelId, caller domain.User) (*domain.Channel, error)
	Delete(ctx context.Context, channelId domain.ChannelId, caller domain.User) error
}

type Channel struct {
	storage    ChannelStorage
	validator  ChannelValidator
	membership Membership
}

type ChannelStorage interface {
	CreateChannel(ctx context.Context, data domain.ChannelCreationData) (*domain.Channel, error)
	GetChannel(ctx context.Context, id domain.ChannelId) (*domain.Channel, error)
	ListChannels(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Channel, error)
	DeleteChannel(ctx context.Context, id domain.ChannelId) error
}

type ChannelValidator interface {
	Name(name domain.ChannelName) (domain.ChannelName, error)
}

func NewChannel(storage ChannelStorage, validator ChannelValidator, membership Membership) ChannelService {
	return &Channel{storage, validator, membership}
}

func (c *Channel) Create(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User, name domain.ChannelName) (*domain.Channel, error) {
	if err := c.membership.RequireMember(ctx, workspaceId, caller.Id); err != nil {
		return nil, err
	}
	name, err := c.validator.Name(name)
	if err != nil {
		return nil, err
	}
	return c.storage.CreateChannel(ctx, domain.ChannelCreationData{WorkspaceId: workspaceId, Name: name, Creator: caller})
}

func (c *Channel) List(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Channel, error) {
	if err := c.membership.RequireMember(ctx, workspaceId, caller.Id); err != nil {
		return nil, err
	}
	return c.storage.ListChannels(ctx, workspaceId)
}

func (c *Channel) Get(ctx context.Context, channelId domain.ChannelId, caller domain.User) (*domain.Channel, error) {
	ch, err := c.storage.GetChannel(ctx, channelId)
	if err != nil {
		return nil, err
	}
	if err := c.membership.RequireMember(ctx, ch.WorkspaceId, caller.Id); err != nil {
		return nil, err
	}
	return ch, nil
}

// Delete removes the channel with its messages and reactions.
func (c *Channel) Delete(ctx context.Context, channelId domain.ChannelId, caller domain.User) error {
	if _, err := c.Get(ctx, channelId, caller); err != nil {
		return err
	}
	return c.storage.DeleteChannel(ctx, channelId)
}
