package service

import (
	"context"
	"time"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/middleware/metrics"
)

type ReactionService interface {
	Toggle(ctx context.Context, msgId domain.MsgId, user domain.User, emoji domain.Emoji) (domain.ReactionAction, error)
	Counts(ctx context.Context, msgId domain.MsgId, caller domain.User) (domain.ReactionCounts, error)
}

type Reaction struct {
	storage    ReactionStorage
	validator  ReactionValidator
	membership Membership
	notifier   Notifier
}

type ReactionStorage interface {
	GetMessageRef(ctx context.Context, id domain.MsgId) (*domain.MessageRef, error)
	ToggleReaction(ctx context.Context, msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) (domain.ReactionAction, error)
	ReactionCounts(ctx context.Context, msgId domain.MsgId) (domain.ReactionCounts, error)
}

type ReactionValidator interface {
	Emoji(emoji domain.Emoji) error
}

func NewReaction(storage ReactionStorage, validator ReactionValidator, membership Membership, notifier Notifier) ReactionService {
	return &Reaction{storage, validator, membership, notifier}
}

// Toggle flips the caller's emoji on the message. Repeating it an even
// number of times leaves the ledger unchanged.
func (r *Reaction) Toggle(ctx context.Context, msgId domain.MsgId, user domain.User, emoji domain.Emoji) (domain.ReactionAction, error) {
	if err := r.validator.Emoji(emoji); err != nil {
		return "", err
	}
	ref, err := r.storage.GetMessageRef(ctx, msgId)
	if err != nil {
		return "", err
	}
	if err := r.membership.RequireMember(ctx, ref.WorkspaceId, user.Id); err != nil {
		return "", err
	}

	action, err := r.storage.ToggleReaction(ctx, msgId, user.Id, emoji)
	if err != nil {
		return "", err
	}
	metrics.ReactionToggled(string(action))

	if action == domain.ReactionAdded {
		r.notifier.Publish(ctx, domain.Notification{
			Kind:          domain.NotificationReaction,
			Recipient:     ref.Author.Id,
			SourceUser:    user.Name,
			TargetUser:    ref.Author.Name,
			TargetChannel: ref.ChannelId,
			MessageId:     ref.Id,
			Emoji:         emoji,
			CreatedAt:     time.Now().UTC(),
		})
	}
	return action, nil
}

func (r *Reaction) Counts(ctx context.Context, msgId domain.MsgId, caller domain.User) (domain.ReactionCounts, error) {
	ref, err := r.storage.GetMessageRef(ctx, msgId)
	if err != nil {
		return nil, err
	}
	if err := r.membership.RequireMember(ctx, ref.WorkspaceId, caller.Id); err != nil {
		return nil, err
	}
	return r.storage.ReactionCounts(ctx, msgId)
}
