package domain

import "time"

type NotificationKind string

const (
	NotificationMention  NotificationKind = "mention"
	NotificationReaction NotificationKind = "reaction"
)

// Notification is a derived event kept in a recipient's feed.
// Mention events carry Message, reaction events carry Emoji.
type Notification struct {
	Kind          NotificationKind `json:"type"`
	Recipient     UserId           `json:"-"`
	SourceUser    UserName         `json:"source_user"`
	TargetUser    UserName         `json:"target_user,omitempty"`
	TargetChannel ChannelId        `json:"target_channel,omitempty"`
	MessageId     MsgId            `json:"message_id"`
	Message       MsgText          `json:"message,omitempty"`
	Emoji         Emoji            `json:"emoji,omitempty"`
	CreatedAt     time.Time        `json:"timestamp"`
}
