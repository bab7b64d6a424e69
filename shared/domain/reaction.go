package domain

import "time"

type ReactionAction string

const (
	ReactionAdded   ReactionAction = "added"
	ReactionRemoved ReactionAction = "removed"
)

// ReactionCounts maps an emoji to the number of distinct users currently
// reacting with it. Emojis without reactions are never present.
type ReactionCounts = map[Emoji]int

type Reaction struct {
	MessageId MsgId     `json:"message_id"`
	UserId    UserId    `json:"user_id"`
	Emoji     Emoji     `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// SuggestedEmojis is the palette offered by clients. It does not restrict
// which emojis can be recorded.
var SuggestedEmojis = []Emoji{"👍", "❤️", "😂", "🎉", "😮", "😢"}
