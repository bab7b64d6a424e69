package domain

import (
	"fmt"
	"time"
)

// Attachment references an uploaded blob. Storage layout stays behind the URL.
type Attachment struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

type Message struct {
	Id         MsgId          `json:"id"`
	ChannelId  ChannelId      `json:"channel_id"`
	Author     User           `json:"author"`
	Text       MsgText        `json:"text"`
	CreatedAt  time.Time      `json:"created_at"`
	ParentId   *MsgId         `json:"parent_id,omitempty"`
	Attachment *Attachment    `json:"attachment,omitempty"`
	Mentions   []UserName     `json:"mentions"`
	Reactions  ReactionCounts `json:"reactions"`
	Replies    []*Message     `json:"replies"`
}

// IsReply reports whether the message belongs to a thread.
func (m *Message) IsReply() bool {
	return m.ParentId != nil
}

// MessageRef locates a message without loading its thread or reactions.
type MessageRef struct {
	Id          MsgId
	ChannelId   ChannelId
	WorkspaceId WorkspaceId
	Author      User
	ParentId    *MsgId
}

// to iterate thru layers: handler -> service -> storage
type MessageCreationData struct {
	ChannelId  ChannelId
	Author     User
	Text       MsgText
	Attachment *Attachment
	ParentId   *MsgId
}

// for debug
func (m *Message) String() string {
	parent := "-"
	if m.ParentId != nil {
		parent = *m.ParentId
	}
	return fmt.Sprintf("[id:%s, channel:%s, author:%s, parent:%s, created:%s, text:%q, replies:%d]",
		m.Id, m.ChannelId, m.Author.Name, parent, m.CreatedAt.Format(time.StampMilli), m.Text, len(m.Replies))
}
