package api

import "github.com/huddle-dev/huddle/shared/domain"

// Request DTOs shared by handlers and the dev tooling

type CreateWorkspaceRequest struct {
	Name string `json:"name" validate:"required"`
}

type InviteMemberRequest struct {
	UserId string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

type CreateChannelRequest struct {
	Name string `json:"name" validate:"required"`
}

type AttachmentRequest struct {
	URL      string `json:"url" validate:"required,url"`
	MimeType string `json:"mime_type" validate:"required"`
}

type PostMessageRequest struct {
	Text       string             `json:"text"`
	Attachment *AttachmentRequest `json:"attachment,omitempty"`
	ParentId   *string            `json:"parent_id,omitempty"`
}

// AttachmentDomain converts the optional attachment.
func (r *PostMessageRequest) AttachmentDomain() *domain.Attachment {
	if r.Attachment == nil {
		return nil
	}
	return &domain.Attachment{URL: r.Attachment.URL, MimeType: r.Attachment.MimeType}
}

type ToggleReactionRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}

// Response DTOs

type ToggleReactionResponse struct {
	Action domain.ReactionAction `json:"action"`
}

type ReactionCountsResponse struct {
	MessageId domain.MsgId          `json:"message_id"`
	Counts    domain.ReactionCounts `json:"counts"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type PublicConfigResponse struct {
	SuggestedEmojis       []domain.Emoji `json:"suggested_emojis"`
	MaxMessageLength      int            `json:"max_message_length"`
	MaxAttachmentSize     int64          `json:"max_attachment_size"`
	MaxAttachmentSizeText string         `json:"max_attachment_size_text"`
	AllowedMimeTypes      []string       `json:"allowed_mime_types"`
}
