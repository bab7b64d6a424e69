package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/domain"
)

func (c *APIClient) PostMessage(channelId domain.ChannelId, body api.PostMessageRequest) (*domain.Message, error) {
	var msg domain.Message
	if err := c.doJSON(http.MethodPost, "/v1/channels/"+url.PathEscape(channelId)+"/messages", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *APIClient) ListMessages(channelId domain.ChannelId) ([]*domain.Message, error) {
	var list []*domain.Message
	if err := c.doJSON(http.MethodGet, "/v1/channels/"+url.PathEscape(channelId)+"/messages", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *APIClient) GetMessage(id domain.MsgId) (*domain.Message, error) {
	var msg domain.Message
	if err := c.doJSON(http.MethodGet, "/v1/messages/"+url.PathEscape(id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *APIClient) ToggleReaction(id domain.MsgId, emoji domain.Emoji) (domain.ReactionAction, error) {
	var resp api.ToggleReactionResponse
	err := c.doJSON(http.MethodPost, "/v1/messages/"+url.PathEscape(id)+"/reactions", api.ToggleReactionRequest{Emoji: emoji}, &resp)
	return resp.Action, err
}

func (c *APIClient) ReactionCounts(id domain.MsgId) (domain.ReactionCounts, error) {
	var resp api.ReactionCountsResponse
	if err := c.doJSON(http.MethodGet, "/v1/messages/"+url.PathEscape(id)+"/reactions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Counts, nil
}

// Notifications lists the caller's feed. A non-positive limit uses the
// server default.
func (c *APIClient) Notifications(limit int) ([]domain.Notification, error) {
	path := "/v1/notifications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp api.NotificationsResponse
	if err := c.doJSON(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

func (c *APIClient) PublicConfig() (*api.PublicConfigResponse, error) {
	var resp api.PublicConfigResponse
	if err := c.doJSON(http.MethodGet, "/v1/public_config", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload sends data as the multipart "file" field.
func (c *APIClient) Upload(filename string, data io.Reader) (*api.UploadResponse, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("cannot build upload: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("cannot build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("cannot build upload: %w", err)
	}

	var resp api.UploadResponse
	if err := c.do(http.MethodPost, "/v1/attachments", mw.FormDataContentType(), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
