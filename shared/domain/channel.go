package domain

import "time"

type Channel struct {
	Id          ChannelId   `json:"id"`
	WorkspaceId WorkspaceId `json:"workspace_id"`
	Name        ChannelName `json:"name"`
	CreatedBy   UserId      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}

// to iterate thru layers: handler -> service -> storage
type ChannelCreationData struct {
	WorkspaceId WorkspaceId
	Name        ChannelName
	Creator     User
}
