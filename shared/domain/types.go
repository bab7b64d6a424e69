package domain

type (
	UserId   = string
	UserName = string

	WorkspaceId   = string
	WorkspaceName = string

	ChannelId   = string
	ChannelName = string

	MsgId   = string
	MsgText = string

	Emoji = string
)
