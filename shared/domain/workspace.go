package domain

import "time"

type Workspace struct {
	Id        WorkspaceId   `json:"id"`
	Name      WorkspaceName `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
}

type Member struct {
	WorkspaceId WorkspaceId `json:"workspace_id"`
	User
	JoinedAt time.Time `json:"joined_at"`
}

// MemberNames lists the display names of members, in the given order.
func MemberNames(members []Member) []UserName {
	names := make([]UserName, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}
