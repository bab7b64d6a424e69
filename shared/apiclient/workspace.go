package apiclient

import (
	"net/http"
	"net/url"

	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/domain"
)

func workspacePath(id domain.WorkspaceId, suffix string) string {
	return "/v1/workspaces/" + url.PathEscape(id) + suffix
}

func (c *APIClient) CreateWorkspace(name string) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := c.doJSON(http.MethodPost, "/v1/workspaces", api.CreateWorkspaceRequest{Name: name}, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (c *APIClient) ListWorkspaces() ([]domain.Workspace, error) {
	var list []domain.Workspace
	if err := c.doJSON(http.MethodGet, "/v1/workspaces", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *APIClient) DeleteWorkspace(id domain.WorkspaceId) error {
	return c.doJSON(http.MethodDelete, workspacePath(id, ""), nil, nil)
}

func (c *APIClient) JoinWorkspace(id domain.WorkspaceId) (*domain.Member, error) {
	var m domain.Member
	if err := c.doJSON(http.MethodPost, workspacePath(id, "/join"), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *APIClient) InviteMember(id domain.WorkspaceId, invitee domain.User) (*domain.Member, error) {
	var m domain.Member
	body := api.InviteMemberRequest{UserId: invitee.Id, Name: invitee.Name}
	if err := c.doJSON(http.MethodPost, workspacePath(id, "/members"), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *APIClient) ListMembers(id domain.WorkspaceId) ([]domain.Member, error) {
	var list []domain.Member
	if err := c.doJSON(http.MethodGet, workspacePath(id, "/members"), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *APIClient) CreateChannel(workspaceId domain.WorkspaceId, name string) (*domain.Channel, error) {
	var ch domain.Channel
	if err := c.doJSON(http.MethodPost, workspacePath(workspaceId, "/channels"), api.CreateChannelRequest{Name: name}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *APIClient) ListChannels(workspaceId domain.WorkspaceId) ([]domain.Channel, error) {
	var list []domain.Channel
	if err := c.doJSON(http.MethodGet, workspacePath(workspaceId, "/channels"), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *APIClient) DeleteChannel(id domain.ChannelId) error {
	return c.doJSON(http.MethodDelete, "/v1/channels/"+url.PathEscape(id), nil, nil)
}
