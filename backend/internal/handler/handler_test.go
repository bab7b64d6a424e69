package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/huddle-dev/huddle/backend/internal/service"
	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/domain"
	mw "github.com/huddle-dev/huddle/shared/middleware"
)

var testUser = domain.User{Id: "u-alice", Name: "alice"}

type MockWorkspaceService struct {
	MockCreate  func(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error)
	MockList    func(ctx context.Context, user domain.User) ([]domain.Workspace, error)
	MockJoin    func(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error)
	MockInvite  func(ctx context.Context, workspaceId domain.WorkspaceId, caller, invitee domain.User) (*domain.Member, error)
	MockMembers func(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Member, error)
	MockDelete  func(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) error
}

func (m *MockWorkspaceService) Create(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, name, creator)
	}
	return &domain.Workspace{Id: "ws-1", Name: name}, nil
}

func (m *MockWorkspaceService) List(ctx context.Context, user domain.User) ([]domain.Workspace, error) {
	if m.MockList != nil {
		return m.MockList(ctx, user)
	}
	return []domain.Workspace{}, nil
}

func (m *MockWorkspaceService) Join(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error) {
	if m.MockJoin != nil {
		return m.MockJoin(ctx, workspaceId, user)
	}
	return &domain.Member{WorkspaceId: workspaceId, User: user}, nil
}

func (m *MockWorkspaceService) Invite(ctx context.Context, workspaceId domain.WorkspaceId, caller, invitee domain.User) (*domain.Member, error) {
	if m.MockInvite != nil {
		return m.MockInvite(ctx, workspaceId, caller, invitee)
	}
	return &domain.Member{WorkspaceId: workspaceId, User: invitee}, nil
}

func (m *MockWorkspaceService) Members(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Member, error) {
	if m.MockMembers != nil {
		return m.MockMembers(ctx, workspaceId, caller)
	}
	return []domain.Member{}, nil
}

func (m *MockWorkspaceService) Delete(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, workspaceId, caller)
	}
	return nil
}

type MockChannelService struct {
	MockCreate func(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User, name domain.ChannelName) (*domain.Channel, error)
	MockList   func(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Channel, error)
	MockGet    func(ctx context.Context, channelId domain.ChannelId, caller domain.User) (*domain.Channel, error)
	MockDelete func(ctx context.Context, channelId domain.ChannelId, caller domain.User) error
}

func (m *MockChannelService) Create(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User, name domain.ChannelName) (*domain.Channel, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, workspaceId, caller, name)
	}
	return &domain.Channel{Id: "ch-1", WorkspaceId: workspaceId, Name: name}, nil
}

func (m *MockChannelService) List(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Channel, error) {
	if m.MockList != nil {
		return m.MockList(ctx, workspaceId, caller)
	}
	return []domain.Channel{}, nil
}

func (m *MockChannelService) Get(ctx context.Context, channelId domain.ChannelId, caller domain.User) (*domain.Channel, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, channelId, caller)
	}
	return &domain.Channel{Id: channelId}, nil
}

func (m *MockChannelService) Delete(ctx context.Context, channelId domain.ChannelId, caller domain.User) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, channelId, caller)
	}
	return nil
}

type MockMessageService struct {
	MockPost         func(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error)
	MockListTopLevel func(ctx context.Context, channelId domain.ChannelId, caller domain.User) ([]*domain.Message, error)
	MockGet          func(ctx context.Context, id domain.MsgId, caller domain.User) (*domain.Message, error)
}

func (m *MockMessageService) Post(ctx context.Context, data domain.MessageCreationData) (*domain.Message, error) {
	if m.MockPost != nil {
		return m.MockPost(ctx, data)
	}
	return &domain.Message{Id: "msg-1", ChannelId: data.ChannelId, Author: data.Author, Text: data.Text}, nil
}

func (m *MockMessageService) ListTopLevel(ctx context.Context, channelId domain.ChannelId, caller domain.User) ([]*domain.Message, error) {
	if m.MockListTopLevel != nil {
		return m.MockListTopLevel(ctx, channelId, caller)
	}
	return []*domain.Message{}, nil
}

func (m *MockMessageService) Get(ctx context.Context, id domain.MsgId, caller domain.User) (*domain.Message, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id, caller)
	}
	return &domain.Message{Id: id}, nil
}

type MockReactionService struct {
	MockToggle func(ctx context.Context, msgId domain.MsgId, user domain.User, emoji domain.Emoji) (domain.ReactionAction, error)
	MockCounts func(ctx context.Context, msgId domain.MsgId, caller domain.User) (domain.ReactionCounts, error)
}

func (m *MockReactionService) Toggle(ctx context.Context, msgId domain.MsgId, user domain.User, emoji domain.Emoji) (domain.ReactionAction, error) {
	if m.MockToggle != nil {
		return m.MockToggle(ctx, msgId, user, emoji)
	}
	return domain.ReactionAdded, nil
}

func (m *MockReactionService) Counts(ctx context.Context, msgId domain.MsgId, caller domain.User) (domain.ReactionCounts, error) {
	if m.MockCounts != nil {
		return m.MockCounts(ctx, msgId, caller)
	}
	return domain.ReactionCounts{}, nil
}

type MockNotificationService struct {
	MockList func(ctx context.Context, user domain.User, limit int) ([]domain.Notification, error)
}

func (m *MockNotificationService) List(ctx context.Context, user domain.User, limit int) ([]domain.Notification, error) {
	if m.MockList != nil {
		return m.MockList(ctx, user, limit)
	}
	return []domain.Notification{}, nil
}

type MockAttachmentService struct {
	MockUpload func(ctx context.Context, uploader domain.User, file service.UploadFile) (*domain.Attachment, error)
}

func (m *MockAttachmentService) Upload(ctx context.Context, uploader domain.User, file service.UploadFile) (*domain.Attachment, error) {
	if m.MockUpload != nil {
		return m.MockUpload(ctx, uploader, file)
	}
	return &domain.Attachment{URL: "http://files/x", MimeType: file.MimeType}, nil
}

// fillDefaults gives every unset service a default mock.
func fillDefaults(s Services) Services {
	if s.Workspace == nil {
		s.Workspace = &MockWorkspaceService{}
	}
	if s.Channel == nil {
		s.Channel = &MockChannelService{}
	}
	if s.Message == nil {
		s.Message = &MockMessageService{}
	}
	if s.Reaction == nil {
		s.Reaction = &MockReactionService{}
	}
	if s.Notification == nil {
		s.Notification = &MockNotificationService{}
	}
	if s.Attachment == nil {
		s.Attachment = &MockAttachmentService{}
	}
	return s
}

// setupTestRouter mounts the authenticated routes with testUser in context.
func setupTestRouter(s Services) (*Handler, *chi.Mux) {
	h := New(fillDefaults(s), &MockHealthChecker{}, config.Default())
	router := chi.NewRouter()
	router.Get("/v1/public_config", h.GetPublicConfig)

	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user := testUser
				ctx := context.WithValue(r.Context(), mw.UserClaimsKey, &user)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		r.Post("/v1/workspaces", h.CreateWorkspace)
		r.Get("/v1/workspaces", h.ListWorkspaces)
		r.Delete("/v1/workspaces/{workspace}", h.DeleteWorkspace)
		r.Post("/v1/workspaces/{workspace}/join", h.JoinWorkspace)
		r.Get("/v1/workspaces/{workspace}/members", h.ListMembers)
		r.Post("/v1/workspaces/{workspace}/members", h.InviteMember)
		r.Get("/v1/workspaces/{workspace}/channels", h.ListChannels)
		r.Post("/v1/workspaces/{workspace}/channels", h.CreateChannel)
		r.Get("/v1/channels/{channel}", h.GetChannel)
		r.Delete("/v1/channels/{channel}", h.DeleteChannel)
		r.Get("/v1/channels/{channel}/messages", h.ListMessages)
		r.Post("/v1/channels/{channel}/messages", h.PostMessage)
		r.Get("/v1/messages/{message}", h.GetMessage)
		r.Get("/v1/messages/{message}/reactions", h.ReactionCounts)
		r.Post("/v1/messages/{message}/reactions", h.ToggleReaction)
		r.Get("/v1/notifications", h.ListNotifications)
		r.Post("/v1/attachments", h.UploadAttachment)
	})
	return h, router
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
