package handler

import (
	"context"
	"net/http"

	"github.com/huddle-dev/huddle/backend/internal/service"
	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/domain"
	mw "github.com/huddle-dev/huddle/shared/middleware"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	workspace    service.WorkspaceService
	channel      service.ChannelService
	message      service.MessageService
	reaction     service.ReactionService
	notification service.NotificationService
	attachment   service.AttachmentService
	health       HealthChecker
	cfg          *config.Config
}

type Services struct {
	Workspace    service.WorkspaceService
	Channel      service.ChannelService
	Message      service.MessageService
	Reaction     service.ReactionService
	Notification service.NotificationService
	Attachment   service.AttachmentService
}

func New(s Services, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		workspace:    s.Workspace,
		channel:      s.Channel,
		message:      s.Message,
		reaction:     s.Reaction,
		notification: s.Notification,
		attachment:   s.Attachment,
		health:       health,
		cfg:          cfg,
	}
}

// caller returns the authenticated user or writes 401.
func caller(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return domain.User{}, false
	}
	return *user, true
}
