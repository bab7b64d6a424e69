package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
	"github.com/huddle-dev/huddle/shared/logger"
	"github.com/patrickmn/go-cache"
)

// to mock service in tests
type WorkspaceService interface {
	Create(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error)
	List(ctx context.Context, user domain.User) ([]domain.Workspace, error)
	Join(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error)
	Invite(ctx context.Context, workspaceId domain.WorkspaceId, caller, invitee domain.User) (*domain.Member, error)
	Members(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Member, error)
	Delete(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) error
}

// Membership gates every operation scoped to a workspace.
type Membership interface {
	RequireMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) error
}

type WorkspaceStorage interface {
	CreateWorkspace(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error)
	GetWorkspace(ctx context.Context, id domain.WorkspaceId) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context, userId domain.UserId) ([]domain.Workspace, error)
	AddMember(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error)
	ListMembers(ctx context.Context, workspaceId domain.WorkspaceId) ([]domain.Member, error)
	IsMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) (bool, error)
	DeleteWorkspace(ctx context.Context, id domain.WorkspaceId) error
}

type WorkspaceValidator interface {
	Name(name domain.WorkspaceName) (domain.WorkspaceName, error)
	Member(user domain.User) error
}

type Workspace struct {
	storage   WorkspaceStorage
	validator WorkspaceValidator
	members   *cache.Cache

	// generations is bumped by forget. A membership answer read before a
	// bump is not cached after it.
	mu          sync.Mutex
	generations map[domain.WorkspaceId]uint64
}

var errNotMember = errors.Forbidden("Not a member of this workspace")

// NewWorkspace caches positive membership answers for cacheTTL. A
// non-positive TTL disables the cache.
func NewWorkspace(storage WorkspaceStorage, validator WorkspaceValidator, cacheTTL time.Duration) *Workspace {
	w := &Workspace{storage: storage, validator: validator, generations: make(map[domain.WorkspaceId]uint64)}
	if cacheTTL > 0 {
		w.members = cache.New(cacheTTL, 2*cacheTTL)
	}
	return w
}

func memberKey(workspaceId domain.WorkspaceId, userId domain.UserId) string {
	return workspaceId + "\x00" + userId
}

func (w *Workspace) generation(workspaceId domain.WorkspaceId) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generations[workspaceId]
}

// remember caches a positive answer observed at generation gen. It is a
// no-op if the workspace was forgotten since.
func (w *Workspace) remember(workspaceId domain.WorkspaceId, userId domain.UserId, gen uint64) {
	if w.members == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generations[workspaceId] != gen {
		return
	}
	w.members.SetDefault(memberKey(workspaceId, userId), struct{}{})
}

// forget drops every cached member of the workspace.
func (w *Workspace) forget(workspaceId domain.WorkspaceId) {
	if w.members == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generations[workspaceId]++
	prefix := workspaceId + "\x00"
	for k := range w.members.Items() {
		if strings.HasPrefix(k, prefix) {
			w.members.Delete(k)
		}
	}
}

// RequireMember returns NotFound for an unknown workspace and Forbidden
// when the user is not a member.
func (w *Workspace) RequireMember(ctx context.Context, workspaceId domain.WorkspaceId, userId domain.UserId) error {
	if w.members != nil {
		if _, ok := w.members.Get(memberKey(workspaceId, userId)); ok {
			return nil
		}
	}

	gen := w.generation(workspaceId)
	ok, err := w.storage.IsMember(ctx, workspaceId, userId)
	if err != nil {
		return err
	}
	if ok {
		w.remember(workspaceId, userId, gen)
		return nil
	}

	if _, err := w.storage.GetWorkspace(ctx, workspaceId); err != nil {
		return err
	}
	return errNotMember
}

func (w *Workspace) Create(ctx context.Context, name domain.WorkspaceName, creator domain.User) (*domain.Workspace, error) {
	name, err := w.validator.Name(name)
	if err != nil {
		return nil, err
	}
	ws, err := w.storage.CreateWorkspace(ctx, name, creator)
	if err != nil {
		return nil, err
	}
	w.remember(ws.Id, creator.Id, w.generation(ws.Id))
	logger.Log.Info("workspace created", "component", "workspace", "workspace_id", ws.Id, "user_id", creator.Id)
	return ws, nil
}

func (w *Workspace) List(ctx context.Context, user domain.User) ([]domain.Workspace, error) {
	return w.storage.ListWorkspaces(ctx, user.Id)
}

// Join adds the caller. Anyone holding the workspace id may join.
func (w *Workspace) Join(ctx context.Context, workspaceId domain.WorkspaceId, user domain.User) (*domain.Member, error) {
	gen := w.generation(workspaceId)
	m, err := w.storage.AddMember(ctx, workspaceId, user)
	if err != nil {
		return nil, err
	}
	w.remember(workspaceId, user.Id, gen)
	return m, nil
}

func (w *Workspace) Invite(ctx context.Context, workspaceId domain.WorkspaceId, caller, invitee domain.User) (*domain.Member, error) {
	if err := w.validator.Member(invitee); err != nil {
		return nil, err
	}
	if err := w.RequireMember(ctx, workspaceId, caller.Id); err != nil {
		return nil, err
	}
	gen := w.generation(workspaceId)
	m, err := w.storage.AddMember(ctx, workspaceId, invitee)
	if err != nil {
		return nil, err
	}
	w.remember(workspaceId, invitee.Id, gen)
	return m, nil
}

func (w *Workspace) Members(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) ([]domain.Member, error) {
	if err := w.RequireMember(ctx, workspaceId, caller.Id); err != nil {
		return nil, err
	}
	return w.storage.ListMembers(ctx, workspaceId)
}

func (w *Workspace) Delete(ctx context.Context, workspaceId domain.WorkspaceId, caller domain.User) error {
	if err := w.RequireMember(ctx, workspaceId, caller.Id); err != nil {
		return err
	}
	if err := w.storage.DeleteWorkspace(ctx, workspaceId); err != nil {
		return err
	}
	w.forget(workspaceId)
	logger.Log.Info("workspace deleted", "component", "workspace", "workspace_id", workspaceId, "user_id", caller.Id)
	return nil
}
