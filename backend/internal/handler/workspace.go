package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/utils"
)

func (h *Handler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.CreateWorkspaceRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ws, err := h.workspace.Create(r.Context(), body.Name, user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ws)
}

func (h *Handler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.workspace.List(r.Context(), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.workspace.Delete(r.Context(), chi.URLParam(r, "workspace"), user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) JoinWorkspace(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	member, err := h.workspace.Join(r.Context(), chi.URLParam(r, "workspace"), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	members, err := h.workspace.Members(r.Context(), chi.URLParam(r, "workspace"), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) InviteMember(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.InviteMemberRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	invitee := domain.User{Id: body.UserId, Name: body.Name}
	member, err := h.workspace.Invite(r.Context(), chi.URLParam(r, "workspace"), user, invitee)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, member)
}
