package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/utils"
)

func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.CreateChannelRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ch, err := h.channel.Create(r.Context(), chi.URLParam(r, "workspace"), user, body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, ch)
}

func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.channel.List(r.Context(), chi.URLParam(r, "workspace"), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	ch, err := h.channel.Get(r.Context(), chi.URLParam(r, "channel"), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ch)
}

func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	if err := h.channel.Delete(r.Context(), chi.URLParam(r, "channel"), user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
