package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/utils"
)

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.PostMessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.message.Post(r.Context(), domain.MessageCreationData{
		ChannelId:  chi.URLParam(r, "channel"),
		Author:     user,
		Text:       body.Text,
		Attachment: body.AttachmentDomain(),
		ParentId:   body.ParentId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, msg)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	list, err := h.message.ListTopLevel(r.Context(), chi.URLParam(r, "channel"), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	msg, err := h.message.Get(r.Context(), chi.URLParam(r, "message"), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, msg)
}
