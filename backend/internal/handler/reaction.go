package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/utils"
)

func (h *Handler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	var body api.ToggleReactionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	action, err := h.reaction.Toggle(r.Context(), chi.URLParam(r, "message"), user, body.Emoji)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ToggleReactionResponse{Action: action})
}

func (h *Handler) ReactionCounts(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}
	msgId := chi.URLParam(r, "message")
	counts, err := h.reaction.Counts(r.Context(), msgId, user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ReactionCountsResponse{MessageId: msgId, Counts: counts})
}
