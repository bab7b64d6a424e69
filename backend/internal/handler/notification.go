package handler

import (
	"net/http"
	"strconv"

	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/utils"
)

// ListNotifications accepts an optional ?limit=. Out of range values are
// clamped by the service, garbage is rejected.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}

	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		var err error
		if limit, err = strconv.Atoi(q); err != nil {
			http.Error(w, "invalid limit: must be an integer", http.StatusBadRequest)
			return
		}
	}

	list, err := h.notification.List(r.Context(), user, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.NotificationsResponse{Notifications: list})
}
