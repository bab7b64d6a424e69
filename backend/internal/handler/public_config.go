package handler

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/huddle-dev/huddle/shared/api"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/utils"
)

// GetPublicConfig exposes the limits clients need before sending anything.
func (h *Handler) GetPublicConfig(w http.ResponseWriter, r *http.Request) {
	maxSize := h.cfg.MaxAttachmentBytes()
	utils.WriteJSON(w, http.StatusOK, api.PublicConfigResponse{
		SuggestedEmojis:       domain.SuggestedEmojis,
		MaxMessageLength:      h.cfg.Public.MaxMessageLength,
		MaxAttachmentSize:     maxSize,
		MaxAttachmentSizeText: humanize.Bytes(uint64(maxSize)),
		AllowedMimeTypes:      h.cfg.Public.AllowedMimeTypes,
	})
}
