package handler

import (
	"errors"
	"net/http"

	"github.com/huddle-dev/huddle/backend/internal/service"
	"github.com/huddle-dev/huddle/shared/api"
	apperrors "github.com/huddle-dev/huddle/shared/errors"
	"github.com/huddle-dev/huddle/shared/utils"
	"github.com/huddle-dev/huddle/shared/validation"
)

const uploadField = "file"

// UploadAttachment stores one multipart file and returns the attachment
// reference to send with a message.
func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}

	maxSize := h.cfg.MaxAttachmentBytes()
	if err := validation.ValidateAndParseMultipart(r, w, maxSize); err != nil {
		writeUploadError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	_, fh, err := r.FormFile(uploadField)
	if err != nil {
		writeUploadError(w, validation.ErrMissingFile)
		return
	}
	file, err := validation.ValidateUpload(fh, maxSize, validation.BuildAllowedMimeMap(h.cfg.Public.AllowedMimeTypes))
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer file.Data.Close()

	att, err := h.attachment.Upload(r.Context(), user, service.UploadFile{
		Data:     file.Data,
		Size:     file.Size,
		MimeType: file.MimeType,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.UploadResponse{URL: att.URL, MimeType: att.MimeType, Size: file.Size})
}

// writeUploadError maps validation sentinels to status codes. Anything
// else is reported as an opaque 500.
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrPayloadTooLarge):
		err = apperrors.TooLarge(err.Error())
	case errors.Is(err, validation.ErrInvalidMimeType), errors.Is(err, validation.ErrMissingFile), errors.Is(err, validation.ErrInvalidForm):
		err = apperrors.Validation(err.Error())
	}
	utils.WriteErrorAndStatusCode(w, err)
}
