package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/huddle-dev/huddle/shared/errors"
	"github.com/huddle-dev/huddle/shared/logger"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// WriteErrorAndStatusCode renders err as plain text. Errors without a status
// code are internal: their text is logged, never sent.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	code := errors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Log.Error("request failed", "error", err)
		http.Error(w, "Internal server error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid json body", "error", err)
		return errors.Validation("Body is invalid json")
	}
	if err := getValidator().Struct(body); err != nil {
		logger.Log.Debug("body failed validation", "error", err)
		return errors.Validation("Required fields missing")
	}
	return nil
}
