package validation

import "errors"

// ErrPayloadTooLarge is returned when the request body exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when an uploaded file has a disallowed MIME type
var ErrInvalidMimeType = errors.New("invalid MIME type")

// ErrMissingFile is returned when the multipart form has no file part
var ErrMissingFile = errors.New("missing file")

// ErrInvalidForm is returned when the body is not a readable multipart form
var ErrInvalidForm = errors.New("invalid multipart form")
