package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 1 << 20

// ValidateAndParseMultipart caps the body at maxFileSize plus overhead and
// parses the form. A body above the cap closes the connection once the
// limit is reached, the caller only sees ErrPayloadTooLarge.
func ValidateAndParseMultipart(r *http.Request, w http.ResponseWriter, maxFileSize int64) error {
	limit := maxFileSize + multipartOverhead
	if r.ContentLength > limit {
		return fmt.Errorf("%w: limit is %s", ErrPayloadTooLarge, humanize.Bytes(uint64(maxFileSize)))
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %s", ErrPayloadTooLarge, humanize.Bytes(uint64(maxFileSize)))
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	return nil
}
