package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// UploadedFile is a single validated upload, rewound to its first byte.
type UploadedFile struct {
	Filename string
	Size     int64
	MimeType string
	Data     multipart.File
}

// BuildAllowedMimeMap turns the configured allow list into a lookup set.
func BuildAllowedMimeMap(mimes []string) map[string]bool {
	allowed := make(map[string]bool, len(mimes))
	for _, m := range mimes {
		allowed[m] = true
	}
	return allowed
}

// DetectMimeType sniffs the content. The client supplied Content-Type is
// ignored. Parameters such as charset are dropped.
func DetectMimeType(r io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect mime type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	base, _, _ := strings.Cut(mt.String(), ";")
	return base, nil
}

// ValidateUpload opens the file part, checks its size against maxSize and
// its sniffed type against allowed. The caller closes Data.
func ValidateUpload(fh *multipart.FileHeader, maxSize int64, allowed map[string]bool) (*UploadedFile, error) {
	if fh == nil {
		return nil, ErrMissingFile
	}
	if fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrPayloadTooLarge, humanize.Bytes(uint64(fh.Size)), humanize.Bytes(uint64(maxSize)))
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	mimeType, err := DetectMimeType(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	if !allowed[mimeType] {
		file.Close()
		return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fh.Filename)
	}

	return &UploadedFile{
		Filename: fh.Filename,
		Size:     fh.Size,
		MimeType: mimeType,
		Data:     file,
	}, nil
}
