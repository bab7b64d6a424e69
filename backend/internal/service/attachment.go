package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/errors"
	"github.com/huddle-dev/huddle/shared/logger"
)

type AttachmentService interface {
	Upload(ctx context.Context, uploader domain.User, file UploadFile) (*domain.Attachment, error)
}

// UploadFile is an already validated upload.
type UploadFile struct {
	Data     io.Reader
	Size     int64
	MimeType string
}

// BlobStore keeps uploaded bytes and says where clients can fetch them.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error)
}

type Attachment struct {
	blobs BlobStore
	now   func() time.Time
}

func NewAttachment(blobs BlobStore) AttachmentService {
	return &Attachment{blobs: blobs, now: time.Now}
}

// blobKey spreads uploads over month directories. The extension follows
// the detected type, never the client's filename.
func (a *Attachment) blobKey(mimeType string) string {
	ext := ""
	if mt := mimetype.Lookup(mimeType); mt != nil {
		ext = mt.Extension()
	}
	return fmt.Sprintf("%s/%s%s", a.now().UTC().Format("2006/01"), uuid.NewString(), ext)
}

func (a *Attachment) Upload(ctx context.Context, uploader domain.User, file UploadFile) (*domain.Attachment, error) {
	key := a.blobKey(file.MimeType)
	url, err := a.blobs.Put(ctx, key, file.MimeType, file.Data, file.Size)
	if err != nil {
		return nil, errors.Store(err)
	}
	logger.Log.Info("attachment uploaded", "component", "attachment", "user_id", uploader.Id, "key", key, "size", file.Size)
	return &domain.Attachment{URL: url, MimeType: file.MimeType}, nil
}
