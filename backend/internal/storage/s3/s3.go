// Package s3 stores attachment blobs in an S3 compatible bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to the endpoint and creates the bucket when missing.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s3cfg := cfg.Public.S3
	client, err := minio.New(s3cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3cfg.AccessKey, cfg.Private.S3SecretKey, ""),
		Secure: s3cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, s3cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s3cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s3cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", s3cfg.Bucket, err)
		}
		logger.Log.Info("created bucket", "component", "s3", "bucket", s3cfg.Bucket)
	}

	return &Storage{client: client, bucket: s3cfg.Bucket, publicURL: publicBase(s3cfg)}, nil
}

// publicBase is where clients fetch objects from. Without an explicit
// public_url the path style endpoint URL is used.
func publicBase(c config.S3) string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, c.Endpoint, c.Bucket)
}

func (s *Storage) Put(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error) {
	key = strings.TrimLeft(key, "/")
	info, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	logger.Log.Debug("blob stored", "component", "s3", "key", info.Key, "size", info.Size, "etag", info.ETag)
	return s.publicURL + "/" + key, nil
}
