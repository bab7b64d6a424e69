// Package fs stores attachment blobs on the local filesystem and serves
// them back under the public files URL.
package fs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/huddle-dev/huddle/shared/logger"
)

type Storage struct {
	rootPath  string
	publicURL string
}

func New(rootPath, publicURL string) (*Storage, error) {
	// Use filepath.Clean to prevent path traversal issues like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// resolve maps a slash separated key to a path under rootPath.
func (s *Storage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.rootPath, filepath.FromSlash(clean)), nil
}

// Put writes the blob under key and returns the URL it is served from.
// The content type is implied by the key's extension when served back.
func (s *Storage) Put(ctx context.Context, key, contentType string, data io.Reader, size int64) (string, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	logger.Log.Debug("blob stored", "component", "fs", "key", key, "size", size, "content_type", contentType)
	return s.publicURL + "/" + strings.TrimLeft(path.Clean("/"+key), "/"), nil
}

// Read opens a blob for reading.
func (s *Storage) Read(key string) (*os.File, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("attachment not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Handler serves blobs by key. Mount it with the files prefix stripped.
// Directories are never listed.
func (s *Storage) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, err := s.Read(r.URL.Path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	})
}
