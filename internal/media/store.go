// Package media stores uploaded product and blog images and hands back opaque keys.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrStorageWrite         = errors.New("media storage write failed")
	ErrNotFound             = errors.New("media not found")
)

// DefaultMaxBytes is the upload ceiling used when none is configured.
const DefaultMaxBytes int64 = 5 << 20

var allowedExt = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// File is an upload as received from the client. Size is the declared size and may be
// zero or negative when unknown; the stream is capped regardless.
type File struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Store persists media and returns a key unique per call.
type Store interface {
	Save(ctx context.Context, f File) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Extension returns the lower-cased extension of name without the dot, or an
// ErrUnsupportedMediaType error when it is not an allowed image type.
func Extension(name string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, ok := allowedExt[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, filepath.Ext(name))
	}
	return ext, nil
}

// ContentType returns the MIME type for a stored key.
func ContentType(key string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	if ct, ok := allowedExt[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// NewKey builds <unix-nanos>-<uuid>.<ext>.
func NewKey(ext string) string {
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixNano(), uuid.NewString(), ext)
}

// ValidKey reports whether key is a bare object name that cannot escape the store root.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return false
	}
	return true
}

// PublicRef joins the public prefix and a key into the reference stored on records.
func PublicRef(prefix, key string) string {
	return strings.TrimRight(prefix, "/") + "/" + key
}

// checkUpload runs the checks that must pass before any byte is written.
func checkUpload(f File, maxBytes int64) (string, error) {
	ext, err := Extension(f.Name)
	if err != nil {
		return "", err
	}
	if f.Reader == nil {
		return "", fmt.Errorf("%w: empty upload", ErrStorageWrite)
	}
	if f.Size > maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, f.Size, maxBytes)
	}
	return ext, nil
}

// limitedReader fails once more than max bytes have been read.
type limitedReader struct {
	r        io.Reader
	max, n   int64
	exceeded bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		l.exceeded = true
		return n, ErrPayloadTooLarge
	}
	return n, err
}
