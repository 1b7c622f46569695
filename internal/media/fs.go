package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSStore writes media into a local directory.
type FSStore struct {
	dir      string
	maxBytes int64
}

// NewFSStore creates dir if missing.
func NewFSStore(dir string, maxBytes int64) (*FSStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &FSStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *FSStore) Dir() string { return s.dir }

// Save streams f into a temp file next to its final location and renames it into place.
// Nothing is left behind on failure.
func (s *FSStore) Save(ctx context.Context, f File) (string, error) {
	ext, err := checkUpload(f, s.maxBytes)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	tmpName := tmp.Name()
	fail := func(e error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", e
	}

	lr := &limitedReader{r: f.Reader, max: s.maxBytes}
	if _, err := io.Copy(tmp, lr); err != nil {
		if lr.exceeded || errors.Is(err, ErrPayloadTooLarge) {
			return fail(fmt.Errorf("%w: exceeds %d bytes", ErrPayloadTooLarge, s.maxBytes))
		}
		return fail(fmt.Errorf("%w: %v", ErrStorageWrite, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrStorageWrite, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	key := NewKey(ext)
	if err := os.Rename(tmpName, filepath.Join(s.dir, key)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return key, nil
}

func (s *FSStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !ValidKey(key) {
		return nil, ErrNotFound
	}
	fh, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fh, nil
}

func (s *FSStore) Exists(_ context.Context, key string) (bool, error) {
	if !ValidKey(key) {
		return false, nil
	}
	_, err := os.Stat(filepath.Join(s.dir, key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
