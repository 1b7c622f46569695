package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds MinIO connection configuration.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinIOStore keeps media as objects in a single bucket.
type MinIOStore struct {
	client   *minio.Client
	bucket   string
	maxBytes int64
}

// NewMinIOStore creates a client and ensures the bucket exists.
func NewMinIOStore(ctx context.Context, cfg MinIOConfig, maxBytes int64) (*MinIOStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOStore{client: mc, bucket: cfg.Bucket, maxBytes: maxBytes}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// already exists is fine
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Save buffers the capped stream so the object size is known before PutObject.
// A failed put leaves no object behind.
func (s *MinIOStore) Save(ctx context.Context, f File) (string, error) {
	ext, err := checkUpload(f, s.maxBytes)
	if err != nil {
		return "", err
	}
	lr := &limitedReader{r: f.Reader, max: s.maxBytes}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, lr); err != nil {
		if lr.exceeded || errors.Is(err, ErrPayloadTooLarge) {
			return "", fmt.Errorf("%w: exceeds %d bytes", ErrPayloadTooLarge, s.maxBytes)
		}
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	key := NewKey(ext)
	_, err = s.client.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()),
		minio.PutObjectOptions{ContentType: ContentType(key)})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return key, nil
}

// Open returns a ReadCloser for the stored object.
func (s *MinIOStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !ValidKey(key) {
		return nil, ErrNotFound
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// stat to surface missing objects before the caller starts writing a response
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

func (s *MinIOStore) Exists(ctx context.Context, key string) (bool, error) {
	if !ValidKey(key) {
		return false, nil
	}
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, err
}

// Ping checks the bucket is reachable; used by the readiness probe.
func (s *MinIOStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q missing", s.bucket)
	}
	return nil
}
