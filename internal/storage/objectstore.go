package storage

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/quickshare/api/internal/fault"
)

// ObjectStore issues time-limited upload URLs and deletes objects by key.
// A presigned URL is a capability token: possession grants write access
// to exactly one object key until expiry; the server never proxies the
// upload bytes.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore wraps a MinIO client bound to a single bucket.
func NewObjectStore(client *minio.Client, bucket string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket}
}

// PresignUpload returns a URL the client can PUT the object bytes to
// within ttl.
func (s *ObjectStore) PresignUpload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, ttl)
	if err != nil {
		return "", fault.Wrap(fault.KindStoreUnavailable, "presign upload failed", err)
	}
	return u.String(), nil
}

// Remove deletes the object stored under key.
func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fault.Wrap(fault.KindStoreUnavailable, "remove object failed", err)
	}
	return nil
}
