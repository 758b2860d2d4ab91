package image

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quickshare/api/internal/fault"
	"github.com/quickshare/api/internal/storage"
)

// itemStore abstracts the metadata persistence layer.
type itemStore interface {
	Put(ctx context.Context, table string, item storage.Item) error
	Get(ctx context.Context, table, partitionKey, sortKey string) (storage.Item, error)
	Query(ctx context.Context, table, index, keyName, keyValue string, limit int32) ([]storage.Item, error)
	Delete(ctx context.Context, table, partitionKey, sortKey string) error
}

// objectStore abstracts the blob storage layer.
type objectStore interface {
	PresignUpload(ctx context.Context, key string, ttl time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
}

// Service manages image upload grants and metadata rows.
type Service struct {
	store     itemStore
	objects   objectStore
	table     string
	uploadTTL time.Duration
	nowFunc   func() time.Time
	newID     func() string
}

// NewService constructs an image service.
func NewService(store itemStore, objects objectStore, table string, uploadTTL time.Duration) *Service {
	return &Service{
		store:     store,
		objects:   objects,
		table:     table,
		uploadTTL: uploadTTL,
		nowFunc:   time.Now,
		newID:     uuid.NewString,
	}
}

// UploadURL issues a presigned PUT URL for key. A non-positive ttl
// falls back to the configured default.
func (s *Service) UploadURL(ctx context.Context, key string, ttl time.Duration) (UploadTicket, error) {
	if strings.TrimSpace(key) == "" {
		return UploadTicket{}, fault.New(fault.KindValidationFailed, "object key required")
	}
	if ttl <= 0 {
		ttl = s.uploadTTL
	}

	url, err := s.objects.PresignUpload(ctx, key, ttl)
	if err != nil {
		return UploadTicket{}, err
	}

	return UploadTicket{
		URL:       url,
		Key:       key,
		ExpiresAt: s.nowFunc().Add(ttl).Unix(),
	}, nil
}

// Create records metadata for an object the client has finished
// uploading.
func (s *Service) Create(ctx context.Context, input CreateInput, ownerID string) (Image, error) {
	if strings.TrimSpace(input.Key) == "" {
		return Image{}, fault.New(fault.KindValidationFailed, "object key required")
	}

	img := Image{
		ID:        s.newID(),
		OwnerID:   ownerID,
		Key:       input.Key,
		Filename:  input.Filename,
		CreatedAt: storage.Timestamp(s.nowFunc()),
	}

	item, err := marshalImage(img)
	if err != nil {
		return Image{}, err
	}

	if err := s.store.Put(ctx, s.table, item); err != nil {
		return Image{}, err
	}

	return img, nil
}

// ListByOwner returns the metadata rows owned by ownerID.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Image, error) {
	items, err := s.store.Query(ctx, s.table, storage.UserIndex, storage.AttrOwnerID, ownerID, 0)
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(items))
	for _, item := range items {
		img, err := unmarshalImage(item)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// GetByID fetches a single metadata row.
func (s *Service) GetByID(ctx context.Context, id string) (Image, error) {
	item, err := s.store.Get(ctx, s.table, partitionKey(id), storage.SortKeyMeta)
	if err != nil {
		return Image{}, err
	}
	if item == nil {
		return Image{}, fault.New(fault.KindNotFound, "image not found")
	}

	return unmarshalImage(item)
}

// Delete removes the stored object and then the metadata row. The two
// calls are sequential and non-transactional: a fault after the blob
// delete leaves an orphaned metadata row with a dangling key. That gap
// is accepted; there is no compensation logic.
func (s *Service) Delete(ctx context.Context, id string) error {
	img, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.objects.Remove(ctx, img.Key); err != nil {
		return err
	}

	return s.store.Delete(ctx, s.table, partitionKey(id), storage.SortKeyMeta)
}
