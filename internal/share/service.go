package share

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/quickshare/api/internal/fault"
	"github.com/quickshare/api/internal/storage"
)

// pageSize is the fixed window of the paginated feed.
const pageSize = 10

// itemStore abstracts the persistence layer.
type itemStore interface {
	Put(ctx context.Context, table string, item storage.Item) error
	Get(ctx context.Context, table, partitionKey, sortKey string) (storage.Item, error)
	Scan(ctx context.Context, table string) ([]storage.Item, error)
}

// Service orchestrates create/read/list operations over shares.
type Service struct {
	store        itemStore
	table        string
	imageBaseURL string
	nowFunc      func() time.Time
	newID        func() string
}

// NewService constructs a share service.
func NewService(store itemStore, table, imageBaseURL string) *Service {
	return &Service{
		store:        store,
		table:        table,
		imageBaseURL: imageBaseURL,
		nowFunc:      time.Now,
		newID:        uuid.NewString,
	}
}

// Create persists a new share owned by creatorID and returns its
// client-facing shape. Id collisions are treated as negligible; there is
// no uniqueness precondition beyond generation.
func (s *Service) Create(ctx context.Context, input CreateInput, creatorID string) (Response, error) {
	sh := Share{
		ID:          s.newID(),
		CreatorID:   creatorID,
		Title:       input.Title,
		Description: input.Description,
		ImageKey:    input.ImageKey,
		Status:      StatusActive,
		CreatedAt:   storage.Timestamp(s.nowFunc()),
	}

	item, err := marshalShare(sh)
	if err != nil {
		return Response{}, err
	}

	if err := s.store.Put(ctx, s.table, item); err != nil {
		return Response{}, err
	}

	return toResponse(sh, s.imageBaseURL), nil
}

// GetByID fetches a single share.
func (s *Service) GetByID(ctx context.Context, id string) (Response, error) {
	item, err := s.store.Get(ctx, s.table, id, storage.SortKeyMeta)
	if err != nil {
		return Response{}, err
	}
	if item == nil {
		return Response{}, fault.New(fault.KindNotFound, "share not found")
	}

	sh, err := unmarshalShare(item)
	if err != nil {
		return Response{}, err
	}

	return toResponse(sh, s.imageBaseURL), nil
}

// ListAll returns every share in raw storage order. No ordering is
// applied; callers that rely on order must use ListPage.
func (s *Service) ListAll(ctx context.Context) ([]Response, error) {
	items, err := s.store.Scan(ctx, s.table)
	if err != nil {
		return nil, err
	}

	responses := make([]Response, 0, len(items))
	for _, item := range items {
		sh, err := unmarshalShare(item)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toResponse(sh, s.imageBaseURL))
	}
	return responses, nil
}

// ListPage scans the entire table, sorts by createdAt descending and
// slices a fixed-size window at the offset encoded by cursor.
//
// Offset-over-full-scan pagination is only a consistent partition of
// the feed while the data set stays static between page fetches;
// concurrent writes can skip or duplicate entries across pages. That is
// an accepted limitation of the feed, not something this layer hides.
func (s *Service) ListPage(ctx context.Context, cursor string) (Page, error) {
	start := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 {
			return Page{}, fault.New(fault.KindValidationFailed, "invalid cursor")
		}
		start = parsed
	}

	items, err := s.store.Scan(ctx, s.table)
	if err != nil {
		return Page{}, err
	}

	shares := make([]Share, 0, len(items))
	for _, item := range items {
		sh, err := unmarshalShare(item)
		if err != nil {
			return Page{}, err
		}
		shares = append(shares, sh)
	}

	// Lexical comparison matches chronological order because every
	// timestamp shares the same offset and precision.
	sort.Slice(shares, func(i, j int) bool {
		return shares[i].CreatedAt > shares[j].CreatedAt
	})

	if start > len(shares) {
		start = len(shares)
	}
	end := start + pageSize
	if end > len(shares) {
		end = len(shares)
	}

	page := Page{Items: make([]Response, 0, end-start)}
	for _, sh := range shares[start:end] {
		page.Items = append(page.Items, toResponse(sh, s.imageBaseURL))
	}
	if end < len(shares) {
		page.NextCursor = strconv.Itoa(end)
	}

	return page, nil
}
