package share

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/quickshare/api/internal/storage"
)

// record is the flat storage encoding of a share. Unlike accounts and
// images, the partition key carries the raw share id with no type
// prefix; changing that would change the wire-compatible table format.
type record struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	CreatorID   string `dynamodbav:"creatorId"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description"`
	ImageKey    string `dynamodbav:"imageKey,omitempty"`
	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"createdAt"`
}

func marshalShare(s Share) (storage.Item, error) {
	rec := record{
		PK:          s.ID,
		SK:          storage.SortKeyMeta,
		CreatorID:   s.CreatorID,
		Title:       s.Title,
		Description: s.Description,
		ImageKey:    s.ImageKey,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal share item: %w", err)
	}
	return storage.Item(item), nil
}

func unmarshalShare(item storage.Item) (Share, error) {
	var rec record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return Share{}, fmt.Errorf("unmarshal share item: %w", err)
	}

	return Share{
		ID:          rec.PK,
		CreatorID:   rec.CreatorID,
		Title:       rec.Title,
		Description: rec.Description,
		ImageKey:    rec.ImageKey,
		Status:      Status(rec.Status),
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// toResponse strips storage-only fields and derives the display URL.
func toResponse(s Share, imageBaseURL string) Response {
	imageURL := ""
	if s.ImageKey != "" {
		imageURL = imageBaseURL + "/" + s.ImageKey
	}

	return Response{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		ImageURL:    imageURL,
		CreatedAt:   s.CreatedAt,
		Status:      string(s.Status),
	}
}
