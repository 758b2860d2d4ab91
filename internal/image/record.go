package image

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/quickshare/api/internal/storage"
)

// pkPrefix qualifies image partition keys ("IMAGE#<id>").
const pkPrefix = "IMAGE#"

type record struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	OwnerID   string `dynamodbav:"ownerId"`
	Key       string `dynamodbav:"imageKey"`
	Filename  string `dynamodbav:"filename"`
	CreatedAt string `dynamodbav:"createdAt"`
}

func partitionKey(id string) string {
	return pkPrefix + id
}

func marshalImage(img Image) (storage.Item, error) {
	rec := record{
		PK:        partitionKey(img.ID),
		SK:        storage.SortKeyMeta,
		OwnerID:   img.OwnerID,
		Key:       img.Key,
		Filename:  img.Filename,
		CreatedAt: img.CreatedAt,
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal image item: %w", err)
	}
	return storage.Item(item), nil
}

func unmarshalImage(item storage.Item) (Image, error) {
	var rec record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return Image{}, fmt.Errorf("unmarshal image item: %w", err)
	}

	return Image{
		ID:        strings.TrimPrefix(rec.PK, pkPrefix),
		OwnerID:   rec.OwnerID,
		Key:       rec.Key,
		Filename:  rec.Filename,
		CreatedAt: rec.CreatedAt,
	}, nil
}
