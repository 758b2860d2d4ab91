package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/quickshare/api/internal/fault"
)

// Item is a raw DynamoDB attribute map.
type Item map[string]types.AttributeValue

// dynamoAPI is the subset of the DynamoDB client used by ItemStore.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// ItemStore exposes put/get/query/scan/delete primitives over the
// schemaless key-value tables. There is no retry logic at this layer;
// callers treat any failure as terminal for that request.
type ItemStore struct {
	client dynamoAPI
}

// NewItemStore wraps a DynamoDB client.
func NewItemStore(client dynamoAPI) *ItemStore {
	return &ItemStore{client: client}
}

// Put writes a single item, replacing any existing item with the same key.
func (s *ItemStore) Put(ctx context.Context, table string, item Item) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fault.Wrap(fault.KindStoreUnavailable, "item store put failed", err)
	}
	return nil
}

// Get reads the item addressed by partition and sort key. A missing item
// is returned as a nil Item, not an error.
func (s *ItemStore) Get(ctx context.Context, table, partitionKey, sortKey string) (Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			AttrPK: &types.AttributeValueMemberS{Value: partitionKey},
			AttrSK: &types.AttributeValueMemberS{Value: sortKey},
		},
	})
	if err != nil {
		return nil, fault.Wrap(fault.KindStoreUnavailable, "item store get failed", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return Item(out.Item), nil
}

// Query reads items from a secondary index by a single key equality.
// A limit of 0 means no limit.
func (s *ItemStore) Query(ctx context.Context, table, index, keyName, keyValue string, limit int32) ([]Item, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": keyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: keyValue},
		},
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fault.Wrap(fault.KindStoreUnavailable, "item store query failed", err)
	}

	items := make([]Item, 0, len(out.Items))
	for _, raw := range out.Items {
		items = append(items, Item(raw))
	}
	return items, nil
}

// Scan reads every item in the table, following pagination to exhaustion.
func (s *ItemStore) Scan(ctx context.Context, table string) ([]Item, error) {
	var items []Item

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fault.Wrap(fault.KindStoreUnavailable, "item store scan failed", err)
		}
		for _, raw := range page.Items {
			items = append(items, Item(raw))
		}
	}

	return items, nil
}

// Delete removes the item addressed by partition and sort key. Deleting
// a missing item is not an error.
func (s *ItemStore) Delete(ctx context.Context, table, partitionKey, sortKey string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			AttrPK: &types.AttributeValueMemberS{Value: partitionKey},
			AttrSK: &types.AttributeValueMemberS{Value: sortKey},
		},
	})
	if err != nil {
		return fault.Wrap(fault.KindStoreUnavailable, "item store delete failed", err)
	}
	return nil
}
