package account

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/quickshare/api/internal/storage"
)

// pkPrefix qualifies account partition keys ("USER#<id>").
const pkPrefix = "USER#"

type record struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	Role      string `dynamodbav:"role"`
	CreatedAt string `dynamodbav:"createdAt"`
	Password  string `dynamodbav:"password,omitempty"`
}

func partitionKey(id string) string {
	return pkPrefix + id
}

func marshalAccount(a Account) (storage.Item, error) {
	rec := record{
		PK:        partitionKey(a.ID),
		SK:        storage.SortKeyMeta,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
		Password:  a.HashedPassword,
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal account item: %w", err)
	}
	return storage.Item(item), nil
}

func unmarshalAccount(item storage.Item) (Account, error) {
	var rec record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return Account{}, fmt.Errorf("unmarshal account item: %w", err)
	}

	return Account{
		ID:             strings.TrimPrefix(rec.PK, pkPrefix),
		Name:           rec.Name,
		Email:          rec.Email,
		Role:           Role(rec.Role),
		CreatedAt:      rec.CreatedAt,
		HashedPassword: rec.Password,
	}, nil
}

// toResponse strips the credential hash for public payloads.
func toResponse(a Account) Response {
	return Response{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}
