package account

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/quickshare/api/internal/storage"
)

func TestMarshalAccountWireFormat(t *testing.T) {
	acct := Account{
		ID:             "id-1",
		Name:           "Ann",
		Email:          "ann@example.com",
		Role:           RoleEditor,
		CreatedAt:      "2024-05-01T12:00:00.000Z",
		HashedPassword: "$2a$10$hash",
	}

	item, err := marshalAccount(acct)
	if err != nil {
		t.Fatalf("marshalAccount returned error: %v", err)
	}

	pk, ok := item[storage.AttrPK].(*types.AttributeValueMemberS)
	if !ok || pk.Value != "USER#id-1" {
		t.Fatalf("expected prefixed partition key, got %v", item[storage.AttrPK])
	}
	sk, ok := item[storage.AttrSK].(*types.AttributeValueMemberS)
	if !ok || sk.Value != storage.SortKeyMeta {
		t.Fatalf("expected META sort key, got %v", item[storage.AttrSK])
	}
	if _, ok := item[storage.AttrPassword]; !ok {
		t.Fatalf("expected password attribute for a password account")
	}
}

func TestUnmarshalAccountSplitsPrefixedKey(t *testing.T) {
	original := Account{
		ID:        "google-42",
		Name:      "Ann",
		Email:     "ann@example.com",
		Role:      RoleViewer,
		CreatedAt: "2024-05-01T12:00:00.000Z",
	}

	item, err := marshalAccount(original)
	if err != nil {
		t.Fatalf("marshalAccount returned error: %v", err)
	}

	got, err := unmarshalAccount(item)
	if err != nil {
		t.Fatalf("unmarshalAccount returned error: %v", err)
	}
	if got != original {
		t.Fatalf("round trip mismatch: %+v != %+v", got, original)
	}
}

func TestResponseNeverCarriesHash(t *testing.T) {
	resp := toResponse(Account{
		ID:             "id-1",
		Name:           "Ann",
		Email:          "ann@example.com",
		Role:           RoleEditor,
		CreatedAt:      "2024-05-01T12:00:00.000Z",
		HashedPassword: "$2a$10$hash",
	})

	if resp != (Response{
		ID:        "id-1",
		Name:      "Ann",
		Email:     "ann@example.com",
		Role:      "editor",
		CreatedAt: "2024-05-01T12:00:00.000Z",
	}) {
		t.Fatalf("unexpected public response: %+v", resp)
	}
}
