package account

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickshare/api/internal/fault"
	"github.com/quickshare/api/internal/storage"
)

func TestCreateHashesPasswordAndStripsIt(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "users", bcrypt.MinCost)

	resp, err := service.Create(context.Background(), CreateInput{
		Name:     "Ann",
		Email:    "Ann@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if resp.ID == "" {
		t.Fatalf("expected generated id")
	}
	if resp.Email != "ann@example.com" {
		t.Fatalf("expected lowercased email, got %q", resp.Email)
	}
	if resp.Role != "editor" {
		t.Fatalf("expected default editor role, got %q", resp.Role)
	}

	if len(store.items) != 1 {
		t.Fatalf("expected one stored item, got %d", len(store.items))
	}
	stored := store.items[0]
	hash := stringAttr(stored, storage.AttrPassword)
	if hash == "" || hash == "correct horse" {
		t.Fatalf("expected stored credential to be hashed, got %q", hash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newFakeStore(), "users", bcrypt.MinCost)

	_, err := service.Create(context.Background(), CreateInput{Name: "x", Password: "pw"})
	if fault.KindOf(err) != fault.KindValidationFailed {
		t.Fatalf("expected validation failure for missing email, got %v", err)
	}

	_, err = service.Create(context.Background(), CreateInput{Name: "x", Email: "x@example.com"})
	if fault.KindOf(err) != fault.KindValidationFailed {
		t.Fatalf("expected validation failure for missing password, got %v", err)
	}
}

func TestGetByEmailReturnsCredential(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "users", bcrypt.MinCost)

	if _, err := service.Create(context.Background(), CreateInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	acct, err := service.GetByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if acct.HashedPassword == "" {
		t.Fatalf("expected credential hash on email lookup")
	}
	if acct.Email != "ann@example.com" {
		t.Fatalf("unexpected email %q", acct.Email)
	}
}

func TestGetByEmailMissing(t *testing.T) {
	service := NewService(newFakeStore(), "users", bcrypt.MinCost)

	_, err := service.GetByEmail(context.Background(), "ghost@example.com")
	if !fault.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpsertIsIdempotentAndOverwrites(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "users", bcrypt.MinCost)

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service.nowFunc = func() time.Time {
		now := clock
		clock = clock.Add(time.Hour)
		return now
	}

	first, err := service.Upsert(context.Background(), UpsertInput{
		ID:    "google-123",
		Name:  "Old Name",
		Email: "ann@example.com",
		Role:  RoleViewer,
	})
	if err != nil {
		t.Fatalf("first Upsert returned error: %v", err)
	}

	second, err := service.Upsert(context.Background(), UpsertInput{
		ID:    "google-123",
		Name:  "New Name",
		Email: "ann@example.com",
		Role:  RoleViewer,
	})
	if err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("expected exactly one stored record, got %d", len(store.items))
	}

	got, err := service.GetByID(context.Background(), "google-123")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Name != "New Name" {
		t.Fatalf("expected latest name, got %q", got.Name)
	}

	// createdAt is re-stamped on every upsert; it records the most
	// recent sign-in, not the first.
	if second.CreatedAt == first.CreatedAt {
		t.Fatalf("expected createdAt to be re-stamped")
	}
	if got.CreatedAt != second.CreatedAt {
		t.Fatalf("stored createdAt %q does not match latest upsert %q", got.CreatedAt, second.CreatedAt)
	}
}

func TestUpsertErasesStoredCredential(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, "users", bcrypt.MinCost)

	resp, err := service.Create(context.Background(), CreateInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// A provider upsert against the same id replaces the full record,
	// password attribute included.
	if _, err := service.Upsert(context.Background(), UpsertInput{
		ID:    resp.ID,
		Name:  "Ann",
		Email: "ann@example.com",
		Role:  RoleViewer,
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	stored := store.items[0]
	if _, ok := stored[storage.AttrPassword]; ok {
		t.Fatalf("expected password attribute to be erased by full overwrite")
	}
}

func TestGetByIDMissing(t *testing.T) {
	service := NewService(newFakeStore(), "users", bcrypt.MinCost)

	_, err := service.GetByID(context.Background(), "nope")
	if !fault.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// --- helpers & fakes ---

type fakeStore struct {
	items []storage.Item
	keys  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: make(map[string]int)}
}

func itemKey(pk, sk string) string {
	return pk + "|" + sk
}

func (f *fakeStore) Put(ctx context.Context, table string, item storage.Item) error {
	pk := stringAttr(item, storage.AttrPK)
	sk := stringAttr(item, storage.AttrSK)
	if idx, ok := f.keys[itemKey(pk, sk)]; ok {
		f.items[idx] = item
		return nil
	}
	f.keys[itemKey(pk, sk)] = len(f.items)
	f.items = append(f.items, item)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, table, partitionKey, sortKey string) (storage.Item, error) {
	idx, ok := f.keys[itemKey(partitionKey, sortKey)]
	if !ok {
		return nil, nil
	}
	return f.items[idx], nil
}

func (f *fakeStore) Query(ctx context.Context, table, index, keyName, keyValue string, limit int32) ([]storage.Item, error) {
	var out []storage.Item
	for _, item := range f.items {
		if stringAttr(item, keyName) == keyValue {
			out = append(out, item)
			if limit > 0 && int32(len(out)) >= limit {
				break
			}
		}
	}
	return out, nil
}

func stringAttr(item storage.Item, name string) string {
	if attr, ok := item[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}
