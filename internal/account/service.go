package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickshare/api/internal/fault"
	"github.com/quickshare/api/internal/storage"
)

const maxPasswordLength = 72 // bcrypt limit

// itemStore abstracts the persistence layer.
type itemStore interface {
	Put(ctx context.Context, table string, item storage.Item) error
	Get(ctx context.Context, table, partitionKey, sortKey string) (storage.Item, error)
	Query(ctx context.Context, table, index, keyName, keyValue string, limit int32) ([]storage.Item, error)
}

// Service orchestrates account creation and lookup.
type Service struct {
	store      itemStore
	table      string
	bcryptCost int
	nowFunc    func() time.Time
	newID      func() string
}

// NewService constructs an account service.
func NewService(store itemStore, table string, bcryptCost int) *Service {
	return &Service{
		store:      store,
		table:      table,
		bcryptCost: bcryptCost,
		newID:      uuid.NewString,
		nowFunc:    time.Now,
	}
}

// Create signs up a new password-based account, hashing the credential
// before it is persisted. Email uniqueness is assumed, not enforced.
func (s *Service) Create(ctx context.Context, input CreateInput) (Response, error) {
	if err := validateCreate(input); err != nil {
		return Response{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return Response{}, fault.Wrap(fault.KindValidationFailed, "hash password", err)
	}

	role := input.Role
	if role == "" {
		role = RoleEditor
	}

	acct := Account{
		ID:             s.newID(),
		Name:           input.Name,
		Email:          strings.ToLower(input.Email),
		Role:           role,
		CreatedAt:      storage.Timestamp(s.nowFunc()),
		HashedPassword: string(hashed),
	}

	item, err := marshalAccount(acct)
	if err != nil {
		return Response{}, err
	}

	if err := s.store.Put(ctx, s.table, item); err != nil {
		return Response{}, err
	}

	return toResponse(acct), nil
}

// GetByEmail looks up an account through the email index, credential
// hash included so the caller can verify a login. At most one record is
// returned; duplicates in storage are not defended against.
func (s *Service) GetByEmail(ctx context.Context, email string) (Account, error) {
	items, err := s.store.Query(ctx, s.table, storage.EmailIndex, storage.AttrEmail, strings.ToLower(email), 1)
	if err != nil {
		return Account{}, err
	}
	if len(items) == 0 {
		return Account{}, fault.New(fault.KindNotFound, "account not found")
	}

	return unmarshalAccount(items[0])
}

// Upsert writes an identity-provider account, overwriting the full
// record. Repeated sign-ins with the same id do not create duplicates,
// but createdAt is re-stamped on every call; the stored value is
// effectively a last-login timestamp.
func (s *Service) Upsert(ctx context.Context, input UpsertInput) (Response, error) {
	if strings.TrimSpace(input.ID) == "" {
		return Response{}, fault.New(fault.KindValidationFailed, "account id required")
	}

	acct := Account{
		ID:        input.ID,
		Name:      input.Name,
		Email:     strings.ToLower(input.Email),
		Role:      input.Role,
		CreatedAt: storage.Timestamp(s.nowFunc()),
	}

	item, err := marshalAccount(acct)
	if err != nil {
		return Response{}, err
	}

	if err := s.store.Put(ctx, s.table, item); err != nil {
		return Response{}, err
	}

	return toResponse(acct), nil
}

// GetByID fetches an account's public shape.
func (s *Service) GetByID(ctx context.Context, id string) (Response, error) {
	item, err := s.store.Get(ctx, s.table, partitionKey(id), storage.SortKeyMeta)
	if err != nil {
		return Response{}, err
	}
	if item == nil {
		return Response{}, fault.New(fault.KindNotFound, "account not found")
	}

	acct, err := unmarshalAccount(item)
	if err != nil {
		return Response{}, err
	}

	return toResponse(acct), nil
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return fault.New(fault.KindValidationFailed, "email required")
	}
	if input.Password == "" {
		return fault.New(fault.KindValidationFailed, "password required")
	}
	if len(input.Password) > maxPasswordLength {
		return fault.New(fault.KindValidationFailed, "password too long")
	}
	return nil
}
