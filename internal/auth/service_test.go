package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quickshare/api/internal/account"
	"github.com/quickshare/api/internal/config"
	"github.com/quickshare/api/internal/fault"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSecret: "unit-test-secret",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}
}

func TestRegisterIssuesValidToken(t *testing.T) {
	service := NewService(newFakeAccounts(), testConfig())

	result, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if result.Token == "" {
		t.Fatalf("expected a session token")
	}

	claims, err := service.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.AccountID != result.Account.ID {
		t.Fatalf("claims subject %q does not match account %q", claims.AccountID, result.Account.ID)
	}
	if claims.Email != "ann@example.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
	if claims.Role != "editor" {
		t.Fatalf("unexpected role claim %q", claims.Role)
	}
}

func TestLoginSuccess(t *testing.T) {
	accounts := newFakeAccounts()
	service := NewService(accounts, testConfig())

	if _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "ann@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a session token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := newFakeAccounts()
	service := NewService(accounts, testConfig())

	if _, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "ann@example.com",
		Password: "wrong",
	})
	if fault.KindOf(err) != fault.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailDoesNotLeakExistence(t *testing.T) {
	service := NewService(newFakeAccounts(), testConfig())

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	if fault.KindOf(err) != fault.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestProviderSignInUpsertsViewer(t *testing.T) {
	accounts := newFakeAccounts()
	service := NewService(accounts, testConfig())

	result, err := service.ProviderSignIn(context.Background(), ProviderInput{
		ID:    "google-42",
		Name:  "Ann",
		Email: "ann@example.com",
	})
	if err != nil {
		t.Fatalf("ProviderSignIn returned error: %v", err)
	}

	if result.Account.ID != "google-42" {
		t.Fatalf("expected provider account id, got %q", result.Account.ID)
	}
	if result.Account.Role != "viewer" {
		t.Fatalf("expected viewer role, got %q", result.Account.Role)
	}
	if accounts.upserts != 1 {
		t.Fatalf("expected one upsert, got %d", accounts.upserts)
	}

	// Repeat sign-in upserts again instead of failing.
	if _, err := service.ProviderSignIn(context.Background(), ProviderInput{
		ID:    "google-42",
		Name:  "Ann Again",
		Email: "ann@example.com",
	}); err != nil {
		t.Fatalf("repeat ProviderSignIn returned error: %v", err)
	}
	if accounts.upserts != 2 {
		t.Fatalf("expected two upserts, got %d", accounts.upserts)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	service := NewService(newFakeAccounts(), testConfig())
	service.nowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	result, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	service.nowFunc = time.Now
	_, err = service.ValidateToken(result.Token)
	if fault.KindOf(err) != fault.KindUnauthorized {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	service := NewService(newFakeAccounts(), testConfig())

	for _, token := range []string{"", "   ", "not-a-jwt"} {
		if _, err := service.ValidateToken(token); fault.KindOf(err) != fault.KindUnauthorized {
			t.Fatalf("token %q: expected unauthorized, got %v", token, err)
		}
	}
}

// --- helpers & fakes ---

type fakeAccounts struct {
	byEmail map[string]account.Account
	byID    map[string]account.Account
	upserts int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byEmail: make(map[string]account.Account),
		byID:    make(map[string]account.Account),
	}
}

func (f *fakeAccounts) Create(ctx context.Context, input account.CreateInput) (account.Response, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.MinCost)
	if err != nil {
		return account.Response{}, err
	}

	acct := account.Account{
		ID:             "acct-" + input.Email,
		Name:           input.Name,
		Email:          input.Email,
		Role:           account.RoleEditor,
		CreatedAt:      "2024-05-01T12:00:00.000Z",
		HashedPassword: string(hash),
	}
	f.byEmail[acct.Email] = acct
	f.byID[acct.ID] = acct

	return account.Response{
		ID:        acct.ID,
		Name:      acct.Name,
		Email:     acct.Email,
		Role:      string(acct.Role),
		CreatedAt: acct.CreatedAt,
	}, nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	acct, ok := f.byEmail[email]
	if !ok {
		return account.Account{}, fault.New(fault.KindNotFound, "account not found")
	}
	return acct, nil
}

func (f *fakeAccounts) Upsert(ctx context.Context, input account.UpsertInput) (account.Response, error) {
	f.upserts++
	acct := account.Account{
		ID:        input.ID,
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: "2024-05-01T12:00:00.000Z",
	}
	f.byEmail[acct.Email] = acct
	f.byID[acct.ID] = acct

	return account.Response{
		ID:        acct.ID,
		Name:      acct.Name,
		Email:     acct.Email,
		Role:      string(acct.Role),
		CreatedAt: acct.CreatedAt,
	}, nil
}
