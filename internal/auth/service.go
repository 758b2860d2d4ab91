package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickshare/api/internal/account"
	"github.com/quickshare/api/internal/config"
	"github.com/quickshare/api/internal/fault"
)

// accounts abstracts the account service.
type accounts interface {
	Create(ctx context.Context, input account.CreateInput) (account.Response, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Upsert(ctx context.Context, input account.UpsertInput) (account.Response, error)
}

// Service issues and validates session tokens.
type Service struct {
	accounts accounts
	cfg      config.AuthConfig
	nowFunc  func() time.Time
	issuer   string
	parser   *jwt.Parser
}

// NewService creates a Service with dependencies.
func NewService(accounts accounts, cfg config.AuthConfig) *Service {
	return &Service{
		accounts: accounts,
		cfg:      cfg,
		nowFunc:  time.Now,
		issuer:   "quickshare",
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// RegisterInput carries data for password signup.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// ProviderInput carries a provider-verified identity. Callers are
// responsible for having verified it with the identity provider.
type ProviderInput struct {
	ID    string
	Name  string
	Email string
}

// Result bundles the signed-in account with its session token.
type Result struct {
	Account   account.Response
	Token     string
	ExpiresAt time.Time
}

// Claims describes the validated identity extracted from a token.
type Claims struct {
	AccountID string
	Email     string
	Role      string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Register creates a password-based account and issues a session token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Result, error) {
	acct, err := s.accounts.Create(ctx, account.CreateInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return Result{}, err
	}

	return s.issueToken(acct)
}

// Login authenticates credentials and issues a fresh session token.
func (s *Service) Login(ctx context.Context, input LoginInput) (Result, error) {
	acct, err := s.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		if fault.IsNotFound(err) {
			return Result{}, fault.New(fault.KindUnauthorized, "invalid credentials")
		}
		return Result{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.HashedPassword), []byte(input.Password)); err != nil {
		return Result{}, fault.New(fault.KindUnauthorized, "invalid credentials")
	}

	return s.issueToken(account.Response{
		ID:        acct.ID,
		Name:      acct.Name,
		Email:     acct.Email,
		Role:      string(acct.Role),
		CreatedAt: acct.CreatedAt,
	})
}

// ProviderSignIn upserts a provider-verified identity and issues a
// session token. Repeated sign-ins with the same provider account id
// overwrite the stored record instead of creating duplicates.
func (s *Service) ProviderSignIn(ctx context.Context, input ProviderInput) (Result, error) {
	acct, err := s.accounts.Upsert(ctx, account.UpsertInput{
		ID:    input.ID,
		Name:  input.Name,
		Email: input.Email,
		Role:  account.RoleViewer,
	})
	if err != nil {
		return Result{}, err
	}

	return s.issueToken(acct)
}

// ValidateToken verifies the token signature and extracts claims.
func (s *Service) ValidateToken(tokenString string) (Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, fault.New(fault.KindUnauthorized, "missing token")
	}

	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, fault.New(fault.KindUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fault.New(fault.KindUnauthorized, "invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, fault.New(fault.KindUnauthorized, "invalid token")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	expFloat, okExp := claims["exp"].(float64)
	if !okExp {
		return Claims{}, fault.New(fault.KindUnauthorized, "invalid token")
	}
	exp := time.Unix(int64(expFloat), 0)

	iat := time.Time{}
	if iatFloat, ok := claims["iat"].(float64); ok {
		iat = time.Unix(int64(iatFloat), 0)
	}

	if exp.Before(s.nowFunc()) {
		return Claims{}, fault.New(fault.KindUnauthorized, "token expired")
	}

	return Claims{
		AccountID: sub,
		Email:     email,
		Role:      role,
		ExpiresAt: exp,
		IssuedAt:  iat,
	}, nil
}

func (s *Service) issueToken(acct account.Response) (Result, error) {
	now := s.nowFunc()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := jwt.MapClaims{
		"sub":   acct.ID,
		"iss":   s.issuer,
		"aud":   "quickshare-api",
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
		"email": acct.Email,
		"role":  acct.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return Result{}, fmt.Errorf("sign token: %w", err)
	}

	return Result{Account: acct, Token: signed, ExpiresAt: expiresAt}, nil
}
