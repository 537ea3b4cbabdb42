package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven/mocks"
)

// fakeAuthAdapter hashes and signs with trivial reversible schemes so
// tests stay deterministic without real bcrypt or JWT work.
type fakeAuthAdapter struct{}

func (fakeAuthAdapter) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

func (fakeAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return "token:" + claims.UserID, nil
}

func (fakeAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	userID, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return nil, fmt.Errorf("malformed token")
	}
	return &domain.TokenClaims{UserID: userID}, nil
}

func newAuthFixture(t *testing.T) (*mocks.MockUserStore, *authService) {
	t.Helper()
	userStore := mocks.NewMockUserStore()
	svc := NewAuthService(userStore, fakeAuthAdapter{}).(*authService)
	return userStore, svc
}

func TestRegister(t *testing.T) {
	users, svc := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "  Ada@Example.COM ", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token issued on registration")
	}
	if resp.User.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.PasswordHash == "secret" {
		t.Error("password stored unhashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	req := domain.RegisterRequest{Name: "Ada", Email: "a@example.com", Password: "x"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate email, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	_, svc := newAuthFixture(t)

	for _, req := range []domain.RegisterRequest{
		{Email: "a@example.com", Password: "x"},
		{Name: "Ada", Password: "x"},
		{Name: "Ada", Email: "a@example.com"},
	} {
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %+v, got %v", req, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	_, svc := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "a@example.com", Password: "secret",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email: "A@Example.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token")
	}

	if _, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email: "a@example.com", Password: "wrong",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email: "nobody@example.com", Password: "secret",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	_, svc := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Ada", Email: "a@example.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	authCtx, err := svc.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.UserID != resp.User.ID || authCtx.Email != "a@example.com" {
		t.Errorf("unexpected auth context %+v", authCtx)
	}

	if _, err := svc.ValidateToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for bad token, got %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), "token:ghost"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}
