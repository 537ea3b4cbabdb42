package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 24 * time.Hour

// authService implements registration and stateless JWT authentication
type authService struct {
	userStore driven.UserStore
	auth      driven.AuthAdapter
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore driven.UserStore, auth driven.AuthAdapter) driving.AuthService {
	return &authService{
		userStore: userStore,
		auth:      auth,
	}
}

// Register creates a new account and issues a token
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrInvalidInput
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           domain.GenerateID(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Authenticate validates credentials and issues a token
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ValidateToken verifies a bearer token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	claims, err := s.auth.ParseToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userStore.Get(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	return &domain.AuthContext{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *authService) issueToken(user *domain.User) (*domain.LoginResponse, error) {
	now := time.Now()
	expiresAt := now.Add(tokenTTL)

	token, err := s.auth.GenerateToken(&domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
