package driving

import (
	"context"

	"github.com/maviyashaikh25/Lawlense/internal/core/domain"
)

// AuthService handles account registration and authentication
type AuthService interface {
	// Register creates a new account
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error)

	// Authenticate validates credentials and issues a token
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken verifies a bearer token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
