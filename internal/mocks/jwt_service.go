package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rmsato/todoapi/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing. By default
// tokens are the string "access:<userID>" or "refresh:<userID>" and
// validate by prefix, which keeps handler tests free of real signing.
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
}

// Compile-time interface check
var _ auth.JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a mock with 5 minute access and 24 hour
// refresh lifetimes.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{
		AccessLifetime:  5 * time.Minute,
		RefreshLifetime: 24 * time.Hour,
	}
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "access:" + userID.String(), nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.parse(tokenString, "access:")
}

// GenerateRefreshToken implements the JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return "refresh:" + userID.String(), nil
}

// ValidateRefreshToken implements the JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.parse(tokenString, "refresh:")
}

// AccessTokenLifetime implements the JWTService interface
func (m *MockJWTService) AccessTokenLifetime() time.Duration {
	return m.AccessLifetime
}

// RefreshTokenLifetime implements the JWTService interface
func (m *MockJWTService) RefreshTokenLifetime() time.Duration {
	return m.RefreshLifetime
}

func (m *MockJWTService) parse(tokenString, prefix string) (*auth.Claims, error) {
	if len(tokenString) <= len(prefix) || tokenString[:len(prefix)] != prefix {
		return nil, auth.ErrInvalidToken
	}

	userID, err := uuid.Parse(tokenString[len(prefix):])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		TokenType: prefix[:len(prefix)-1],
		Subject:   userID.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        uuid.NewString(),
	}, nil
}
