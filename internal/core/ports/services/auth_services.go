package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// IssueRefreshToken creates a refresh token for user and replaces any stored one.
	// Only its hash is persisted; the raw token is returned once.
	IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken returns the user holding the token.
	// Unknown and expired tokens are apperrors.ErrUnauthorized.
	ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)

	// RevokeRefreshToken clears the user's stored refresh token.
	RevokeRefreshToken(ctx context.Context, userID string) error
}
