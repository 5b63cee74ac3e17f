package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID returns apperrors.ErrUserNotFound when no row exists.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername returns apperrors.ErrUserNotFound when no row exists.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByRefreshTokenHash returns apperrors.ErrUserNotFound when no user holds the hash.
	FindUserByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error)
}

// UserWriter stores and clears a user's refresh token.
type UserWriter interface {
	UpdateRefreshToken(ctx context.Context, userID string, hash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepository combines user reads and refresh token writes.
type UserRepository interface {
	UserReader
	UserWriter
}
