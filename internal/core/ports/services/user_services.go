package services

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetCurrentUser retrieves the actor's own profile.
	GetCurrentUser(ctx context.Context, actor domain.Actor) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username and password.
	// Returns apperrors.ErrInvalidCredentials on any mismatch.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}
