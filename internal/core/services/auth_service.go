package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/platform/config"
	"github.com/SscSPs/bank_dashboard/internal/utils"
)

// tokenService issues access tokens and manages the single refresh token each user holds.
type tokenService struct {
	BaseService
	userRepo      portsrepo.UserRepository
	secret        string
	expiry        time.Duration
	issuer        string
	refreshExpiry time.Duration
	now           func() time.Time
}

// TokenServiceOption configures a token service.
type TokenServiceOption func(*tokenService)

// WithTokenClock overrides the clock used for token expiry.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) { s.now = now }
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepository, options ...TokenServiceOption) portssvc.TokenSvcFacade {
	s := &tokenService{
		userRepo:      userRepo,
		secret:        cfg.JWTSecret,
		expiry:        cfg.JWTExpiryDuration,
		issuer:        cfg.JWTIssuer,
		refreshExpiry: cfg.RefreshTokenExpiryDuration,
		now:           time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.now().Add(s.expiry)

	accessToken, err := utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

func (s *tokenService) IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateRefreshToken()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token")
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiresAt := s.now().Add(s.refreshExpiry)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return raw, expiresAt, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefresh
	}
	user, err := s.userRepo.FindUserByRefreshTokenHash(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidRefresh
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if user.RefreshTokenExpiryTime == nil || !s.now().Before(*user.RefreshTokenExpiryTime) {
		s.LogDebug(ctx, "Refresh token expired", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrRefreshExpired
	}
	return user, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
