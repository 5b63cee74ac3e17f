package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/bank_dashboard/internal/models"
	"github.com/SscSPs/bank_dashboard/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, name, email, avatar_url, created_at, refresh_token_hash, refresh_token_expiry_time`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1`, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan user", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id", userID)
}

// FindUserByUsername retrieves a user by their login name.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username", username)
}

// FindUserByRefreshTokenHash retrieves the user currently holding a refresh token.
func (r *PgxUserRepository) FindUserByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	return r.findOne(ctx, "refresh_token_hash", hash)
}

// UpdateRefreshToken replaces the user's stored refresh token.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, hash string, expiresAt time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE users SET refresh_token_hash = $2, refresh_token_expiry_time = $3 WHERE user_id = $1`,
		userID, hash, expiresAt)
	if err != nil {
		return constraintError("failed to store refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ClearRefreshToken signs the user out of every refresh session.
func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = $1`,
		userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
