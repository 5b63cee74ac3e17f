package models

import "time"

// User represents a user of the application.
type User struct {
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	AvatarURL    *string   `db:"avatar_url"` // Nullable
	CreatedAt    time.Time `db:"created_at"`

	// Refresh Token Fields
	RefreshTokenHash       *string    `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
}
