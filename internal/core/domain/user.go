package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    *string   `json:"avatarURL,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	// Hash of the current refresh token; empty when signed out.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
