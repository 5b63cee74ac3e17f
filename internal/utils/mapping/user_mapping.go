package mapping

import (
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/SscSPs/bank_dashboard/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	var refreshHash *string
	if d.RefreshTokenHash != "" {
		refreshHash = &d.RefreshTokenHash
	}
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Email:        d.Email,
		AvatarURL:    d.AvatarURL,
		CreatedAt:    d.CreatedAt,

		RefreshTokenHash:       refreshHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	var refreshHash string
	if m.RefreshTokenHash != nil {
		refreshHash = *m.RefreshTokenHash
	}
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Email:        m.Email,
		AvatarURL:    m.AvatarURL,
		CreatedAt:    m.CreatedAt,

		RefreshTokenHash:       refreshHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
	}
}
