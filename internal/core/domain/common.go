package domain

import (
	"strings"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/google/uuid"
)

// Actor is the authenticated caller on whose behalf an operation runs.
type Actor struct {
	UserID string
}

// NewActor builds an Actor from a user id.
func NewActor(userID string) Actor {
	return Actor{UserID: userID}
}

// ValidateID checks that id is a well-formed UUID.
func ValidateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Invalid("%s is required", field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Invalid("%s is not a valid id", field)
	}
	return nil
}

// NewID returns a fresh identifier.
func NewID() string {
	return uuid.NewString()
}
