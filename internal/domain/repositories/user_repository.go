package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// EnsureByExternalID returns the user bound to an auth subject, creating it
	// with initialCredits on first sight. Email and display name are refreshed.
	EnsureByExternalID(ctx context.Context, externalID, email, displayName string, initialCredits int) (*entities.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// UpdatePreferences replaces the stored preferences object
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs datatypes.JSON) error

	// UpdateMentorProgress replaces the stored mentor progress
	UpdateMentorProgress(ctx context.Context, id uuid.UUID, progress datatypes.JSON) error
}
