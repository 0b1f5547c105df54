package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// EnsureByExternalID inserts the user if the subject is new, then reads it back.
// Concurrent first requests for one subject converge on a single row.
func (r *UserRepository) EnsureByExternalID(ctx context.Context, externalID, email, displayName string, initialCredits int) (*entities.User, error) {
	candidate := entities.NewUser(externalID, email, displayName, initialCredits)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "external_auth_id"}}, DoNothing: true}).
		Create(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	var user entities.User
	if err := r.db.WithContext(ctx).Where("external_auth_id = ?", externalID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	updates := map[string]interface{}{}
	if email != "" && email != user.Email {
		updates["email"] = email
		user.Email = email
	}
	if displayName != "" && displayName != user.DisplayName {
		updates["display_name"] = displayName
		user.DisplayName = displayName
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh user profile: %w", err)
		}
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return &user, nil
}

// UpdatePreferences replaces the preferences object
func (r *UserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs datatypes.JSON) error {
	return r.updateColumn(ctx, id, "preferences", prefs)
}

// UpdateMentorProgress replaces the mentor progress object
func (r *UserRepository) UpdateMentorProgress(ctx context.Context, id uuid.UUID, progress datatypes.JSON) error {
	return r.updateColumn(ctx, id, "mentor_progress", progress)
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value datatypes.JSON) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}
