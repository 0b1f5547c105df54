package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// MentorRepository stores mentor sessions
type MentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(db *gorm.DB) *MentorRepository {
	return &MentorRepository{db: db}
}

// FindActive returns the user's active session of the given type
func (r *MentorRepository) FindActive(ctx context.Context, userID uuid.UUID, sessionType string) (*entities.MentorSession, error) {
	var s entities.MentorSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_type = ? AND status = ?", userID, sessionType, entities.MentorSessionActive).
		Order("created_at DESC").
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMentorSessionNotFound
		}
		return nil, fmt.Errorf("failed to find active mentor session: %w", err)
	}
	return &s, nil
}

// Create creates a session
func (r *MentorRepository) Create(ctx context.Context, session *entities.MentorSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create mentor session: %w", err)
	}
	return nil
}

// List returns the user's sessions newest first
func (r *MentorRepository) List(ctx context.Context, userID uuid.UUID) ([]*entities.MentorSession, error) {
	sessions := make([]*entities.MentorSession, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list mentor sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns one session of the user
func (r *MentorRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.MentorSession, error) {
	var s entities.MentorSession
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMentorSessionNotFound
		}
		return nil, fmt.Errorf("failed to find mentor session: %w", err)
	}
	return &s, nil
}

// UpdateProgress persists step, status and completion time
func (r *MentorRepository) UpdateProgress(ctx context.Context, session *entities.MentorSession) error {
	res := r.db.WithContext(ctx).Model(&entities.MentorSession{}).
		Where("id = ? AND user_id = ?", session.ID, session.UserID).
		Updates(map[string]interface{}{
			"current_step": session.CurrentStep,
			"status":       session.Status,
			"completed_at": session.CompletedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update mentor session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrMentorSessionNotFound
	}
	return nil
}
