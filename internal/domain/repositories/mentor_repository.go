package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// MentorRepository defines mentor session storage
type MentorRepository interface {
	// FindActive returns the active session of sessionType, or ErrMentorSessionNotFound
	FindActive(ctx context.Context, userID uuid.UUID, sessionType string) (*entities.MentorSession, error)
	Create(ctx context.Context, session *entities.MentorSession) error
	List(ctx context.Context, userID uuid.UUID) ([]*entities.MentorSession, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.MentorSession, error)
	UpdateProgress(ctx context.Context, session *entities.MentorSession) error
}
