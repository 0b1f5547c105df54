// Package mentor tracks progress through the guided walkthroughs.
package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
)

// Service is the mentor usecase
type Service struct {
	sessions repositories.MentorRepository
	users    repositories.UserRepository
	now      func() time.Time
}

// NewService constructs a new mentor service
func NewService(sessions repositories.MentorRepository, users repositories.UserRepository) *Service {
	return &Service{sessions: sessions, users: users, now: time.Now}
}

// StartSession returns the active session of sessionType, starting one if none is active
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID, sessionType string) (*entities.MentorSession, error) {
	total, ok := entities.MentorSessionSteps(sessionType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownMentorSession, sessionType)
	}

	active, err := s.sessions.FindActive(ctx, userID, sessionType)
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, entities.ErrMentorSessionNotFound) {
		return nil, err
	}

	session := entities.NewMentorSession(userID, sessionType, total)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns all sessions of the user
func (s *Service) ListSessions(ctx context.Context, userID uuid.UUID) ([]*entities.MentorSession, error) {
	return s.sessions.List(ctx, userID)
}

// UpdateProgress moves a session to step. Reaching the last step completes the
// session and records its type in the user's mentor progress.
func (s *Service) UpdateProgress(ctx context.Context, userID, sessionID uuid.UUID, step int) (*entities.MentorSession, error) {
	session, err := s.sessions.FindByID(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	wasCompleted := session.Status == entities.MentorSessionCompleted
	if err := session.Advance(step, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: step must be between 0 and %d", err, session.TotalSteps)
	}
	if err := s.sessions.UpdateProgress(ctx, session); err != nil {
		return nil, err
	}

	if !wasCompleted && session.Status == entities.MentorSessionCompleted {
		if err := s.markCompleted(ctx, userID, session.SessionType); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *Service) markCompleted(ctx context.Context, userID uuid.UUID, sessionType string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	progress := u.Progress()
	if slices.Contains(progress.Completed, sessionType) {
		return nil
	}
	progress.Completed = append(progress.Completed, sessionType)

	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode mentor progress: %w", err)
	}
	return s.users.UpdateMentorProgress(ctx, userID, datatypes.JSON(raw))
}
