// Package user serves profile reads and preference updates.
package user

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
	usecaseerrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
)

const maxPreferencesBytes = 16 << 10

// Profile is the caller's account view
type Profile struct {
	User         *entities.User
	LowOnCredits bool
}

// Service is the user usecase
type Service struct {
	users        repositories.UserRepository
	lowThreshold int
}

// NewService constructs a new user service
func NewService(users repositories.UserRepository, lowThreshold int) *Service {
	return &Service{users: users, lowThreshold: lowThreshold}
}

// GetProfile returns the caller's profile
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, LowOnCredits: u.IsLowOnCredits(s.lowThreshold)}, nil
}

// UpdatePreferences replaces the caller's preferences. raw must be a JSON object.
func (s *Service) UpdatePreferences(ctx context.Context, userID uuid.UUID, raw json.RawMessage) (datatypes.JSON, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > maxPreferencesBytes {
		return nil, usecaseerrors.NewValidationError("preferences", "preferences are too large")
	}
	var obj map[string]json.RawMessage
	if len(raw) == 0 || raw[0] != '{' || json.Unmarshal(raw, &obj) != nil {
		return nil, usecaseerrors.NewValidationError("preferences", "preferences must be a JSON object")
	}

	compact := new(bytes.Buffer)
	if err := json.Compact(compact, raw); err != nil {
		return nil, usecaseerrors.NewValidationError("preferences", "preferences must be a JSON object")
	}
	prefs := datatypes.JSON(compact.Bytes())
	if err := s.users.UpdatePreferences(ctx, userID, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
