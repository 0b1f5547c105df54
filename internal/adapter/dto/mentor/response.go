package mentor

import "github.com/johnquangdev/meeting-recovery/internal/domain/entities"

// SessionEnvelope wraps a single mentor session
type SessionEnvelope struct {
	Success bool                    `json:"success"`
	Session *entities.MentorSession `json:"session"`
}

// SessionsResponse lists the caller's mentor sessions
type SessionsResponse struct {
	Sessions []*entities.MentorSession `json:"sessions"`
}
