package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MentorSessionStatus is the state of a guided walkthrough
type MentorSessionStatus string

const (
	MentorSessionActive    MentorSessionStatus = "active"
	MentorSessionCompleted MentorSessionStatus = "completed"
)

// mentorSessionSteps lists the known walkthroughs and how many steps each has
var mentorSessionSteps = map[string]int{
	"welcome":           4,
	"magi_modes":        4,
	"memory_bank":       4,
	"credit_management": 4,
	"highlight_reel":    4,
}

// MentorSessionSteps returns the step count for a walkthrough type
func MentorSessionSteps(sessionType string) (int, bool) {
	n, ok := mentorSessionSteps[sessionType]
	return n, ok
}

// MentorSession tracks a user's progress through one guided walkthrough
type MentorSession struct {
	ID          uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID           `json:"-" gorm:"type:uuid;not null;index"`
	SessionType string              `json:"sessionType" gorm:"type:varchar(50);not null"`
	CurrentStep int                 `json:"currentStep" gorm:"not null;default:0"`
	TotalSteps  int                 `json:"totalSteps" gorm:"not null"`
	Status      MentorSessionStatus `json:"status" gorm:"type:varchar(20);not null"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time           `json:"updatedAt" gorm:"autoUpdateTime"`
}

// NewMentorSession starts a walkthrough at step zero
func NewMentorSession(userID uuid.UUID, sessionType string, totalSteps int) *MentorSession {
	return &MentorSession{
		ID:          uuid.New(),
		UserID:      userID,
		SessionType: sessionType,
		TotalSteps:  totalSteps,
		Status:      MentorSessionActive,
	}
}

// BeforeCreate assigns an ID when the caller did not
func (s *MentorSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Advance moves the session to step, completing it on the final step
func (s *MentorSession) Advance(step int, now time.Time) error {
	if step < 0 || step > s.TotalSteps {
		return ErrInvalidMentorStep
	}
	s.CurrentStep = step
	if step == s.TotalSteps && s.Status != MentorSessionCompleted {
		s.Status = MentorSessionCompleted
		s.CompletedAt = &now
	}
	return nil
}
