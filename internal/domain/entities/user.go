package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an authenticated account and its credit balance
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ExternalAuthID string    `json:"-" gorm:"column:external_auth_id;type:varchar(255);uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"type:varchar(255);not null;default:''"`
	DisplayName    string    `json:"displayName" gorm:"column:display_name;type:varchar(255);not null;default:''"`

	// Credits is never negative; the check constraint backs the conditional
	// decrement in the ledger.
	Credits int `json:"credits" gorm:"not null;default:0;check:chk_users_credits,credits >= 0"`

	MentorProgress datatypes.JSON `json:"mentorProgress" gorm:"column:mentor_progress"`
	Preferences    datatypes.JSON `json:"preferences"`

	// Timestamps
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// MentorProgress is the aggregate guidance state stored on the user row
type MentorProgress struct {
	Completed []string `json:"completed"`
}

// NewUser creates a new user with default values
func NewUser(externalAuthID, email, displayName string, initialCredits int) *User {
	now := time.Now()
	progress, _ := json.Marshal(MentorProgress{Completed: []string{}})

	return &User{
		ID:             uuid.New(),
		ExternalAuthID: externalAuthID,
		Email:          email,
		DisplayName:    displayName,
		Credits:        initialCredits,
		MentorProgress: progress,
		Preferences:    datatypes.JSON(`{}`),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// BeforeCreate assigns an ID when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Progress decodes the stored mentor progress, tolerating empty columns
func (u *User) Progress() MentorProgress {
	var p MentorProgress
	if len(u.MentorProgress) > 0 {
		_ = json.Unmarshal(u.MentorProgress, &p)
	}
	if p.Completed == nil {
		p.Completed = []string{}
	}
	return p
}

// IsLowOnCredits reports whether the balance is at or below threshold
func (u *User) IsLowOnCredits(threshold int) bool {
	return u.Credits <= threshold
}
