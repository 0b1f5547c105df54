package user

import (
	"encoding/json"
	"time"
)

// UserResponse represents the caller's account
type UserResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	DisplayName    string          `json:"displayName"`
	Credits        int             `json:"credits"`
	LowOnCredits   bool            `json:"lowOnCredits"`
	MentorProgress json.RawMessage `json:"mentorProgress"`
	Preferences    json.RawMessage `json:"preferences"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// GetUserResponse is the body of GET /api/user
type GetUserResponse struct {
	User *UserResponse `json:"user"`
}

// RedeemLicenseKeyResponse is returned after a successful redemption
type RedeemLicenseKeyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Credits int    `json:"credits"`
	Balance int    `json:"balance"`
}

// PreferencesResponse echoes the stored preferences
type PreferencesResponse struct {
	Success     bool            `json:"success"`
	Preferences json.RawMessage `json:"preferences"`
}
