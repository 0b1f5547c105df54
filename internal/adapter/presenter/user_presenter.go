package presenter

import (
	"encoding/json"

	userDTO "github.com/johnquangdev/meeting-recovery/internal/adapter/dto/user"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/user"
)

// ToUserResponse converts a profile to the UserResponse DTO
func ToUserResponse(p *user.Profile) *userDTO.UserResponse {
	if p == nil || p.User == nil {
		return nil
	}
	u := p.User

	progress, _ := json.Marshal(u.Progress())
	prefs := json.RawMessage(u.Preferences)
	if len(prefs) == 0 {
		prefs = json.RawMessage(`{}`)
	}

	return &userDTO.UserResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Credits:        u.Credits,
		LowOnCredits:   p.LowOnCredits,
		MentorProgress: progress,
		Preferences:    prefs,
		CreatedAt:      u.CreatedAt,
	}
}
