package analysis

import "github.com/johnquangdev/meeting-recovery/internal/domain/entities"

// AnalyzeResponse is returned for a successful analysis
type AnalyzeResponse struct {
	Success          bool                      `json:"success"`
	Analysis         *entities.MeetingAnalysis `json:"analysis"`
	Mode             entities.Mode             `json:"mode"`
	ContentMode      entities.ContentKind      `json:"contentMode"`
	CreditsRemaining int                       `json:"creditsRemaining"`
}
