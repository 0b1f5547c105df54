package mentor

// StartSessionRequest is the body of POST /api/mentor/start-session
type StartSessionRequest struct {
	SessionType string `json:"sessionType" validate:"required,max=50"`
}

// UpdateProgressRequest is the body of POST /api/mentor/update-progress
type UpdateProgressRequest struct {
	SessionID string `json:"sessionId" validate:"required,uuid"`
	Step      *int   `json:"step" validate:"required,min=0"`
}
