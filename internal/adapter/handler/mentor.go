package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/errors"
	mentorDTO "github.com/johnquangdev/meeting-recovery/internal/adapter/dto/mentor"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/mentor"
)

// Mentor handles guided walkthrough endpoints
type Mentor struct {
	svc    *mentor.Service
	logger *zap.Logger
}

// NewMentorHandler creates a new mentor handler
func NewMentorHandler(svc *mentor.Service, logger *zap.Logger) *Mentor {
	return &Mentor{svc: svc, logger: logger}
}

// ListSessions handles GET /api/mentor/sessions
func (h *Mentor) ListSessions(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	sessions, err := h.svc.ListSessions(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &mentorDTO.SessionsResponse{Sessions: sessions})
}

// StartSession handles POST /api/mentor/start-session
func (h *Mentor) StartSession(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mentorDTO.StartSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	session, err := h.svc.StartSession(c.Request().Context(), userID, req.SessionType)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &mentorDTO.SessionEnvelope{Success: true, Session: session})
}

// UpdateProgress handles POST /api/mentor/update-progress
func (h *Mentor) UpdateProgress(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mentorDTO.UpdateProgressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid sessionId"))
	}

	session, err := h.svc.UpdateProgress(c.Request().Context(), userID, sessionID, *req.Step)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &mentorDTO.SessionEnvelope{Success: true, Session: session})
}
