package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/errors"
	mbDTO "github.com/johnquangdev/meeting-recovery/internal/adapter/dto/memorybank"
	"github.com/johnquangdev/meeting-recovery/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/memorybank"
)

// MemoryBank handles saved meeting and tag endpoints
type MemoryBank struct {
	svc    *memorybank.Service
	logger *zap.Logger
}

// NewMemoryBankHandler creates a new memory bank handler
func NewMemoryBankHandler(svc *memorybank.Service, logger *zap.Logger) *MemoryBank {
	return &MemoryBank{svc: svc, logger: logger}
}

// SaveMeeting handles POST /api/memory-bank/save
func (h *MemoryBank) SaveMeeting(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mbDTO.SaveMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	tagIDs := make([]uuid.UUID, 0, len(req.TagIDs))
	for _, raw := range req.TagIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid tag id"))
		}
		tagIDs = append(tagIDs, id)
	}
	newTags := make([]memorybank.NewTag, 0, len(req.NewTags))
	for _, t := range req.NewTags {
		newTags = append(newTags, memorybank.NewTag{Name: t.Name, Color: t.Color})
	}

	meeting, err := h.svc.SaveMeeting(c.Request().Context(), ownerID, memorybank.SaveMeetingInput{
		Title:       req.Title,
		Category:    req.Category,
		Transcript:  req.Transcript,
		Topic:       req.Topic,
		Attendees:   req.Attendees,
		KnownInfo:   req.KnownInfo,
		Analysis:    req.Analysis,
		Mode:        req.ResolvedMode(),
		ContentMode: req.ContentMode,
		TagIDs:      tagIDs,
		NewTags:     newTags,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, &mbDTO.MeetingEnvelope{
		Success: true,
		Meeting: presenter.ToMeetingResponse(meeting),
	})
}

// ListMeetings handles GET /api/memory-bank/meetings
func (h *MemoryBank) ListMeetings(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mbDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	filter := repositories.MeetingFilter{
		Limit:    req.Limit,
		Offset:   req.Offset,
		Category: req.Category,
	}
	if req.Tag != "" {
		tagID, err := uuid.Parse(req.Tag)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid tag"))
		}
		filter.TagID = &tagID
	}

	page, err := h.svc.ListMeetings(c.Request().Context(), ownerID, filter)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToListMeetingsResponse(page))
}

// GetMeeting handles GET /api/memory-bank/meetings/:id
func (h *MemoryBank) GetMeeting(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.svc.GetMeeting(c.Request().Context(), ownerID, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &mbDTO.MeetingEnvelope{
		Success: true,
		Meeting: presenter.ToMeetingResponse(meeting),
	})
}

// SearchMeetings handles GET /api/memory-bank/search?q=
func (h *MemoryBank) SearchMeetings(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mbDTO.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.svc.SearchMeetings(c.Request().Context(), ownerID, req.Query)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &mbDTO.SearchResponse{
		Meetings: presenter.ToMeetingResponses(meetings),
		Query:    req.Query,
	})
}

// DeleteMeeting handles DELETE /api/memory-bank/meetings/:id
func (h *MemoryBank) DeleteMeeting(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.DeleteMeeting(c.Request().Context(), ownerID, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{"success": true})
}

// ListTags handles GET /api/memory-bank/tags
func (h *MemoryBank) ListTags(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tags, err := h.svc.ListTags(c.Request().Context(), ownerID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &mbDTO.TagsResponse{Tags: presenter.ToTagResponses(tags)})
}

// CreateTag handles POST /api/memory-bank/tags
func (h *MemoryBank) CreateTag(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mbDTO.CreateTagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	tag, err := h.svc.CreateTag(c.Request().Context(), ownerID, req.Name, req.Color)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resp := presenter.ToTagResponse(tag)
	return HandleSuccess(h.logger, c, http.StatusCreated, &mbDTO.TagEnvelope{Success: true, Tag: &resp})
}

// DeleteTag handles DELETE /api/memory-bank/tags/:id
func (h *MemoryBank) DeleteTag(c echo.Context) error {
	ownerID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.svc.DeleteTag(c.Request().Context(), ownerID, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{"success": true})
}
