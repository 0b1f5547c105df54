// Package memorybank manages the saved meetings and tags of a user.
package memorybank

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/ai"
	usecaseerrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
	"github.com/johnquangdev/meeting-recovery/pkg/validator"
)

const (
	maxTitleChars    = 255
	maxCategoryChars = 100
	maxTagNameChars  = 50
	maxSearchChars   = 200
)

// NewTag is a tag to create while saving a meeting
type NewTag struct {
	Name  string
	Color string
}

// SaveMeetingInput is what the client keeps from an analysis
type SaveMeetingInput struct {
	Title       string
	Category    string
	Transcript  string
	Topic       string
	Attendees   string
	KnownInfo   string
	Analysis    *entities.MeetingAnalysis
	Mode        string
	ContentMode string
	TagIDs      []uuid.UUID
	NewTags     []NewTag
}

// ListResult is one page of meetings
type ListResult struct {
	Meetings []*entities.SavedMeeting
	Total    int64
	Limit    int
	Offset   int
}

// Service is the memory bank usecase
type Service struct {
	repo repositories.MemoryBankRepository
}

// NewService constructs a new memory bank service
func NewService(repo repositories.MemoryBankRepository) *Service {
	return &Service{repo: repo}
}

// SaveMeeting validates and stores a meeting with its tags
func (s *Service) SaveMeeting(ctx context.Context, ownerID uuid.UUID, in SaveMeetingInput) (*entities.SavedMeeting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, usecaseerrors.NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleChars {
		return nil, usecaseerrors.NewValidationError("title", "title is too long")
	}
	category := strings.TrimSpace(in.Category)
	if utf8.RuneCountInString(category) > maxCategoryChars {
		return nil, usecaseerrors.NewValidationError("category", "category is too long")
	}
	if in.Analysis == nil {
		return nil, usecaseerrors.NewValidationError("analysis", "analysis is required")
	}
	mode, err := entities.ParseMode(in.Mode)
	if err != nil {
		return nil, usecaseerrors.NewValidationError("mode", "unknown mode")
	}
	kind, err := entities.ParseContentKind(in.ContentMode)
	if err != nil {
		return nil, usecaseerrors.NewValidationError("contentMode", "unknown content mode")
	}

	newTags := make([]*entities.Tag, 0, len(in.NewTags))
	for _, t := range in.NewTags {
		tag, err := buildTag(ownerID, t.Name, t.Color)
		if err != nil {
			return nil, err
		}
		newTags = append(newTags, tag)
	}

	meeting := &entities.SavedMeeting{
		OwnerID:     ownerID,
		Title:       title,
		Category:    category,
		Transcript:  in.Transcript,
		Topic:       strings.TrimSpace(in.Topic),
		Attendees:   strings.TrimSpace(in.Attendees),
		KnownInfo:   strings.TrimSpace(in.KnownInfo),
		Analysis:    datatypes.NewJSONType(*ai.NormalizeAnalysis(in.Analysis)),
		Mode:        mode,
		ContentKind: kind,
	}
	if err := s.repo.SaveMeeting(ctx, meeting, in.TagIDs, newTags); err != nil {
		if errors.Is(err, entities.ErrTagNotFound) {
			return nil, usecaseerrors.NewValidationError("tagIds", "unknown tag id")
		}
		return nil, err
	}
	return meeting, nil
}

// ListMeetings returns one page of the owner's meetings
func (s *Service) ListMeetings(ctx context.Context, ownerID uuid.UUID, filter repositories.MeetingFilter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = repositories.DefaultListLimit
	}
	if filter.Limit > repositories.MaxListLimit {
		filter.Limit = repositories.MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Category = strings.TrimSpace(filter.Category)

	meetings, total, err := s.repo.ListMeetings(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return &ListResult{Meetings: meetings, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// GetMeeting returns one meeting of the owner
func (s *Service) GetMeeting(ctx context.Context, ownerID, id uuid.UUID) (*entities.SavedMeeting, error) {
	return s.repo.FindMeeting(ctx, ownerID, id)
}

// SearchMeetings finds the owner's meetings matching query
func (s *Service) SearchMeetings(ctx context.Context, ownerID uuid.UUID, query string) ([]*entities.SavedMeeting, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, usecaseerrors.NewValidationError("q", "search query is required")
	}
	if utf8.RuneCountInString(query) > maxSearchChars {
		return nil, usecaseerrors.NewValidationError("q", "search query is too long")
	}
	return s.repo.SearchMeetings(ctx, ownerID, query, repositories.MaxListLimit)
}

// DeleteMeeting removes one meeting of the owner
func (s *Service) DeleteMeeting(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteMeeting(ctx, ownerID, id)
}

// ListTags returns the owner's tags
func (s *Service) ListTags(ctx context.Context, ownerID uuid.UUID) ([]*entities.Tag, error) {
	return s.repo.ListTags(ctx, ownerID)
}

// CreateTag creates a tag; an empty colour uses the default
func (s *Service) CreateTag(ctx context.Context, ownerID uuid.UUID, name, color string) (*entities.Tag, error) {
	tag, err := buildTag(ownerID, name, color)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and its links
func (s *Service) DeleteTag(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTag(ctx, ownerID, id)
}

func buildTag(ownerID uuid.UUID, name, color string) (*entities.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, usecaseerrors.NewValidationError("name", "tag name is required")
	}
	if utf8.RuneCountInString(name) > maxTagNameChars {
		return nil, usecaseerrors.NewValidationError("name", "tag name is too long")
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = entities.DefaultTagColor
	}
	if !validator.IsHexColor(color) {
		return nil, usecaseerrors.NewValidationError("color", "color must be #RRGGBB")
	}
	return &entities.Tag{OwnerID: ownerID, Name: name, Color: strings.ToUpper(color)}, nil
}
