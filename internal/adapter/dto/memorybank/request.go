package memorybank

import "github.com/johnquangdev/meeting-recovery/internal/domain/entities"

// NewTagRequest is a tag created inline while saving a meeting
type NewTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor6"`
}

// SaveMeetingRequest is the body of POST /api/memory-bank/save
type SaveMeetingRequest struct {
	Title       string                    `json:"title" validate:"required,max=255"`
	Category    string                    `json:"category" validate:"required,max=100"`
	Transcript  string                    `json:"transcript"`
	Topic       string                    `json:"topic"`
	Attendees   string                    `json:"attendees"`
	KnownInfo   string                    `json:"knownInfo"`
	Analysis    *entities.MeetingAnalysis `json:"analysis" validate:"required"`
	Mode        string                    `json:"mode"`
	ShinraiMode string                    `json:"shinraiMode"`
	ContentMode string                    `json:"contentMode"`
	TagIDs      []string                  `json:"tagIds" validate:"omitempty,max=20,dive,uuid"`
	NewTags     []NewTagRequest           `json:"newTags" validate:"omitempty,max=20,dive"`
}

// ResolvedMode returns the mode the meeting was analysed with
func (r *SaveMeetingRequest) ResolvedMode() string {
	if r.Mode != "" {
		return r.Mode
	}
	return r.ShinraiMode
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Limit    int    `query:"limit" validate:"min=0,max=100"`
	Offset   int    `query:"offset" validate:"min=0"`
	Category string `query:"category" validate:"max=100"`
	Tag      string `query:"tag" validate:"omitempty,uuid"`
}

// SearchRequest represents query parameters for searching meetings
type SearchRequest struct {
	Query string `query:"q" validate:"required,max=200"`
}

// CreateTagRequest is the body of POST /api/memory-bank/tags
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor6"`
}
