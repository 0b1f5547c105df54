package memorybank

import (
	"time"

	"github.com/johnquangdev/meeting-recovery/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// TagResponse represents a tag
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeetingResponse represents a saved meeting
type MeetingResponse struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Category    string                    `json:"category"`
	Transcript  string                    `json:"transcript"`
	Topic       string                    `json:"topic,omitempty"`
	Attendees   string                    `json:"attendees,omitempty"`
	KnownInfo   string                    `json:"knownInfo,omitempty"`
	Analysis    *entities.MeetingAnalysis `json:"analysis"`
	Mode        entities.Mode             `json:"mode"`
	ContentMode entities.ContentKind      `json:"contentMode"`
	Tags        []TagResponse             `json:"tags"`
	CreatedAt   time.Time                 `json:"createdAt"`
}

// MeetingEnvelope wraps a single meeting
type MeetingEnvelope struct {
	Success bool             `json:"success"`
	Meeting *MeetingResponse `json:"meeting"`
}

// ListMeetingsResponse is one page of meetings
type ListMeetingsResponse struct {
	Meetings   []MeetingResponse         `json:"meetings"`
	Pagination common.PaginationResponse `json:"pagination"`
}

// SearchResponse lists search matches
type SearchResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
	Query    string            `json:"query"`
}

// TagsResponse lists the caller's tags
type TagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

// TagEnvelope wraps a single tag
type TagEnvelope struct {
	Success bool         `json:"success"`
	Tag     *TagResponse `json:"tag"`
}
