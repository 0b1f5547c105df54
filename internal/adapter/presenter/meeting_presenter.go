package presenter

import (
	"github.com/johnquangdev/meeting-recovery/internal/adapter/dto/common"
	mbDTO "github.com/johnquangdev/meeting-recovery/internal/adapter/dto/memorybank"
	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/memorybank"
)

// ToTagResponse converts a Tag entity to TagResponse DTO
func ToTagResponse(t *entities.Tag) mbDTO.TagResponse {
	return mbDTO.TagResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

// ToTagResponses converts a list of tags
func ToTagResponses(tags []*entities.Tag) []mbDTO.TagResponse {
	out := make([]mbDTO.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t))
	}
	return out
}

// ToMeetingResponse converts a SavedMeeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.SavedMeeting) *mbDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	analysis := m.Analysis.Data()
	tags := make([]mbDTO.TagResponse, 0, len(m.Tags))
	for i := range m.Tags {
		tags = append(tags, ToTagResponse(&m.Tags[i]))
	}

	return &mbDTO.MeetingResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Category:    m.Category,
		Transcript:  m.Transcript,
		Topic:       m.Topic,
		Attendees:   m.Attendees,
		KnownInfo:   m.KnownInfo,
		Analysis:    &analysis,
		Mode:        m.Mode,
		ContentMode: m.ContentKind,
		Tags:        tags,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMeetingResponses converts a list of meetings
func ToMeetingResponses(meetings []*entities.SavedMeeting) []mbDTO.MeetingResponse {
	out := make([]mbDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, *ToMeetingResponse(m))
	}
	return out
}

// ToListMeetingsResponse converts one page of meetings
func ToListMeetingsResponse(r *memorybank.ListResult) *mbDTO.ListMeetingsResponse {
	return &mbDTO.ListMeetingsResponse{
		Meetings: ToMeetingResponses(r.Meetings),
		Pagination: common.PaginationResponse{
			Limit:  r.Limit,
			Offset: r.Offset,
			Total:  r.Total,
		},
	}
}
