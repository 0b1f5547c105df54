package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// Pagination bounds for memory bank listings
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// MeetingFilter narrows a memory bank listing
type MeetingFilter struct {
	Limit    int
	Offset   int
	Category string
	TagID    *uuid.UUID
}

// MemoryBankRepository defines saved meeting and tag storage. Every read and
// write is scoped to an owner; rows of other owners behave as missing.
type MemoryBankRepository interface {
	// SaveMeeting stores the meeting and links the referenced and new tags atomically.
	// Referenced tags must belong to the meeting's owner.
	SaveMeeting(ctx context.Context, meeting *entities.SavedMeeting, tagIDs []uuid.UUID, newTags []*entities.Tag) error

	ListMeetings(ctx context.Context, ownerID uuid.UUID, filter MeetingFilter) ([]*entities.SavedMeeting, int64, error)
	FindMeeting(ctx context.Context, ownerID, id uuid.UUID) (*entities.SavedMeeting, error)
	SearchMeetings(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]*entities.SavedMeeting, error)
	DeleteMeeting(ctx context.Context, ownerID, id uuid.UUID) error

	ListTags(ctx context.Context, ownerID uuid.UUID) ([]*entities.Tag, error)
	CreateTag(ctx context.Context, tag *entities.Tag) error
	DeleteTag(ctx context.Context, ownerID, id uuid.UUID) error
}
