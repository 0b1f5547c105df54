package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
)

const meetingTagsTable = "saved_meeting_tags"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// MemoryBankRepository stores saved meetings and tags
type MemoryBankRepository struct {
	db *gorm.DB
}

// NewMemoryBankRepository creates a new memory bank repository
func NewMemoryBankRepository(db *gorm.DB) *MemoryBankRepository {
	return &MemoryBankRepository{db: db}
}

// SaveMeeting creates the meeting together with any new tags and all tag links
func (r *MemoryBankRepository) SaveMeeting(ctx context.Context, meeting *entities.SavedMeeting, tagIDs []uuid.UUID, newTags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		linked := make([]entities.Tag, 0, len(tagIDs)+len(newTags))
		seen := make(map[uuid.UUID]bool)

		ids := uniqueIDs(tagIDs)
		if len(ids) > 0 {
			var owned []entities.Tag
			if err := tx.Where("owner_id = ? AND id IN ?", meeting.OwnerID, ids).Find(&owned).Error; err != nil {
				return fmt.Errorf("failed to load tags: %w", err)
			}
			if len(owned) != len(ids) {
				return entities.ErrTagNotFound
			}
			for _, t := range owned {
				seen[t.ID] = true
				linked = append(linked, t)
			}
		}

		for _, nt := range newTags {
			nt.OwnerID = meeting.OwnerID
			existing, err := findTagByName(tx, meeting.OwnerID, nt.Name)
			if err != nil && !errors.Is(err, entities.ErrTagNotFound) {
				return err
			}
			if existing == nil {
				if err := insertTag(tx, nt); err != nil {
					return err
				}
				existing = nt
			}
			if !seen[existing.ID] {
				seen[existing.ID] = true
				linked = append(linked, *existing)
			}
		}

		meeting.Tags = linked
		if err := tx.Create(meeting).Error; err != nil {
			return fmt.Errorf("failed to save meeting: %w", err)
		}
		return nil
	})
}

// ListMeetings returns the owner's meetings newest first, with tags, and the total count
func (r *MemoryBankRepository) ListMeetings(ctx context.Context, ownerID uuid.UUID, filter repositories.MeetingFilter) ([]*entities.SavedMeeting, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.SavedMeeting{}).Where("owner_id = ?", ownerID)
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.TagID != nil {
			sub := r.db.Table(meetingTagsTable).Select("saved_meeting_id").Where("tag_id = ?", *filter.TagID)
			q = q.Where("id IN (?)", sub)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	var meetings []*entities.SavedMeeting
	if err := scoped().
		Preload("Tags").
		Order("created_at DESC").
		Limit(clampLimit(filter.Limit)).
		Offset(max(filter.Offset, 0)).
		Find(&meetings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// FindMeeting returns one meeting of the owner
func (r *MemoryBankRepository) FindMeeting(ctx context.Context, ownerID, id uuid.UUID) (*entities.SavedMeeting, error) {
	var meeting entities.SavedMeeting
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return &meeting, nil
}

// SearchMeetings matches query case-insensitively against title, transcript,
// topic and category. LIKE wildcards in the query are matched literally.
func (r *MemoryBankRepository) SearchMeetings(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]*entities.SavedMeeting, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"

	var meetings []*entities.SavedMeeting
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ?", ownerID).
		Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(transcript) LIKE ? ESCAPE '\' OR LOWER(topic) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to search meetings: %w", err)
	}
	return meetings, nil
}

// DeleteMeeting removes the meeting and its tag links
func (r *MemoryBankRepository) DeleteMeeting(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"DELETE FROM "+meetingTagsTable+" WHERE saved_meeting_id IN (SELECT id FROM saved_meetings WHERE id = ? AND owner_id = ?)",
			id, ownerID,
		)
		if res.Error != nil {
			return fmt.Errorf("failed to unlink meeting tags: %w", res.Error)
		}

		res = tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entities.SavedMeeting{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete meeting: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrMeetingNotFound
		}
		return nil
	})
}

// ListTags returns the owner's tags ordered by name
func (r *MemoryBankRepository) ListTags(ctx context.Context, ownerID uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag; names are unique per owner ignoring case
func (r *MemoryBankRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findTagByName(tx, tag.OwnerID, tag.Name)
		if err != nil && !errors.Is(err, entities.ErrTagNotFound) {
			return err
		}
		if existing != nil {
			return entities.ErrTagExists
		}
		return insertTag(tx, tag)
	})
}

// DeleteTag removes the tag and detaches it from every meeting
func (r *MemoryBankRepository) DeleteTag(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entities.Tag{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete tag: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrTagNotFound
		}
		if err := tx.Exec("DELETE FROM "+meetingTagsTable+" WHERE tag_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink tag: %w", err)
		}
		return nil
	})
}

// insertTag creates tag. A concurrent insert of the same name passes the
// lookup in the caller and is caught here by idx_tags_owner_name.
func insertTag(tx *gorm.DB, tag *entities.Tag) error {
	if err := tx.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrTagExists
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

func findTagByName(tx *gorm.DB, ownerID uuid.UUID, name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := tx.Where("owner_id = ? AND LOWER(name) = ?", ownerID, strings.ToLower(name)).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &tag, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return repositories.DefaultListLimit
	}
	if limit > repositories.MaxListLimit {
		return repositories.MaxListLimit
	}
	return limit
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
