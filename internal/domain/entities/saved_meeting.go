package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultTagColor is used when a tag is created without a colour
const DefaultTagColor = "#FF4500"

// SavedMeeting is an analysis the user chose to keep in their memory bank
type SavedMeeting struct {
	ID          uuid.UUID                           `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID                           `json:"-" gorm:"type:uuid;not null;index"`
	Title       string                              `json:"title" gorm:"type:varchar(255);not null"`
	Category    string                              `json:"category,omitempty" gorm:"type:varchar(100);index"`
	Transcript  string                              `json:"transcript" gorm:"type:text;not null"`
	Topic       string                              `json:"topic,omitempty" gorm:"type:text"`
	Attendees   string                              `json:"attendees,omitempty" gorm:"type:text"`
	KnownInfo   string                              `json:"knownInfo,omitempty" gorm:"column:known_info;type:text"`
	Analysis    datatypes.JSONType[MeetingAnalysis] `json:"analysis"`
	Mode        Mode                                `json:"mode" gorm:"type:varchar(20);not null"`
	ContentKind ContentKind                         `json:"contentMode" gorm:"column:content_kind;type:varchar(20);not null"`
	Tags        []Tag                               `json:"tags" gorm:"many2many:saved_meeting_tags;"`
	CreatedAt   time.Time                           `json:"createdAt" gorm:"autoCreateTime;index"`
}

// BeforeCreate assigns an ID when the caller did not
func (m *SavedMeeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Tag labels saved meetings; names are unique per owner
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_tags_owner_name"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_owner_name"`
	Color     string    `json:"color" gorm:"type:varchar(7);not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// BeforeCreate assigns an ID when the caller did not
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
