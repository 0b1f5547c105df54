package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var licenseKeyPattern = regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)

// LicenseKey is a one-time code that grants a fixed credit bonus
type LicenseKey struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Key        string     `json:"key" gorm:"column:license_key;type:varchar(64);uniqueIndex;not null"`
	Credits    int        `json:"credits" gorm:"not null"`
	IsRedeemed bool       `json:"isRedeemed" gorm:"column:is_redeemed;not null;default:false"`
	RedeemedBy *uuid.UUID `json:"redeemedBy,omitempty" gorm:"column:redeemed_by;type:uuid"`
	RedeemedAt *time.Time `json:"redeemedAt,omitempty" gorm:"column:redeemed_at"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}

// NewLicenseKey mints an unredeemed key in canonical upper-case UUID form
func NewLicenseKey(credits int) *LicenseKey {
	return &LicenseKey{
		ID:      uuid.New(),
		Key:     strings.ToUpper(uuid.NewString()),
		Credits: credits,
	}
}

// BeforeCreate assigns an ID when the caller did not
func (k *LicenseKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// NormalizeLicenseKey trims and upper-cases user input so lookups are case-insensitive
func NormalizeLicenseKey(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidLicenseKeyFormat reports whether key is in canonical form
func ValidLicenseKeyFormat(key string) bool {
	return licenseKeyPattern.MatchString(key)
}
