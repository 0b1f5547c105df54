// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// NewDB opens a fresh in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same database;
// as a side effect transactions run one at a time.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.LicenseKey{},
		&entities.CreditCharge{},
		&entities.Tag{},
		&entities.SavedMeeting{},
		&entities.MentorSession{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user with the given balance
func CreateUser(t *testing.T, db *gorm.DB, credits int) *entities.User {
	t.Helper()
	u := entities.NewUser("ext-"+uuid.NewString(), "user@example.com", "Test User", credits)
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateLicenseKey inserts an unredeemed key worth credits
func CreateLicenseKey(t *testing.T, db *gorm.DB, credits int) *entities.LicenseKey {
	t.Helper()
	k := entities.NewLicenseKey(credits)
	if err := db.Create(k).Error; err != nil {
		t.Fatalf("create license key: %v", err)
	}
	return k
}
