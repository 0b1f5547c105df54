package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/testutil"
)

func TestUserEnsureByExternalID_CreatesOnceAndRefreshes(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.EnsureByExternalID(ctx, "auth0|abc", "a@example.com", "Ann", 3)
	if err != nil {
		t.Fatalf("EnsureByExternalID error: %v", err)
	}
	if first.Credits != 3 {
		t.Fatalf("expected initial credits 3, got %d", first.Credits)
	}

	second, err := repo.EnsureByExternalID(ctx, "auth0|abc", "new@example.com", "", 99)
	if err != nil {
		t.Fatalf("EnsureByExternalID error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same user, got %s and %s", first.ID, second.ID)
	}
	if second.Credits != 3 {
		t.Fatalf("existing user must keep balance, got %d", second.Credits)
	}
	if second.Email != "new@example.com" || second.DisplayName != "Ann" {
		t.Fatalf("profile not refreshed correctly: %+v", second)
	}
}

func TestUserFindByID_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	if _, err := repo.FindByID(context.Background(), uuid.New()); !errors.Is(err, entities.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdatePreferences(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	user := testutil.CreateUser(t, db, 0)
	ctx := context.Background()

	if err := repo.UpdatePreferences(ctx, user.ID, datatypes.JSON(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("UpdatePreferences error: %v", err)
	}
	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if string(got.Preferences) != `{"theme":"dark"}` {
		t.Fatalf("unexpected preferences: %s", got.Preferences)
	}

	if err := repo.UpdateMentorProgress(ctx, uuid.New(), datatypes.JSON(`{}`)); !errors.Is(err, entities.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
