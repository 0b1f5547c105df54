package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/testutil"
)

func TestMentorRepository_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMentorRepository(db)
	user := testutil.CreateUser(t, db, 0)
	ctx := context.Background()

	if _, err := repo.FindActive(ctx, user.ID, "welcome"); !errors.Is(err, entities.ErrMentorSessionNotFound) {
		t.Fatalf("expected ErrMentorSessionNotFound, got %v", err)
	}

	s := entities.NewMentorSession(user.ID, "welcome", 4)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	active, err := repo.FindActive(ctx, user.ID, "welcome")
	if err != nil || active.ID != s.ID {
		t.Fatalf("FindActive returned %v, %v", active, err)
	}

	if err := s.Advance(4, time.Now().UTC()); err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if err := repo.UpdateProgress(ctx, s); err != nil {
		t.Fatalf("UpdateProgress error: %v", err)
	}

	got, err := repo.FindByID(ctx, user.ID, s.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Status != entities.MentorSessionCompleted || got.CompletedAt == nil {
		t.Fatalf("expected completed session, got %+v", got)
	}
	if _, err := repo.FindActive(ctx, user.ID, "welcome"); !errors.Is(err, entities.ErrMentorSessionNotFound) {
		t.Fatalf("completed session must not be active, got %v", err)
	}

	list, err := repo.List(ctx, user.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("List returned %d, %v", len(list), err)
	}
}
