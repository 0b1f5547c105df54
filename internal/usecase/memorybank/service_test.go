package memorybank

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-recovery/internal/adapter/repository"
	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
	usecaseerrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
	"github.com/johnquangdev/meeting-recovery/internal/testutil"
)

func TestSaveMeeting(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewMemoryBankRepository(db))
	owner := testutil.CreateUser(t, db, 0).ID
	ctx := context.Background()

	m, err := svc.SaveMeeting(ctx, owner, SaveMeetingInput{
		Title:      "  Weekly sync ",
		Transcript: "we talked",
		Analysis:   &entities.MeetingAnalysis{Summary: "ok"},
		Mode:       "casper",
		NewTags:    []NewTag{{Name: "ops", Color: "#ff4500"}, {Name: "infra"}},
	})
	if err != nil {
		t.Fatalf("SaveMeeting error: %v", err)
	}
	if m.Title != "Weekly sync" || m.Mode != entities.ModeLymnia || m.ContentKind != entities.ContentMeetings {
		t.Fatalf("unexpected meeting %+v", m)
	}
	if a := m.Analysis.Data(); a.KeyDecisions == nil || a.Highlights == nil {
		t.Fatal("stored analysis must be normalized")
	}

	tags, _ := svc.ListTags(ctx, owner)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	for _, tag := range tags {
		if tag.Color != "#FF4500" {
			t.Fatalf("expected default/upper-cased colour, got %s", tag.Color)
		}
	}
}

func TestSaveMeeting_Validation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewMemoryBankRepository(db))
	owner := testutil.CreateUser(t, db, 0).ID
	analysis := &entities.MeetingAnalysis{}

	cases := []SaveMeetingInput{
		{Title: "", Analysis: analysis},
		{Title: "x"},
		{Title: "x", Analysis: analysis, Mode: "oracle"},
		{Title: "x", Analysis: analysis, NewTags: []NewTag{{Name: "t", Color: "red"}}},
		{Title: "x", Analysis: analysis, NewTags: []NewTag{{Name: " "}}},
	}
	for i, in := range cases {
		if _, err := svc.SaveMeeting(context.Background(), owner, in); !errors.Is(err, usecaseerrors.ErrInvalidInput) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	_, err := svc.SaveMeeting(context.Background(), owner, SaveMeetingInput{Title: "x", Analysis: analysis, TagIDs: []uuid.UUID{uuid.New()}})
	var validationErr *usecaseerrors.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "tagIds" {
		t.Fatalf("expected tagIds validation error, got %v", err)
	}
}

func TestSaveMeeting_ForeignTagIsValidationError(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewMemoryBankRepository(db))
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, 0).ID
	intruder := testutil.CreateUser(t, db, 0).ID

	tag, err := svc.CreateTag(ctx, owner, "Private", "#112233")
	if err != nil {
		t.Fatalf("CreateTag error: %v", err)
	}
	_, err = svc.SaveMeeting(ctx, intruder, SaveMeetingInput{
		Title:    "x",
		Analysis: &entities.MeetingAnalysis{},
		TagIDs:   []uuid.UUID{tag.ID},
	})
	if !errors.Is(err, usecaseerrors.ErrInvalidInput) || errors.Is(err, entities.ErrTagNotFound) {
		t.Fatalf("expected validation error for a foreign tag, got %v", err)
	}
	if res, _ := svc.ListMeetings(ctx, intruder, repositories.MeetingFilter{}); res.Total != 0 {
		t.Fatalf("nothing should be saved, got %d meetings", res.Total)
	}
}

func TestListAndSearch(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewMemoryBankRepository(db))
	owner := testutil.CreateUser(t, db, 0).ID
	ctx := context.Background()

	for _, title := range []string{"Alpha", "Beta"} {
		if _, err := svc.SaveMeeting(ctx, owner, SaveMeetingInput{Title: title, Analysis: &entities.MeetingAnalysis{}}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	res, err := svc.ListMeetings(ctx, owner, repositories.MeetingFilter{Limit: 500})
	if err != nil {
		t.Fatalf("ListMeetings error: %v", err)
	}
	if res.Total != 2 || res.Limit != repositories.MaxListLimit {
		t.Fatalf("unexpected list result total=%d limit=%d", res.Total, res.Limit)
	}

	found, err := svc.SearchMeetings(ctx, owner, "alp")
	if err != nil || len(found) != 1 {
		t.Fatalf("SearchMeetings returned %d, %v", len(found), err)
	}
	if _, err := svc.SearchMeetings(ctx, owner, "  "); !errors.Is(err, usecaseerrors.ErrInvalidInput) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
}

func TestCreateTag_Duplicate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewMemoryBankRepository(db))
	owner := testutil.CreateUser(t, db, 0).ID

	if _, err := svc.CreateTag(context.Background(), owner, "Ideas", ""); err != nil {
		t.Fatalf("CreateTag error: %v", err)
	}
	if _, err := svc.CreateTag(context.Background(), owner, "IDEAS", "#000000"); !errors.Is(err, entities.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}
