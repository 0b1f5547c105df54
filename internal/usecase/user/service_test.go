package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/johnquangdev/meeting-recovery/internal/adapter/repository"
	usecaseerrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
	"github.com/johnquangdev/meeting-recovery/internal/testutil"
)

func TestGetProfile_LowCredits(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewUserRepository(db), 2)
	u := testutil.CreateUser(t, db, 2)

	p, err := svc.GetProfile(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if !p.LowOnCredits || p.User.Credits != 2 {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestUpdatePreferences(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(repository.NewUserRepository(db), 2)
	u := testutil.CreateUser(t, db, 0)
	ctx := context.Background()

	prefs, err := svc.UpdatePreferences(ctx, u.ID, json.RawMessage(`{ "theme": "dark" }`))
	if err != nil {
		t.Fatalf("UpdatePreferences error: %v", err)
	}
	if string(prefs) != `{"theme":"dark"}` {
		t.Fatalf("expected compacted JSON, got %s", prefs)
	}

	for _, bad := range []string{``, `[]`, `"x"`, `{broken`} {
		if _, err := svc.UpdatePreferences(ctx, u.ID, json.RawMessage(bad)); !errors.Is(err, usecaseerrors.ErrInvalidInput) {
			t.Fatalf("%q: expected validation error, got %v", bad, err)
		}
	}
}
