package database

import (
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := migrationSource.FindMigrations()
	if err != nil {
		t.Fatalf("FindMigrations error: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	want := []string{"0001_init.sql", "0002_memory_bank.sql", "0003_mentor_sessions.sql"}
	for i, m := range migrations {
		if m.Id != want[i] {
			t.Fatalf("migration %d: expected %s got %s", i, want[i], m.Id)
		}
		if len(m.Up) == 0 || len(m.Down) == 0 {
			t.Fatalf("%s must have both up and down statements", m.Id)
		}
	}

	initSQL := strings.Join(migrations[0].Up, "\n")
	if !strings.Contains(initSQL, "CHECK (credits >= 0)") {
		t.Fatalf("users table must keep the non-negative credits constraint")
	}
}
