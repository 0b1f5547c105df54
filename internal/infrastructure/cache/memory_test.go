package cache

import (
	"testing"
	"time"
)

func TestMemoryStore_SetGetExpire(t *testing.T) {
	store := NewMemoryStore[string](0)
	defer store.Close()

	store.Set("a", "1", time.Minute)
	if v, ok := store.Get("a"); !ok || v != "1" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}

	store.Set("b", "2", -time.Second)
	if _, ok := store.Get("b"); ok {
		t.Fatal("expired entry must not be returned")
	}

	store.sweep(time.Now())
	if store.Len() != 1 {
		t.Fatalf("sweep should drop expired entries, len=%d", store.Len())
	}

	store.Delete("a")
	if _, ok := store.Get("a"); ok {
		t.Fatal("deleted entry must not be returned")
	}
	store.Close()
	store.Close()
}
