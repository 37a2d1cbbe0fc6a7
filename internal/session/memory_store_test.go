package session

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Absent key reads back empty
	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() = %q, want empty", got)
	}

	if err := store.Set(ctx, "sess-1", "token-a"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _ = store.Get(ctx, "sess-1")
	if got != "token-a" {
		t.Errorf("Get() = %q, want token-a", got)
	}

	// Set overwrites the previous value
	if err := store.Set(ctx, "sess-1", "token-b"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _ = store.Get(ctx, "sess-1")
	if got != "token-b" {
		t.Errorf("Get() = %q, want token-b", got)
	}

	// Clear removes the credential
	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, _ = store.Get(ctx, "sess-1")
	if got != "" {
		t.Errorf("Get() after Clear = %q, want empty", got)
	}

	// Clearing an absent key is a no-op
	if err := store.Clear(ctx, "sess-unknown"); err != nil {
		t.Errorf("Clear() on absent key error = %v", err)
	}
}
