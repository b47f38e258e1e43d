package kv

import (
	"context"
	"testing"
)

func TestMemoryGetDefault(t *testing.T) {
	m := NewMemory()
	got, err := m.Get(context.Background(), "missing", "[]")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "[]" {
		t.Errorf("Get() = %q, want default", got)
	}
}

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, _ := m.Get(ctx, "k", "")
	if got != "v2" {
		t.Errorf("Get() = %q, want v2", got)
	}
}
