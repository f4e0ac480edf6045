package kvstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "a", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Errorf("Get = %s, want {\"v\":1}", got)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "a", []byte(`1`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "a", []byte(`2`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `2` {
		t.Errorf("Get after overwrite = %s, want 2", got)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "a", []byte(`1`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete = %v, want ErrNotFound", err)
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete(absent) failed: %v", err)
	}
}

func TestMemoryStoreGetByPrefix(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	pairs := map[string]string{
		"inquiry:1":   `{"id":"1"}`,
		"inquiry:2":   `{"id":"2"}`,
		"knowledge:1": `{"id":"k1"}`,
	}
	for k, v := range pairs {
		if err := s.Set(ctx, k, []byte(v)); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	entries, err := s.GetByPrefix(ctx, "inquiry:")
	if err != nil {
		t.Fatalf("GetByPrefix failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("GetByPrefix returned %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Key != "inquiry:1" && e.Key != "inquiry:2" {
			t.Errorf("unexpected key %q in prefix scan", e.Key)
		}
	}

	empty, err := s.GetByPrefix(ctx, "config:")
	if err != nil {
		t.Fatalf("GetByPrefix failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("GetByPrefix(config:) returned %d entries, want 0", len(empty))
	}
}

func TestMemoryStoreValueIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	original := []byte(`{"v":1}`)
	if err := s.Set(ctx, "a", original); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	original[0] = 'X'

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Errorf("stored value mutated through caller slice: %s", got)
	}
}
