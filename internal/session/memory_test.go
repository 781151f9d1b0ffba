package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemory(time.Minute)
	defer s.Close()
	ctx := context.Background()

	// Miss before any Put
	_, ok, err := s.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unknown session")
	}

	want := Session{DocumentText: "Hello\nWorld\n", DocumentName: "greeting.pdf"}
	if err := s.Put(ctx, "id-1", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := s.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

// A second upload must fully replace the first document, text and name
// together.
func TestMemoryStoreReplace(t *testing.T) {
	s := NewMemory(time.Minute)
	defer s.Close()
	ctx := context.Background()

	first := Session{DocumentText: "first document\n", DocumentName: "first.pdf"}
	second := Session{DocumentText: "second document\n", DocumentName: "second.pdf"}

	if err := s.Put(ctx, "id-1", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Put(ctx, "id-1", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, _ := s.Get(ctx, "id-1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != second {
		t.Errorf("expected full replacement with %+v, got %+v", second, got)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemory(time.Minute)
	defer s.Close()
	ctx := context.Background()

	if err := s.Put(ctx, "id-1", Session{DocumentText: "a\n", DocumentName: "a.pdf"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Another session must not see id-1's document.
	_, ok, err := s.Get(ctx, "id-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected miss for a different session id")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemory(time.Minute)
	defer s.Close()
	ctx := context.Background()

	if err := s.Put(ctx, "id-1", Session{DocumentText: "a\n"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "id-1"); ok {
		t.Error("expected miss after delete")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemory(10 * time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	if err := s.Put(ctx, "id-1", Session{DocumentText: "a\n"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, "id-1"); ok {
		t.Error("expected session to expire after TTL")
	}
}
