package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/internal/ports/auth"
	"petcare/internal/session"
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	d := session.Data{ID: "s-1", Identity: &auth.Identity{UserID: "u-1", Role: auth.RoleUser}}
	if err := s.Save(ctx, d, time.Hour); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", s.Len())
	}

	got, err := s.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Identity == nil || got.Identity.UserID != "u-1" {
		t.Fatalf("unexpected session %#v", got)
	}

	if err := s.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get(ctx, "s-1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestSessionStore_ExpiredIsDropped(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Save(ctx, session.Data{ID: "s-1"}, time.Minute); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	s.now = func() time.Time { return now.Add(time.Minute) }
	if _, err := s.Get(ctx, "s-1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expired session should be removed on read, got %d", s.Len())
	}
}

func TestSessionStore_DoesNotAliasCallerData(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	// capacidad de sobra: un append del caller escribiría en el mismo array
	flashes := make([]session.Flash, 1, 4)
	flashes[0] = session.Flash{Category: "info", Message: "first"}
	d := session.Data{
		ID:       "s-1",
		Identity: &auth.Identity{UserID: "u-1", Role: auth.RoleUser},
		Flashes:  flashes,
	}
	if err := s.Save(ctx, d, time.Hour); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	d.Flashes[0].Message = "changed after save"
	d.Identity.Role = auth.RoleAdmin

	a, _ := s.Get(ctx, "s-1")
	b, _ := s.Get(ctx, "s-1")
	a.Flashes = append(a.Flashes, session.Flash{Category: "info", Message: "from a"})
	b.Flashes = append(b.Flashes, session.Flash{Category: "info", Message: "from b"})
	a.Flashes[0].Message = "changed after get"

	if a.Flashes[1].Message != "from a" || b.Flashes[1].Message != "from b" {
		t.Fatalf("concurrent readers share flash storage: %#v / %#v", a.Flashes, b.Flashes)
	}

	got, err := s.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Flashes) != 1 || got.Flashes[0].Message != "first" {
		t.Fatalf("stored flashes were mutated: %#v", got.Flashes)
	}
	if got.Identity.Role != auth.RoleUser {
		t.Fatalf("stored identity was mutated")
	}
}
