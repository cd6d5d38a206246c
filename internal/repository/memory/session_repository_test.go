package memory

import (
	"testing"
	"time"

	"case-governance-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.Session{
		ID:          "session-1",
		HighestTier: "low",
		CreatedAt:   time.Now(),
	}
	repo.Save(session)

	got, found := repo.Get("session-1")
	if !found {
		t.Fatal("expected session to be found")
	}
	if got.ID != "session-1" {
		t.Errorf("ID = %s", got.ID)
	}
	if got.LastActiveAt.IsZero() {
		t.Error("Save must stamp LastActiveAt")
	}
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository()

	if _, found := repo.Get("missing"); found {
		t.Error("unknown session must not be found")
	}
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "gone"})
	repo.Delete("gone")

	if _, found := repo.Get("gone"); found {
		t.Error("deleted session must not be found")
	}
}

func TestSessionRepositoryAccumulatesMessages(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.Session{ID: "s", HighestTier: "low"}
	session.Messages = append(session.Messages, store.SessionMessage{Role: "user", Content: "hi"})
	repo.Save(session)

	got, _ := repo.Get("s")
	got.Messages = append(got.Messages, store.SessionMessage{Role: "assistant", Content: "hello"})
	got.HighestTier = "high"
	repo.Save(got)

	final, _ := repo.Get("s")
	if len(final.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(final.Messages))
	}
	if final.HighestTier != "high" {
		t.Errorf("HighestTier = %s, want high", final.HighestTier)
	}
}
