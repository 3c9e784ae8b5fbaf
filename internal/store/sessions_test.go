package store

import (
	"testing"

	"albahr-backend/internal/domain/models"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	s := NewSessionStore()

	if s.Get("96891234567") != nil {
		t.Fatal("unknown phone must return nil")
	}

	s.Put(&models.Session{PhoneNumber: "96891234567", Language: models.LangEnglish, Step: models.StepAwaitingName})
	sess := s.Get("96891234567")
	if sess == nil || sess.Step != models.StepAwaitingName {
		t.Fatalf("round trip failed: %+v", sess)
	}

	s.Delete("96891234567")
	if s.Get("96891234567") != nil {
		t.Fatal("deleted session must be gone")
	}
}

func TestSessionStoreSnapshot(t *testing.T) {
	s := NewSessionStore()
	s.Put(&models.Session{PhoneNumber: "96891111111"})
	s.Put(&models.Session{PhoneNumber: "96892222222"})

	snap := s.Snapshot()
	if len(snap) != 2 || snap["96891111111"] == nil || snap["96892222222"] == nil {
		t.Fatalf("snapshot = %v", snap)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestAdminTrackerConsumeClearsMark(t *testing.T) {
	tr := NewAdminTracker()

	if tr.Consume("96891234567") {
		t.Fatal("unmarked phone must not be suppressed")
	}

	tr.Mark("96891234567")
	if !tr.Consume("96891234567") {
		t.Fatal("marked phone must be suppressed once")
	}
	if tr.Consume("96891234567") {
		t.Fatal("suppression must not survive its first consume")
	}
}

func TestChatStoreTrimsHistory(t *testing.T) {
	c := NewChatStore()
	for i := 0; i < maxHistoryPerUser+50; i++ {
		c.Append("96891234567", "msg", "user")
	}
	if got := len(c.Messages("96891234567")); got != maxHistoryPerUser {
		t.Fatalf("history = %d, want %d", got, maxHistoryPerUser)
	}
	if c.TotalUsers() != 1 {
		t.Fatalf("users = %d, want 1", c.TotalUsers())
	}
}

func TestChatStoreIDsStayUniqueAfterTrim(t *testing.T) {
	c := NewChatStore()
	total := maxHistoryPerUser + 50
	for i := 0; i < total; i++ {
		c.Append("96891234567", "msg", "user")
	}

	msgs := c.Messages("96891234567")
	seen := map[int]bool{}
	for i, m := range msgs {
		if seen[m.ID] {
			t.Fatalf("duplicate message id %d", m.ID)
		}
		seen[m.ID] = true
		if i > 0 && m.ID != msgs[i-1].ID+1 {
			t.Fatalf("ids not monotonic: %d after %d", m.ID, msgs[i-1].ID)
		}
	}
	if last := msgs[len(msgs)-1].ID; last != total {
		t.Fatalf("last id = %d, want %d (ids must survive trimming)", last, total)
	}
}
