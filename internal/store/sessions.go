package store

import (
	"time"

	"albahr-backend/internal/domain/models"

	gocache "github.com/patrickmn/go-cache"
)

const (
	sessionTTL   = 30 * time.Minute
	sweepEvery   = 10 * time.Minute
	suppressTTL  = 2 * time.Minute
	suppressScan = time.Minute
)

// SessionStore owns the per-phone conversation state. The cache's
// janitor replaces the timer thread the bot used to run over a bare
// map. Expiry is 30 minutes of inactivity rather than 30 minutes from
// creation: every Put refreshes the TTL, so a session only lapses once
// the user goes quiet.
type SessionStore struct {
	cache *gocache.Cache
}

func NewSessionStore() *SessionStore {
	return &SessionStore{cache: gocache.New(sessionTTL, sweepEvery)}
}

// Get returns the live session for a phone number, or nil for an
// unknown/new user.
func (s *SessionStore) Get(phone string) *models.Session {
	if v, ok := s.cache.Get(phone); ok {
		return v.(*models.Session)
	}
	return nil
}

// Put stores a session under its phone number. The TTL runs from this
// write; the engine re-puts after every field update, so expiry behaves
// as an inactivity timeout.
func (s *SessionStore) Put(sess *models.Session) {
	s.cache.Set(sess.PhoneNumber, sess, gocache.DefaultExpiration)
}

// Delete drops the session, returning the phone number to "unknown user".
func (s *SessionStore) Delete(phone string) {
	s.cache.Delete(phone)
}

// Len counts live sessions.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}

// Snapshot copies all live sessions for dashboard introspection.
func (s *SessionStore) Snapshot() map[string]*models.Session {
	items := s.cache.Items()
	out := make(map[string]*models.Session, len(items))
	for phone, item := range items {
		if sess, ok := item.Object.(*models.Session); ok {
			out[phone] = sess
		}
	}
	return out
}

// AdminTracker remembers which phone numbers an operator has recently
// messaged so the bot stays quiet for one reply.
type AdminTracker struct {
	cache *gocache.Cache
}

func NewAdminTracker() *AdminTracker {
	return &AdminTracker{cache: gocache.New(suppressTTL, suppressScan)}
}

// Mark records an admin-initiated message to the phone number.
func (t *AdminTracker) Mark(phone string) {
	t.cache.Set(phone, time.Now(), gocache.DefaultExpiration)
}

// Consume reports whether the phone is inside the suppression window and
// clears the mark, so each admin message suppresses exactly one reply.
func (t *AdminTracker) Consume(phone string) bool {
	if _, ok := t.cache.Get(phone); ok {
		t.cache.Delete(phone)
		return true
	}
	return false
}

// Len counts tracked conversations, for the health endpoint.
func (t *AdminTracker) Len() int {
	return t.cache.ItemCount()
}
