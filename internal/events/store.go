package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Store is an in-memory, per-session diagnostic journal. Entries are advisory
// only; nothing reads them back to make a verdict.
type Store struct {
	mu     sync.RWMutex
	bySess map[string][]Event
}

func NewStore() *Store {
	return &Store{bySess: make(map[string][]Event)}
}

func (s *Store) Append(sessionID, typ string, payload map[string]any) Event {
	evt := Event{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      typ,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bySess[sessionID] = append(s.bySess[sessionID], evt)
	// Cap total events per session to avoid unbounded growth
	const maxEvents = 200
	if l := len(s.bySess[sessionID]); l > maxEvents {
		// Keep space for a single truncation warning so the total stays at maxEvents
		keep := maxEvents - 1
		dropped := l - keep
		s.bySess[sessionID] = append([]Event(nil), s.bySess[sessionID][l-keep:]...)
		warn := Event{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Type:      "events_truncated",
			Timestamp: time.Now().UTC(),
			Payload:   map[string]any{"dropped": dropped, "kept": keep},
		}
		s.bySess[sessionID] = append(s.bySess[sessionID], warn)
	}
	return evt
}

func (s *Store) List(sessionID string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	src := s.bySess[sessionID]
	out := make([]Event, len(src))
	copy(out, src)
	return out
}

// Drop discards a session's journal when the session ends.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bySess, sessionID)
}
