// Package pipeline is the voice-session facade over the echo core: it owns
// the session-id keyed state registry and translates the hosting pipeline's
// events into filter operations and verdicts.
package pipeline

import (
	"log"
	"sync"
	"time"

	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/echo"
	"github.com/Pollis22/JIE-Mastery-Tutor-V2-sub001/internal/events"
)

// Manager keeps one SessionState per live session. The mutex guards only the
// registry map: events for one session must arrive from a single goroutine at
// a time (the callers' contract), and different sessions' states share no
// mutable data.
type Manager struct {
	filter *echo.Filter
	debug  bool

	mu       sync.Mutex
	sessions map[string]*echo.SessionState

	events *events.Store
}

func New(cfg echo.Config, ev *events.Store) *Manager {
	return &Manager{
		filter:   echo.NewFilter(cfg),
		debug:    cfg.Debug,
		sessions: make(map[string]*echo.SessionState),
		events:   ev,
	}
}

// state returns the session's state, creating a fresh one on first touch so
// an uninitialized session behaves as empty rather than failing.
func (m *Manager) state(sessionID string) *echo.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.sessions[sessionID]
	if st == nil {
		st = echo.NewSessionState()
		m.sessions[sessionID] = st
	}
	return st
}

// Has reports whether the session has been touched and not yet ended.
func (m *Manager) Has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID] != nil
}

// StartSession resets the session's state so nothing leaks in from a
// previous session under the same id.
func (m *Manager) StartSession(sessionID string) {
	st := m.state(sessionID)
	m.filter.ResetState(st)
	metricSessionsStarted.Inc()
	m.events.Append(sessionID, "session_started", nil)
}

// EndSession resets and discards the session's state and journal.
func (m *Manager) EndSession(sessionID string) {
	m.mu.Lock()
	st := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if st != nil {
		m.filter.ResetState(st)
	}
	m.events.Drop(sessionID)
}

// OnPlaybackStart marks synthesized tutor speech as streaming.
func (m *Manager) OnPlaybackStart(sessionID string) {
	m.filter.MarkPlaybackStart(m.state(sessionID))
	m.events.Append(sessionID, "playback_start", nil)
}

// OnPlaybackEnd marks tutor speech finished and arms the tail guard.
func (m *Manager) OnPlaybackEnd(sessionID string) {
	m.filter.MarkPlaybackEnd(m.state(sessionID), time.Now())
	m.events.Append(sessionID, "playback_end", nil)
}

// OnAgentUtteranceText tracks the text of the tutor's current turn. Supplied
// at or before playback start.
func (m *Manager) OnAgentUtteranceText(sessionID, text string) {
	m.filter.RecordUtterance(m.state(sessionID), text)
}

// OnRecognizedTranscript classifies one finalized recognition result. The
// caller must discard (not forward) any transcript flagged as an echo.
func (m *Manager) OnRecognizedTranscript(sessionID, text string) echo.EchoCheckResult {
	st := m.state(sessionID)
	res := m.filter.CheckForEcho(st, text, time.Now())

	metricTranscriptsChecked.Inc()
	if res.IsEcho {
		metricEchoesDiscarded.Inc()
		metricEchoSimilarity.Observe(res.Similarity)
		m.events.Append(sessionID, "echo_discarded", map[string]any{
			"similarity": res.Similarity,
			"delta_ms":   res.DeltaMs,
			"matched":    res.MatchedUtterance,
		})
	}
	if m.debug {
		log.Printf("[pipeline] transcript sid=%s echo=%v reason=%s sim=%.3f delta=%dms",
			sessionID, res.IsEcho, res.Reason, res.Similarity, res.DeltaMs)
	}
	return res
}

// OnVoiceActivityEdge arbitrates one detected start of user speech. The
// caller must suppress the interruption when the verdict disallows it.
func (m *Manager) OnVoiceActivityEdge(sessionID string) echo.BargeInResult {
	st := m.state(sessionID)
	res := m.filter.ShouldAllowBargeIn(st, time.Now())

	if res.Allowed {
		metricBargeInsAllowed.Inc()
	} else {
		metricBargeInsBlocked.Inc()
		m.events.Append(sessionID, "barge_in_blocked", map[string]any{"reason": res.Reason})
	}
	if m.debug {
		log.Printf("[pipeline] vad edge sid=%s allowed=%v reason=%s", sessionID, res.Allowed, res.Reason)
	}
	return res
}
